package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places every amount is rounded to.
const MoneyScale = 2

// Money is a non-negative fixed-point amount. Arithmetic that could go below zero
// floors at zero; rounding is half away from zero, which is half-up for non-negative values.
type Money struct {
	amount decimal.Decimal
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney rounds d to MoneyScale and rejects negative amounts.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d.Round(MoneyScale)}, nil
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney parses s and panics on failure. Intended for fixtures and constants.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// SubFloor subtracts other and clamps the result at zero.
func (m Money) SubFloor(other Money) Money {
	d := m.amount.Sub(other.amount)
	if d.IsNegative() {
		return ZeroMoney()
	}
	return Money{amount: d}
}

func (m Money) MulInt(n int) Money {
	if n <= 0 {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(n)))}
}

// Percent returns pct percent of m, rounded to MoneyScale.
func (m Money) Percent(pct decimal.Decimal) Money {
	if !pct.IsPositive() {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Mul(pct).Div(decimal.NewFromInt(100)).Round(MoneyScale)}
}

// Rate returns m multiplied by a fractional rate (0.01 for one percent), rounded to MoneyScale.
func (m Money) Rate(rate decimal.Decimal) Money {
	if !rate.IsPositive() {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Mul(rate).Round(MoneyScale)}
}

func (m Money) Min(other Money) Money {
	if m.amount.GreaterThan(other.amount) {
		return other
	}
	return m
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
