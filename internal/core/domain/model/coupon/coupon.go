// Package coupon models tenant discount codes. Coupons are read-only to the ordering core.
package coupon

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrCouponIsNotConstructed = errors.New("Coupon must be created via NewCoupon constructor")

// Coupon grants a fixed amount, a percentage of the subtotal, or both added together.
type Coupon struct {
	id          kernel.UUID
	tenantID    kernel.UUID
	code        string
	fixedAmount kernel.Money
	percentage  decimal.Decimal
	minPurchase *kernel.Money
	validFrom   time.Time
	validUntil  *time.Time
	active      bool

	isConstructed bool
}

func NewCoupon(
	id, tenantID kernel.UUID,
	code string,
	fixedAmount kernel.Money,
	percentage decimal.Decimal,
	minPurchase *kernel.Money,
	validFrom time.Time,
	validUntil *time.Time,
	active bool,
) (*Coupon, error) {
	c := &Coupon{
		code:          strings.ToUpper(strings.TrimSpace(code)),
		fixedAmount:   fixedAmount,
		percentage:    percentage,
		minPurchase:   minPurchase,
		validFrom:     validFrom,
		validUntil:    validUntil,
		active:        active,
		isConstructed: true,
	}

	var codeErr, pctErr, windowErr error
	if c.code == "" {
		codeErr = errs.NewValueIsRequiredError("coupon code")
	}
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(100)) {
		pctErr = errs.NewValueIsOutOfRangeError("percentage", percentage.String(), 0, 100)
	}
	if validUntil != nil && validUntil.Before(validFrom) {
		windowErr = errs.NewValueIsInvalidErrorWithCause("validity window", fmt.Errorf("ends before it starts"))
	}

	if err := errors.Join(id.Validate(), tenantID.Validate(), codeErr, pctErr, windowErr); err != nil {
		return nil, err
	}
	c.id, c.tenantID = id, tenantID
	return c, nil
}

func (c *Coupon) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCouponIsNotConstructed
	}
	return nil
}

func (c *Coupon) ID() kernel.UUID { return c.id }
func (c *Coupon) TenantID() kernel.UUID { return c.tenantID }
func (c *Coupon) Code() string { return c.code }
func (c *Coupon) FixedAmount() kernel.Money { return c.fixedAmount }
func (c *Coupon) Percentage() decimal.Decimal { return c.percentage }
func (c *Coupon) MinPurchase() *kernel.Money { return c.minPurchase }
func (c *Coupon) ValidFrom() time.Time { return c.validFrom }
func (c *Coupon) ValidUntil() *time.Time { return c.validUntil }
func (c *Coupon) IsActive() bool { return c.active }

// IsWithinWindow reports whether at falls in [validFrom, validUntil].
func (c *Coupon) IsWithinWindow(at time.Time) bool {
	if at.Before(c.validFrom) {
		return false
	}
	return c.validUntil == nil || !at.After(*c.validUntil)
}
