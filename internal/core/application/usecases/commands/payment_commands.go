package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrInitiatePaymentCommandIsNotConstructed = errors.New(
		"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
	)
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
)

// InitiatePaymentCommand charges an order through an online gateway. An empty gateway
// selects the tenant's configured provider.
type InitiatePaymentCommand struct {
	orderID kernel.UUID
	method  order.PaymentMethod
	gateway string
	amount  kernel.Money

	guard guard.ConstructorGuard
}

func NewInitiatePaymentCommand(
	orderID kernel.UUID,
	method order.PaymentMethod,
	gateway string,
	amount kernel.Money,
) (InitiatePaymentCommand, error) {
	if err := errors.Join(orderID.Validate(), method.Validate()); err != nil {
		return InitiatePaymentCommand{}, err
	}
	if !method.RequiresOnlineConfirmation() {
		return InitiatePaymentCommand{}, errs.NewValidationError(
			errs.CodeInvalidValue,
			method.String()+" is collected in person and cannot be charged online",
		)
	}
	if amount.IsZero() {
		return InitiatePaymentCommand{}, errs.NewValueIsInvalidError("amount")
	}

	return InitiatePaymentCommand{
		orderID: orderID,
		method:  method,
		gateway: strings.ToLower(strings.TrimSpace(gateway)),
		amount:  amount,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) OrderID() kernel.UUID { return c.orderID }
func (c InitiatePaymentCommand) Method() order.PaymentMethod { return c.method }
func (c InitiatePaymentCommand) Gateway() string { return c.gateway }
func (c InitiatePaymentCommand) Amount() kernel.Money { return c.amount }

// ConfirmPaymentCommand settles an order's payment: in person for offline methods,
// or by asking the gateway about the pending transaction.
type ConfirmPaymentCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderID kernel.UUID) (ConfirmPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}
	return ConfirmPaymentCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID { return c.orderID }
