package commands

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to a new status, e.g. when the kitchen
// prints it or the courier leaves.
type ChangeOrderStatusCommand struct {
	orderID kernel.UUID
	target  order.Status
	reason  string
	actor   string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	reason, actor string,
) (ChangeOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate()); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		target:  target,
		reason:  strings.TrimSpace(reason),
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Target() order.Status { return c.target }
func (c ChangeOrderStatusCommand) Reason() string { return c.reason }
func (c ChangeOrderStatusCommand) Actor() string { return c.actor }
