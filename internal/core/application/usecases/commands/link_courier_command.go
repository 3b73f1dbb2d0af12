package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrLinkCourierCommandIsNotConstructed = errors.New(
		"LinkCourierCommand must be created via NewLinkCourierCommand constructor",
	)
	ErrUnlinkCourierCommandIsNotConstructed = errors.New(
		"UnlinkCourierCommand must be created via NewUnlinkCourierCommand constructor",
	)
)

// LinkCourierCommand assigns a courier to a delivery order.
type LinkCourierCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewLinkCourierCommand(orderID, courierID kernel.UUID) (LinkCourierCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return LinkCourierCommand{}, err
	}
	return LinkCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c LinkCourierCommand) Validate() error {
	return c.guard.Validate(ErrLinkCourierCommandIsNotConstructed)
}

func (c LinkCourierCommand) OrderID() kernel.UUID { return c.orderID }
func (c LinkCourierCommand) CourierID() kernel.UUID { return c.courierID }

// UnlinkCourierCommand clears the courier of a delivery order.
type UnlinkCourierCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewUnlinkCourierCommand(orderID kernel.UUID) (UnlinkCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UnlinkCourierCommand{}, err
	}
	return UnlinkCourierCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c UnlinkCourierCommand) Validate() error {
	return c.guard.Validate(ErrUnlinkCourierCommandIsNotConstructed)
}

func (c UnlinkCourierCommand) OrderID() kernel.UUID { return c.orderID }
