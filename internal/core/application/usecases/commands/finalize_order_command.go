package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// OrderLine is a requested item: a catalog reference, a quantity and an optional note.
type OrderLine struct {
	ProductRef string
	Quantity   int
	Note       string
}

// FinalizeOrderCommand turns a basket into a persisted, priced order.
//
// Example:
//
//	cmd, err := NewFinalizeOrderCommand(
//	    tenantID, order.Delivery, order.Pix,
//	    []OrderLine{{ProductRef: "PIZZA-M", Quantity: 2}},
//	    &address, nil, nil, "", nil, "customer",
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid basket: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type FinalizeOrderCommand struct {
	orderID       kernel.UUID
	tenantID      kernel.UUID
	channel       order.Channel
	paymentMethod order.PaymentMethod
	lines         []OrderLine
	address       *kernel.Address
	addressID     *kernel.UUID
	couponID      *kernel.UUID
	tableRef      string
	customerID    *kernel.UUID
	actor         string

	guard guard.ConstructorGuard
}

// NewFinalizeOrderCommand validates everything that can be checked without storage:
// at least one line, quantities in range, and an address for delivery orders.
func NewFinalizeOrderCommand(
	tenantID kernel.UUID,
	channel order.Channel,
	paymentMethod order.PaymentMethod,
	lines []OrderLine,
	address *kernel.Address,
	addressID *kernel.UUID,
	couponID *kernel.UUID,
	tableRef string,
	customerID *kernel.UUID,
	actor string,
) (FinalizeOrderCommand, error) {
	cmd := FinalizeOrderCommand{
		orderID:    kernel.NewUUID(),
		addressID:  addressID,
		couponID:   couponID,
		tableRef:   strings.TrimSpace(tableRef),
		customerID: customerID,
		actor:      strings.TrimSpace(actor),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tenantID.Validate(),
		channel.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return FinalizeOrderCommand{}, err
	}
	cmd.tenantID, cmd.channel, cmd.paymentMethod = tenantID, channel, paymentMethod

	if err := cmd.setLines(lines); err != nil {
		return FinalizeOrderCommand{}, err
	}
	if err := cmd.setAddress(address); err != nil {
		return FinalizeOrderCommand{}, err
	}
	if cmd.tableRef != "" && channel != order.DineIn {
		return FinalizeOrderCommand{}, errs.NewValidationError(errs.CodeInvalidValue, "only dine-in orders have a table")
	}

	return cmd, nil
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c FinalizeOrderCommand) TenantID() kernel.UUID { return c.tenantID }
func (c FinalizeOrderCommand) Channel() order.Channel { return c.channel }
func (c FinalizeOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c FinalizeOrderCommand) Address() *kernel.Address { return c.address }
func (c FinalizeOrderCommand) AddressID() *kernel.UUID { return c.addressID }
func (c FinalizeOrderCommand) CouponID() *kernel.UUID { return c.couponID }
func (c FinalizeOrderCommand) TableRef() string { return c.tableRef }
func (c FinalizeOrderCommand) CustomerID() *kernel.UUID { return c.customerID }
func (c FinalizeOrderCommand) Actor() string { return c.actor }

func (c FinalizeOrderCommand) Lines() []OrderLine {
	out := make([]OrderLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *FinalizeOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValidationError(errs.CodeEmptyOrder, "an order needs at least one item")
	}
	var lineErrs []error
	for i, line := range lines {
		if strings.TrimSpace(line.ProductRef) == "" {
			lineErrs = append(lineErrs, errs.NewValueIsRequiredError(fmt.Sprintf("line %d product", i+1)))
		}
		if line.Quantity < order.MinItemQuantity || line.Quantity > order.MaxItemQuantity {
			lineErrs = append(lineErrs, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("line %d quantity", i+1), line.Quantity, order.MinItemQuantity, order.MaxItemQuantity,
			))
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}
	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *FinalizeOrderCommand) setAddress(address *kernel.Address) error {
	if c.channel != order.Delivery {
		return nil
	}
	if address == nil {
		return errs.NewValidationError(errs.CodeAddressRequired, "delivery orders need an address")
	}
	if err := address.Validate(); err != nil {
		return err
	}
	snapshot := *address
	c.address = &snapshot
	return nil
}
