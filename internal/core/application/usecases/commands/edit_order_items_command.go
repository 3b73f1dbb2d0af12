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

var ErrEditOrderItemsCommandIsNotConstructed = errors.New(
	"EditOrderItemsCommand must be created via NewEditOrderItemsCommand constructor",
)

type ItemChangeKind int

const (
	AddItem ItemChangeKind = iota + 1
	UpdateItem
	RemoveItem
)

// ItemChange is one edit applied to an order's lines, in the order given.
type ItemChange struct {
	Kind       ItemChangeKind
	ProductRef string
	ItemID     int
	Quantity   *int
	Note       *string
}

func AddItemChange(productRef string, quantity int, note string) ItemChange {
	return ItemChange{Kind: AddItem, ProductRef: productRef, Quantity: &quantity, Note: &note}
}

// UpdateItemChange changes quantity and/or note of a line; nil fields are kept.
func UpdateItemChange(itemID int, quantity *int, note *string) ItemChange {
	return ItemChange{Kind: UpdateItem, ItemID: itemID, Quantity: quantity, Note: note}
}

func RemoveItemChange(itemID int) ItemChange {
	return ItemChange{Kind: RemoveItem, ItemID: itemID}
}

// EditOrderItemsCommand adds, updates and removes lines of an existing order, then re-prices it.
type EditOrderItemsCommand struct {
	orderID kernel.UUID
	changes []ItemChange
	actor   string

	guard guard.ConstructorGuard
}

func NewEditOrderItemsCommand(orderID kernel.UUID, changes []ItemChange, actor string) (EditOrderItemsCommand, error) {
	cmd := EditOrderItemsCommand{
		actor: strings.TrimSpace(actor),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		cmd.setChanges(changes),
	); err != nil {
		return EditOrderItemsCommand{}, err
	}
	cmd.orderID = orderID

	return cmd, nil
}

func (c EditOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderItemsCommandIsNotConstructed)
}

func (c EditOrderItemsCommand) OrderID() kernel.UUID { return c.orderID }
func (c EditOrderItemsCommand) Actor() string { return c.actor }

func (c EditOrderItemsCommand) Changes() []ItemChange {
	out := make([]ItemChange, len(c.changes))
	copy(out, c.changes)
	return out
}

func (c *EditOrderItemsCommand) setChanges(changes []ItemChange) error {
	if len(changes) == 0 {
		return errs.NewValueIsRequiredError("changes")
	}

	var changeErrs []error
	for i, change := range changes {
		param := fmt.Sprintf("change %d", i+1)
		switch change.Kind {
		case AddItem:
			if strings.TrimSpace(change.ProductRef) == "" {
				changeErrs = append(changeErrs, errs.NewValueIsRequiredError(param+" product"))
			}
			if change.Quantity == nil {
				changeErrs = append(changeErrs, errs.NewValueIsRequiredError(param+" quantity"))
			}
		case UpdateItem:
			if change.Quantity == nil && change.Note == nil {
				changeErrs = append(changeErrs, errs.NewValueIsRequiredError(param+" quantity or note"))
			}
		case RemoveItem:
		default:
			changeErrs = append(changeErrs, errs.NewValueIsInvalidError(param+" kind"))
			continue
		}
		if change.Kind != AddItem && change.ItemID <= 0 {
			changeErrs = append(changeErrs, errs.NewValueIsInvalidError(param+" item id"))
		}
		if change.Quantity != nil && (*change.Quantity < order.MinItemQuantity || *change.Quantity > order.MaxItemQuantity) {
			changeErrs = append(changeErrs, errs.NewValueIsOutOfRangeError(
				param+" quantity", *change.Quantity, order.MinItemQuantity, order.MaxItemQuantity,
			))
		}
	}
	if err := errors.Join(changeErrs...); err != nil {
		return err
	}

	c.changes = make([]ItemChange, len(changes))
	copy(c.changes, changes)
	return nil
}
