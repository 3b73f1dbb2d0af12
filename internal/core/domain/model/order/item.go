package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

const (
	MinItemQuantity = 1
	MaxItemQuantity = 999
	maxNoteLength   = 280
)

// Item is one order line. Name and unit price are a snapshot of the catalog at the time
// the line was added; later catalog edits do not reach it.
type Item struct {
	id          int
	productRef  string
	productName string
	unitPrice   kernel.Money
	quantity    int
	note        string
}

func newItem(id int, productRef, productName string, unitPrice kernel.Money, quantity int, note string) (*Item, error) {
	item := &Item{id: id}
	if err := errors.Join(
		item.setProduct(productRef, productName),
		item.setQuantity(quantity),
		item.setNote(note),
	); err != nil {
		return nil, err
	}
	item.unitPrice = unitPrice
	return item, nil
}

// NewItem builds a line outside of an order, e.g. to price a basket before the
// order exists. Lines join an order only through AddItem.
func NewItem(id int, productRef, productName string, unitPrice kernel.Money, quantity int, note string) (*Item, error) {
	return RestoreItem(id, productRef, productName, unitPrice, quantity, note)
}

// RestoreItem rebuilds a persisted line.
func RestoreItem(id int, productRef, productName string, unitPrice kernel.Money, quantity int, note string) (*Item, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("item id is invalid", fmt.Errorf("%d is not greater than 0", id))
	}
	return newItem(id, productRef, productName, unitPrice, quantity, note)
}

func (i *Item) ID() int { return i.id }
func (i *Item) ProductRef() string { return i.productRef }
func (i *Item) ProductName() string { return i.productName }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) Note() string { return i.note }

// LineTotal is always derived, never stored as the source of truth.
func (i *Item) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

func (i *Item) setProduct(ref, name string) error {
	if strings.TrimSpace(ref) == "" {
		return errs.NewValueIsRequiredError("product reference")
	}
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productRef = strings.TrimSpace(ref)
	i.productName = strings.TrimSpace(name)
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < MinItemQuantity || quantity > MaxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, MinItemQuantity, MaxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setNote(note string) error {
	note = strings.TrimSpace(note)
	if len([]rune(note)) > maxNoteLength {
		return errs.NewValueIsOutOfRangeError("note length", len([]rune(note)), 0, maxNoteLength)
	}
	i.note = note
	return nil
}
