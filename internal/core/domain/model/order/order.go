package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the ordering core.
//
// Invariants:
//   - tenant, channel, payment method and number are fixed at creation;
//   - delivery orders carry a frozen delivery address;
//   - totals always satisfy total = max(0, subtotal - discount + deliveryFee + serviceFee)
//     and subtotal equals the sum of the current item line totals;
//   - every status change appends exactly one HistoryEntry;
//   - items change only while the status is not terminal.
type Order struct {
	id            kernel.UUID
	tenantID      kernel.UUID
	number        int64
	channel       Channel
	status        Status
	paymentMethod PaymentMethod

	totals Totals

	tableRef             string
	customerID           *kernel.UUID
	courierID            *kernel.UUID
	addressID            *kernel.UUID
	couponID             *kernel.UUID
	paymentTransactionID *kernel.UUID
	deliveryAddress      *kernel.Address

	items      []*Item
	nextItemID int

	history          []HistoryEntry
	persistedHistory int

	createdAt time.Time
	updatedAt time.Time
	version   int

	isConstructed bool
}

// NewOrder creates an order in PENDING status with no items and zero totals.
// Items, address and coupon are attached before the first pricing run.
func NewOrder(
	id, tenantID kernel.UUID,
	number int64,
	channel Channel,
	paymentMethod PaymentMethod,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		totals:        ZeroTotals(),
		nextItemID:    1,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setNumber(number),
		o.setChannel(channel),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State carries every persisted field of an order. It is used only by RestoreOrder.
type State struct {
	ID                   kernel.UUID
	TenantID             kernel.UUID
	Number               int64
	Channel              Channel
	Status               Status
	PaymentMethod        PaymentMethod
	Totals               Totals
	TableRef             string
	CustomerID           *kernel.UUID
	CourierID            *kernel.UUID
	AddressID            *kernel.UUID
	CouponID             *kernel.UUID
	PaymentTransactionID *kernel.UUID
	DeliveryAddress      *kernel.Address
	Items                []*Item
	History              []HistoryEntry
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Version              int
}

// RestoreOrder rebuilds an order loaded from storage. History entries passed in are
// considered persisted; only entries appended afterwards are returned by NewHistory.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		tableRef:             s.TableRef,
		customerID:           s.CustomerID,
		courierID:            s.CourierID,
		addressID:            s.AddressID,
		couponID:             s.CouponID,
		paymentTransactionID: s.PaymentTransactionID,
		deliveryAddress:      s.DeliveryAddress,
		totals:               s.Totals,
		items:                s.Items,
		history:              s.History,
		persistedHistory:     len(s.History),
		createdAt:            s.CreatedAt,
		updatedAt:            s.UpdatedAt,
		version:              s.Version,
		isConstructed:        true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setTenantID(s.TenantID),
		o.setNumber(s.Number),
		o.setChannel(s.Channel),
		o.setPaymentMethod(s.PaymentMethod),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status

	o.nextItemID = 1
	for _, item := range s.Items {
		if item.ID() >= o.nextItemID {
			o.nextItemID = item.ID() + 1
		}
	}

	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) TenantID() kernel.UUID { return o.tenantID }
func (o *Order) Number() int64 { return o.number }
func (o *Order) Channel() Channel { return o.channel }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Totals() Totals { return o.totals }
func (o *Order) TableRef() string { return o.tableRef }
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }
func (o *Order) CourierID() *kernel.UUID { return o.courierID }
func (o *Order) AddressID() *kernel.UUID { return o.addressID }
func (o *Order) CouponID() *kernel.UUID { return o.couponID }
func (o *Order) PaymentTransactionID() *kernel.UUID { return o.paymentTransactionID }
func (o *Order) DeliveryAddress() *kernel.Address { return o.deliveryAddress }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) Version() int { return o.version }

// Items returns a copy of the item list; the items themselves are read-only outside the package.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

// History returns every transition, oldest first.
func (o *Order) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// NewHistory returns the entries appended since the order was created or restored.
func (o *Order) NewHistory() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history)-o.persistedHistory)
	copy(out, o.history[o.persistedHistory:])
	return out
}

// MarkPersisted is called by the repository after writing the order.
func (o *Order) MarkPersisted() {
	o.persistedHistory = len(o.history)
	o.version++
}

// SetTable records the table of a dine-in order.
func (o *Order) SetTable(tableRef string) error {
	if o.channel != DineIn && strings.TrimSpace(tableRef) != "" {
		return errs.NewValidationError(errs.CodeInvalidValue, "only dine-in orders have a table")
	}
	o.tableRef = strings.TrimSpace(tableRef)
	return nil
}

func (o *Order) SetCustomer(customerID *kernel.UUID) {
	o.customerID = customerID
}

// SetDeliveryAddress freezes a copy of the address into a delivery order.
func (o *Order) SetDeliveryAddress(address kernel.Address, addressID *kernel.UUID) error {
	if o.channel != Delivery {
		return errs.NewValidationError(errs.CodeNotDeliveryOrder, "only delivery orders have a delivery address")
	}
	if err := address.Validate(); err != nil {
		return err
	}
	snapshot := address
	o.deliveryAddress = &snapshot
	o.addressID = addressID
	return nil
}

// SetCoupon attaches or clears the coupon. Its effect shows only after the next ApplyPricing.
func (o *Order) SetCoupon(couponID *kernel.UUID) {
	o.couponID = couponID
}

// AttachPaymentTransaction points the order at its current payment transaction.
func (o *Order) AttachPaymentTransaction(txID kernel.UUID) error {
	if err := txID.Validate(); err != nil {
		return err
	}
	o.paymentTransactionID = &txID
	return nil
}

// AddItem appends a line with a catalog snapshot and returns it.
func (o *Order) AddItem(productRef, productName string, unitPrice kernel.Money, quantity int, note string) (*Item, error) {
	if err := o.ensureEditable(); err != nil {
		return nil, err
	}
	item, err := newItem(o.nextItemID, productRef, productName, unitPrice, quantity, note)
	if err != nil {
		return nil, err
	}
	o.items = append(o.items, item)
	o.nextItemID++
	return item, nil
}

// UpdateItem changes quantity and/or note of an existing line. Nil arguments are left untouched.
func (o *Order) UpdateItem(itemID int, quantity *int, note *string) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	item, err := o.findItem(itemID)
	if err != nil {
		return err
	}
	updated := *item
	if quantity != nil {
		if err = updated.setQuantity(*quantity); err != nil {
			return err
		}
	}
	if note != nil {
		if err = updated.setNote(*note); err != nil {
			return err
		}
	}
	*item = updated
	return nil
}

// RemoveItem deletes a line. Removing the last line is rejected: an order never has zero items.
func (o *Order) RemoveItem(itemID int) error {
	if err := o.ensureEditable(); err != nil {
		return err
	}
	for i, item := range o.items {
		if item.id == itemID {
			if len(o.items) == 1 {
				return errs.NewValidationError(errs.CodeEmptyOrder, "an order must keep at least one item")
			}
			o.items = append(o.items[:i], o.items[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFoundError(errs.CodeItemNotFound, fmt.Sprintf("item %d not found", itemID))
}

// Subtotal sums the current line totals.
func (o *Order) Subtotal() kernel.Money {
	sum := kernel.ZeroMoney()
	for _, item := range o.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// ApplyPricing stores totals computed for the current items. A result whose subtotal
// disagrees with the items is refused, so stale totals cannot be persisted.
func (o *Order) ApplyPricing(totals Totals, at time.Time) error {
	if len(o.items) == 0 {
		return errs.NewValidationError(errs.CodeEmptyOrder, "an order needs at least one item")
	}
	if !totals.Subtotal().Equal(o.Subtotal()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"totals are stale",
			fmt.Errorf("subtotal %s does not match items %s", totals.Subtotal(), o.Subtotal()),
		)
	}
	o.totals = totals
	o.updatedAt = at
	return nil
}

// ChangeStatus moves the order to target and appends a history entry. Illegal
// transitions return a conflict error and leave the order untouched.
func (o *Order) ChangeStatus(target Status, reason, actor string, at time.Time) error {
	if err := o.status.CanTransitionTo(target, o.channel); err != nil {
		return err
	}
	o.history = append(o.history, HistoryEntry{
		sequence: len(o.history) + 1,
		from:     o.status,
		to:       target,
		reason:   strings.TrimSpace(reason),
		actor:    strings.TrimSpace(actor),
		at:       at,
	})
	o.status = target
	o.updatedAt = at
	return nil
}

// LinkCourier assigns a courier to a delivery order. It reports false when the same
// courier is already linked.
func (o *Order) LinkCourier(courierID kernel.UUID, at time.Time) (bool, error) {
	if err := o.ensureDeliveryInFlight(); err != nil {
		return false, err
	}
	if err := courierID.Validate(); err != nil {
		return false, err
	}
	if o.courierID != nil && o.courierID.IsEqual(courierID) {
		return false, nil
	}
	o.courierID = &courierID
	o.updatedAt = at
	return true, nil
}

// UnlinkCourier clears the courier. It reports false when none was linked.
func (o *Order) UnlinkCourier(at time.Time) (bool, error) {
	if err := o.ensureDeliveryInFlight(); err != nil {
		return false, err
	}
	if o.courierID == nil {
		return false, nil
	}
	o.courierID = nil
	o.updatedAt = at
	return true, nil
}

func (o *Order) ensureDeliveryInFlight() error {
	if o.channel != Delivery {
		return errs.NewValidationError(errs.CodeNotDeliveryOrder, "couriers can only be linked to delivery orders")
	}
	if o.status.IsTerminal() {
		return errs.NewConflictError(errs.CodeOrderNotEditable, fmt.Sprintf("order is %s", o.status))
	}
	return nil
}

func (o *Order) ensureEditable() error {
	if o.status.IsTerminal() {
		return errs.NewConflictError(errs.CodeOrderNotEditable, fmt.Sprintf("order is %s", o.status))
	}
	return nil
}

func (o *Order) findItem(itemID int) (*Item, error) {
	for _, item := range o.items {
		if item.id == itemID {
			return item, nil
		}
	}
	return nil, errs.NewNotFoundError(errs.CodeItemNotFound, fmt.Sprintf("item %d not found", itemID))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenant", err)
	}
	o.tenantID = id
	return nil
}

func (o *Order) setNumber(number int64) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("number is invalid", fmt.Errorf("%d is not greater than 0", number))
	}
	o.number = number
	return nil
}

func (o *Order) setChannel(channel Channel) error {
	if err := channel.Validate(); err != nil {
		return err
	}
	o.channel = channel
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}
