package order

import "ordering/internal/core/domain/model/kernel"

// Totals is the priced view of an order.
type Totals struct {
	subtotal    kernel.Money
	discount    kernel.Money
	deliveryFee kernel.Money
	serviceFee  kernel.Money
	total       kernel.Money
}

// NewTotals derives total = max(0, subtotal - discount + deliveryFee + serviceFee).
func NewTotals(subtotal, discount, deliveryFee, serviceFee kernel.Money) Totals {
	return Totals{
		subtotal:    subtotal,
		discount:    discount,
		deliveryFee: deliveryFee,
		serviceFee:  serviceFee,
		total:       subtotal.Add(deliveryFee).Add(serviceFee).SubFloor(discount),
	}
}

func ZeroTotals() Totals {
	z := kernel.ZeroMoney()
	return NewTotals(z, z, z, z)
}

func (t Totals) Subtotal() kernel.Money { return t.subtotal }
func (t Totals) Discount() kernel.Money { return t.discount }
func (t Totals) DeliveryFee() kernel.Money { return t.deliveryFee }
func (t Totals) ServiceFee() kernel.Money { return t.serviceFee }
func (t Totals) Total() kernel.Money { return t.total }

func (t Totals) Equal(other Totals) bool {
	return t.subtotal.Equal(other.subtotal) &&
		t.discount.Equal(other.discount) &&
		t.deliveryFee.Equal(other.deliveryFee) &&
		t.serviceFee.Equal(other.serviceFee) &&
		t.total.Equal(other.total)
}
