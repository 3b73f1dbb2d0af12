package services_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/region"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2026, 5, 2, 19, 30, 0, 0, time.UTC)
	tenantID = kernel.MustUUID("6f1c3a2e-3b43-4a3e-9a55-0d9f5a0e7c11")
)

func newRegion(t *testing.T, neighborhood, city, state, postalCode, fee string) *region.Region {
	t.Helper()
	r, err := region.NewRegion(kernel.NewUUID(), tenantID, neighborhood, city, state, postalCode, kernel.MustMoney(fee), 35, true)
	require.NoError(t, err)
	return r
}

func newAddress(t *testing.T, neighborhood, city, state, postalCode string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("Rua da Aurora", "100", "", neighborhood, city, state, postalCode)
	require.NoError(t, err)
	return a
}

func newCoupon(t *testing.T, fixed string, pct int64, minPurchase *kernel.Money) *coupon.Coupon {
	t.Helper()
	c, err := coupon.NewCoupon(
		kernel.NewUUID(), tenantID, "PROMO",
		kernel.MustMoney(fixed), decimal.NewFromInt(pct), minPurchase,
		now.Add(-24*time.Hour), nil, true,
	)
	require.NoError(t, err)
	return c
}

// newOrderWithItems builds an order whose items add up to the given unit prices (quantity 1 each).
func newOrderWithItems(t *testing.T, channel order.Channel, method order.PaymentMethod, prices ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), tenantID, 42, channel, method, now)
	require.NoError(t, err)
	for i, price := range prices {
		_, err = o.AddItem("SKU-"+string(rune('A'+i)), "Item", kernel.MustMoney(price), 1, "")
		require.NoError(t, err)
	}
	return o
}
