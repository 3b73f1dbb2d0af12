package commands_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/region"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func decimalRate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func boaViagem(t *testing.T) []*region.Region {
	t.Helper()
	r, err := region.NewRegion(kernel.NewUUID(), tenantID, "Boa Viagem", "Recife", "PE", "", kernel.MustMoney("8.90"), 40, true)
	require.NoError(t, err)
	return []*region.Region{r}
}

func address(t *testing.T, neighborhood string) *kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("Av. Conselheiro Aguiar", "2000", "apto 12", neighborhood, "Recife", "PE", "51020-020")
	require.NoError(t, err)
	return &a
}

// placedOrder returns a priced order in its initial status, as if loaded from storage.
func placedOrder(t *testing.T, channel order.Channel, method order.PaymentMethod, prices ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), tenantID, 7, channel, method, now)
	require.NoError(t, err)
	subtotal := kernel.ZeroMoney()
	for i, price := range prices {
		_, err = o.AddItem(string(rune('A'+i))+"-SKU", "Item", kernel.MustMoney(price), 1, "")
		require.NoError(t, err)
		subtotal = subtotal.Add(kernel.MustMoney(price))
	}
	if channel == order.Delivery {
		require.NoError(t, o.SetDeliveryAddress(*address(t, "Boa Viagem"), nil))
	}
	z := kernel.ZeroMoney()
	require.NoError(t, o.ApplyPricing(order.NewTotals(subtotal, z, z, z), now))
	initial := order.PrintPending
	if method.RequiresOnlineConfirmation() {
		initial = order.AwaitingPayment
	}
	require.NoError(t, o.ChangeStatus(initial, "order finalized", "customer", now))
	o.MarkPersisted()
	return o
}
