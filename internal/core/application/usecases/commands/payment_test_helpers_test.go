package commands_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// paymentRig wires repositories shared by every unit of work a payment handler opens.
type paymentRig struct {
	orders   *MockOrderRepository
	payments *MockPaymentRepository
	settings *MockTenantSettings
	gateway  *MockGateway
	emitter  *MockEmitter
}

func newPaymentRig() *paymentRig {
	settings := new(MockTenantSettings)
	settings.On("Get", mock.Anything, tenantID).Return(defaultSettings(), nil).Maybe()
	return &paymentRig{
		orders:   new(MockOrderRepository),
		payments: new(MockPaymentRepository),
		settings: settings,
		gateway:  new(MockGateway),
		emitter:  new(MockEmitter),
	}
}

func (r *paymentRig) uow() *MockUoW {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(r.orders).Maybe()
	uow.On("PaymentRepository").Return(r.payments).Maybe()
	uow.On("TenantSettings").Return(r.settings).Maybe()
	return uow
}

func pendingTx(t *testing.T, o *order.Order, gateway string) *payment.Transaction {
	t.Helper()
	return pendingTxFor(t, o, gateway, o.Totals().Total())
}

// pendingTxFor opens a transaction for amount, which may differ from the order total.
func pendingTxFor(t *testing.T, o *order.Order, gateway string, amount kernel.Money) *payment.Transaction {
	t.Helper()
	tx, err := payment.NewTransaction(
		kernel.NewUUID(), o.ID(), o.TenantID(), gateway, o.PaymentMethod().String(),
		amount, payment.DefaultCurrency, now,
	)
	require.NoError(t, err)
	require.NoError(t, o.AttachPaymentTransaction(tx.ID()))
	return tx
}
