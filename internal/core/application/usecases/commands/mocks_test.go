package commands_test

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/model/region"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	now      = time.Date(2026, 5, 2, 19, 30, 0, 0, time.UTC)
	tenantID = kernel.MustUUID("9b0d8a9e-59a4-4c3f-8a41-2f7d2b1f6a01")
	clock    = commands.Clock(func() time.Time { return now })
	logger   = slog.New(slog.DiscardHandler)
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context, tenantID kernel.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(kernel.UUID) *payment.Transaction); ok {
		return fn(id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentRepository) GetLatestActive(ctx context.Context, orderID kernel.UUID) (*payment.Transaction, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

type MockRegionRepository struct{ mock.Mock }

func (m *MockRegionRepository) ListActive(ctx context.Context, tenantID kernel.UUID) ([]*region.Region, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*region.Region), args.Error(1)
}

type MockCouponRepository struct{ mock.Mock }

func (m *MockCouponRepository) Get(ctx context.Context, id kernel.UUID) (*coupon.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetSellablePrice(
	ctx context.Context,
	tenantID kernel.UUID,
	productRef string,
) (ports.SellableProduct, error) {
	args := m.Called(ctx, tenantID, productRef)
	return args.Get(0).(ports.SellableProduct), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Exists(ctx context.Context, tenantID, courierID kernel.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, courierID)
	return args.Bool(0), args.Error(1)
}

type MockTenantSettings struct{ mock.Mock }

func (m *MockTenantSettings) Get(ctx context.Context, tenantID kernel.UUID) (ports.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(ports.TenantSettings), args.Error(1)
}

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Charge(ctx context.Context, request ports.ChargeRequest) (payment.ProviderResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(payment.ProviderResult), args.Error(1)
}

func (m *MockGateway) Fetch(
	ctx context.Context,
	gateway ports.GatewaySettings,
	providerTxID string,
) (payment.ProviderResult, error) {
	args := m.Called(ctx, gateway, providerTxID)
	return args.Get(0).(payment.ProviderResult), args.Error(1)
}

type MockEmitter struct{ mock.Mock }

func (m *MockEmitter) Emit(ctx context.Context, event order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) RegionRepository() ports.RegionRepository {
	args := m.Called()
	return args.Get(0).(ports.RegionRepository)
}

func (m *MockUoW) CouponRepository() ports.CouponRepository {
	args := m.Called()
	return args.Get(0).(ports.CouponRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) Catalog() ports.Catalog {
	args := m.Called()
	return args.Get(0).(ports.Catalog)
}

func (m *MockUoW) TenantSettings() ports.TenantSettingsProvider {
	args := m.Called()
	return args.Get(0).(ports.TenantSettingsProvider)
}

// MockUoWFactory hands out the queued units of work in order, one per Create call.
type MockUoWFactory struct {
	uows []*MockUoW
}

func newUoWFactory(uows ...*MockUoW) *MockUoWFactory {
	return &MockUoWFactory{uows: uows}
}

func (f *MockUoWFactory) next() *MockUoW {
	uow := f.uows[0]
	f.uows = f.uows[1:]
	return uow
}

func (f *MockUoWFactory) pricing() commands.PricingUoWFactory {
	return pricingFactory{f}
}

func (f *MockUoWFactory) orders() commands.OrderUoWFactory {
	return orderFactory{f}
}

func (f *MockUoWFactory) couriers() commands.CourierUoWFactory {
	return courierFactory{f}
}

func (f *MockUoWFactory) payments() commands.PaymentUoWFactory {
	return paymentFactory{f}
}

type pricingFactory struct{ f *MockUoWFactory }

func (p pricingFactory) Create() commands.PricingUoW { return p.f.next() }

type orderFactory struct{ f *MockUoWFactory }

func (o orderFactory) Create() commands.OrderUoW { return o.f.next() }

type courierFactory struct{ f *MockUoWFactory }

func (c courierFactory) Create() commands.CourierUoW { return c.f.next() }

type paymentFactory struct{ f *MockUoWFactory }

func (p paymentFactory) Create() commands.PaymentUoW { return p.f.next() }

// expectTx registers Begin and Rollback, which every handler calls, and Commit when committed.
func expectTx(uow *MockUoW, ctx context.Context, committed bool) {
	uow.On("Begin", ctx).Return(nil).Once()
	if committed {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Maybe()
}

func defaultSettings() ports.TenantSettings {
	return ports.TenantSettings{
		ServiceFeeRate: decimalRate("0.01"),
		MaxItems:       10,
		Currency:       payment.DefaultCurrency,
		Gateway:        ports.GatewaySettings{Name: "pagflow", BaseURL: "https://pay.example.test", APIKey: "k"},
	}
}
