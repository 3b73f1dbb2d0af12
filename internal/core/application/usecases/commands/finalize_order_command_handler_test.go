package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type finalizeFixture struct {
	uow      *MockUoW
	orders   *MockOrderRepository
	catalog  *MockCatalog
	regions  *MockRegionRepository
	coupons  *MockCouponRepository
	settings *MockTenantSettings
	emitter  *MockEmitter
	handler  commands.FinalizeOrderCommandHandler
}

func newFinalizeFixture() *finalizeFixture {
	f := &finalizeFixture{
		uow:      new(MockUoW),
		orders:   new(MockOrderRepository),
		catalog:  new(MockCatalog),
		regions:  new(MockRegionRepository),
		coupons:  new(MockCouponRepository),
		settings: new(MockTenantSettings),
		emitter:  new(MockEmitter),
	}
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	f.uow.On("Catalog").Return(f.catalog).Maybe()
	f.uow.On("RegionRepository").Return(f.regions).Maybe()
	f.uow.On("CouponRepository").Return(f.coupons).Maybe()
	f.uow.On("TenantSettings").Return(f.settings).Maybe()
	f.handler = commands.NewFinalizeOrderCommandHandler(newUoWFactory(f.uow).pricing(), f.emitter, clock, logger)
	return f
}

func (f *finalizeFixture) product(ref, name, price string, active bool) {
	f.catalog.On("GetSellablePrice", mock.Anything, tenantID, ref).
		Return(ports.SellableProduct{Ref: ref, Name: name, Price: kernel.MustMoney(price), Active: active}, nil)
}

func deliveryCommand(t *testing.T, neighborhood string, couponID *kernel.UUID) commands.FinalizeOrderCommand {
	t.Helper()
	cmd, err := commands.NewFinalizeOrderCommand(
		tenantID, order.Delivery, order.Cash,
		[]commands.OrderLine{{ProductRef: "PIZZA-G", Quantity: 1}, {ProductRef: "SODA", Quantity: 2, Note: "cold"}},
		address(t, neighborhood), nil, couponID, "", nil, "customer",
	)
	require.NoError(t, err)
	return cmd
}

func TestFinalizeOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should persist priced delivery order and emit after commit", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		f.product("PIZZA-G", "Pizza grande", "30.00", true)
		f.product("SODA", "Refrigerante", "10.00", true)
		f.settings.On("Get", ctx, tenantID).Return(defaultSettings(), nil).Once()
		f.regions.On("ListActive", ctx, tenantID).Return(boaViagem(t), nil).Once()
		f.orders.On("NextNumber", ctx, tenantID).Return(int64(101), nil).Once()

		var committed bool
		mock.InOrder(
			f.uow.On("Begin", ctx).Return(nil).Once(),
			f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
			f.uow.On("Commit", ctx).Run(func(mock.Arguments) { committed = true }).Return(nil).Once(),
		)
		f.uow.On("Rollback", ctx).Return(nil).Maybe()
		f.emitter.On("Emit", ctx, mock.MatchedBy(func(e order.Event) bool {
			return committed && e.Type == order.EventFinalized && e.Total == "59.40"
		})).Return(nil).Once()

		o, err := f.handler.Handle(ctx, deliveryCommand(t, "Boa Viagem", nil))

		require.NoError(t, err)
		assert.Equal(t, int64(101), o.Number())
		assert.Equal(t, order.PrintPending, o.Status())
		assert.Equal(t, "50.00", o.Totals().Subtotal().String())
		assert.Equal(t, "8.90", o.Totals().DeliveryFee().String())
		assert.Equal(t, "0.50", o.Totals().ServiceFee().String())
		assert.Equal(t, "59.40", o.Totals().Total().String())
		require.Len(t, o.Items(), 2)
		assert.Equal(t, "Refrigerante", o.Items()[1].ProductName())
		require.Len(t, o.History(), 1)
		assert.Equal(t, order.Pending, o.History()[0].From())
		assert.Equal(t, "Boa Viagem", o.DeliveryAddress().Neighborhood())
		f.uow.AssertExpectations(t)
		f.orders.AssertExpectations(t)
		f.emitter.AssertExpectations(t)
	})

	t.Run("should apply coupon read in the same unit of work", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		f.product("PIZZA-G", "Pizza grande", "30.00", true)
		f.product("SODA", "Refrigerante", "10.00", true)
		c, err := coupon.NewCoupon(kernel.NewUUID(), tenantID, "DEZ", kernel.ZeroMoney(), decimal.NewFromInt(10), nil, now.AddDate(0, -1, 0), nil, true)
		require.NoError(t, err)
		couponID := c.ID()
		expectTx(f.uow, ctx, true)
		f.settings.On("Get", ctx, tenantID).Return(defaultSettings(), nil)
		f.regions.On("ListActive", ctx, tenantID).Return(boaViagem(t), nil)
		f.coupons.On("Get", ctx, couponID).Return(c, nil).Once()
		f.orders.On("NextNumber", ctx, tenantID).Return(int64(5), nil)
		f.orders.On("Add", ctx, mock.Anything).Return(nil)
		f.emitter.On("Emit", ctx, mock.Anything).Return(nil)

		o, err := f.handler.Handle(ctx, deliveryCommand(t, "Boa Viagem", &couponID))

		require.NoError(t, err)
		assert.Equal(t, "5.00", o.Totals().Discount().String())
		assert.Equal(t, "54.40", o.Totals().Total().String())
		assert.True(t, o.CouponID().IsEqual(couponID))
		f.coupons.AssertExpectations(t)
	})

	t.Run("should wait for payment when paying online", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		f.product("COMBO", "Combo", "25.00", true)
		expectTx(f.uow, ctx, true)
		f.settings.On("Get", ctx, tenantID).Return(defaultSettings(), nil)
		f.orders.On("NextNumber", ctx, tenantID).Return(int64(1), nil)
		f.orders.On("Add", ctx, mock.Anything).Return(nil)
		f.emitter.On("Emit", ctx, mock.Anything).Return(nil)
		cmd, err := commands.NewFinalizeOrderCommand(
			tenantID, order.Counter, order.Pix,
			[]commands.OrderLine{{ProductRef: "COMBO", Quantity: 1}},
			nil, nil, nil, "", nil, "kiosk",
		)
		require.NoError(t, err)

		o, err := f.handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.AwaitingPayment, o.Status())
		assert.True(t, o.Totals().DeliveryFee().IsZero())
		f.regions.AssertNotCalled(t, "ListActive", mock.Anything, mock.Anything)
	})

	t.Run("should refuse inactive product before any write", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		f.product("PIZZA-G", "Pizza grande", "30.00", true)
		f.product("SODA", "Refrigerante", "10.00", false)
		expectTx(f.uow, ctx, false)
		f.settings.On("Get", ctx, tenantID).Return(defaultSettings(), nil)

		o, err := f.handler.Handle(ctx, deliveryCommand(t, "Boa Viagem", nil))

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.HasCode(err, errs.CodeProductUnavailable))
		f.orders.AssertNotCalled(t, "NextNumber", mock.Anything, mock.Anything)
		f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.emitter.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
	})

	t.Run("should refuse uncovered address", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		f.product("PIZZA-G", "Pizza grande", "30.00", true)
		f.product("SODA", "Refrigerante", "10.00", true)
		expectTx(f.uow, ctx, false)
		f.settings.On("Get", ctx, tenantID).Return(defaultSettings(), nil)
		f.regions.On("ListActive", ctx, tenantID).Return(boaViagem(t), nil)

		_, err := f.handler.Handle(ctx, deliveryCommand(t, "Casa Forte", nil))

		require.Error(t, err)
		assert.Equal(t, errs.KindRegionUnavailable, errs.KindOf(err))
		f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		f.emitter.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
	})

	t.Run("should enforce tenant item cap", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		expectTx(f.uow, ctx, false)
		settings := defaultSettings()
		settings.MaxItems = 1
		f.settings.On("Get", ctx, tenantID).Return(settings, nil)

		_, err := f.handler.Handle(ctx, deliveryCommand(t, "Boa Viagem", nil))

		assert.True(t, errs.HasCode(err, errs.CodeTooManyItems))
		f.catalog.AssertNotCalled(t, "GetSellablePrice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should report unknown coupon", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		f.product("PIZZA-G", "Pizza grande", "30.00", true)
		f.product("SODA", "Refrigerante", "10.00", true)
		couponID := kernel.NewUUID()
		expectTx(f.uow, ctx, false)
		f.settings.On("Get", ctx, tenantID).Return(defaultSettings(), nil)
		f.regions.On("ListActive", ctx, tenantID).Return(boaViagem(t), nil)
		f.coupons.On("Get", ctx, couponID).Return(nil, errs.NewObjectNotFoundError("coupon", couponID))

		_, err := f.handler.Handle(ctx, deliveryCommand(t, "Boa Viagem", &couponID))

		assert.True(t, errs.HasCode(err, errs.CodeCouponNotFound))
	})

	t.Run("should not commit when begin fails", func(t *testing.T) {
		ctx := t.Context()
		f := newFinalizeFixture()
		f.uow.On("Begin", ctx).Return(assert.AnError).Once()

		_, err := f.handler.Handle(ctx, deliveryCommand(t, "Boa Viagem", nil))

		require.ErrorIs(t, err, assert.AnError)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		f := newFinalizeFixture()

		_, err := f.handler.Handle(t.Context(), commands.FinalizeOrderCommand{})

		require.ErrorIs(t, err, commands.ErrFinalizeOrderCommandIsNotConstructed)
	})
}
