package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/courierrepo"
	"ordering/internal/adapters/out/postgres/pgtest"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/courier"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	tenantID  kernel.UUID
	now       time.Time
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), postgres_adapter.Models()...)
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, ports.TenantSettings{})
	suite.now = time.Date(2026, 5, 2, 19, 30, 0, 0, time.UTC)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_status_history, payment_transactions, couriers",
	).Error)
	suite.tenantID = kernel.NewUUID()
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ReturnsOrderWithItems() {
	o := suite.saveOrder(1, order.PrintPending)
	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	result, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), result.ID)
	suite.Equal(int64(1), result.Number)
	suite.Equal("DELIVERY", result.Channel)
	suite.Equal("PRINT_PENDING", result.Status)
	suite.Equal("PIX", result.PaymentMethod)
	suite.Equal("36.00", result.Total.StringFixed(2))
	suite.Equal("Boa Viagem", result.Neighborhood)
	suite.Nil(result.CourierID)
	suite.Require().Len(result.Items, 2)
	suite.Equal("BURGER", result.Items[0].ProductRef)
	suite.Equal(2, result.Items[0].Quantity)
	suite.Equal("FRIES", result.Items[1].ProductRef)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Missing_ReturnsOrderNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Nil(result)
	suite.Equal(errs.KindNotFound, errs.KindOf(err))
	suite.True(errs.HasCode(err, errs.CodeOrderNotFound))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderHistory_ReturnsEntriesInSequence() {
	o := suite.saveOrder(1, order.InProgress)
	query, err := queries.NewGetOrderHistoryQuery(o.ID())
	suite.Require().NoError(err)

	history, err := queries.NewGetOrderHistoryQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(history, 2)
	suite.Equal(1, history[0].Sequence)
	suite.Equal("PENDING", history[0].From)
	suite.Equal("PRINT_PENDING", history[0].To)
	suite.Equal(2, history[1].Sequence)
	suite.Equal("IN_PROGRESS", history[1].To)
	suite.Equal("kitchen", history[1].Actor)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderHistory_UnknownOrder_ReturnsEmpty() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	history, err := queries.NewGetOrderHistoryQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(history)
	suite.Empty(history)
}

func (suite *QueriesIntegrationTestSuite) TestGetPendingPayments_ReturnsStaleOnlineTransactions() {
	o := suite.saveOrder(7, order.AwaitingPayment)
	stale := suite.saveTx(o, "pagarme", "prov-1", suite.now.Add(-10*time.Minute))
	suite.saveTx(o, "pagarme", "", suite.now.Add(-10*time.Minute))
	suite.saveTx(o, "pagarme", "prov-2", suite.now)
	query, err := queries.NewGetPendingPaymentsQuery(suite.now.Add(-time.Minute), 10)
	suite.Require().NoError(err)

	pending, err := queries.NewGetPendingPaymentsQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(stale.ID(), pending[0].TransactionID)
	suite.Equal(o.ID(), pending[0].OrderID)
	suite.Equal(int64(7), pending[0].OrderNumber)
	suite.Equal("prov-1", pending[0].ProviderTxID)
}

func (suite *QueriesIntegrationTestSuite) TestGetAvailableCouriers_ExcludesBusyAndInactive() {
	ctx := context.Background()
	alice := suite.saveCourier("Alice", true)
	bob := suite.saveCourier("Bob", true)
	suite.saveCourier("Carol", false)
	suite.saveCourier("Dave", true)

	busy := suite.saveOrder(1, order.InProgress)
	suite.linkAndMove(busy, bob.ID(), order.OutForDelivery)
	waiting := suite.saveOrder(2, order.InProgress)
	suite.linkAndMove(waiting, alice.ID(), order.InProgress)

	query, err := queries.NewGetAvailableCouriersQuery(suite.tenantID)
	suite.Require().NoError(err)

	couriers, err := queries.NewGetAvailableCouriersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(couriers, 2)
	suite.Equal("Alice", couriers[0].Name)
	suite.Equal(alice.ID(), couriers[0].ID)
	suite.Equal("Dave", couriers[1].Name)
}

func (suite *QueriesIntegrationTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	query, err := queries.NewGetAvailableCouriersQuery(suite.tenantID)
	suite.Require().NoError(err)

	_, err = queries.NewGetAvailableCouriersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().Error(err)
}

// saveOrder stores a delivery order (2x 12.00 burger, 1x 8.00 fries, 4.00 fee) walked to status.
func (suite *QueriesIntegrationTestSuite) saveOrder(number int64, status order.Status) *order.Order {
	ctx := context.Background()
	o, err := order.NewOrder(kernel.NewUUID(), suite.tenantID, number, order.Delivery, order.Pix, suite.now)
	suite.Require().NoError(err)
	_, err = o.AddItem("BURGER", "Burger", kernel.MustMoney("12.00"), 2, "")
	suite.Require().NoError(err)
	_, err = o.AddItem("FRIES", "Fries", kernel.MustMoney("8.00"), 1, "")
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("Rua A", "1", "", "Boa Viagem", "Recife", "PE", "")
	suite.Require().NoError(err)
	suite.Require().NoError(o.SetDeliveryAddress(address, nil))
	totals := order.NewTotals(kernel.MustMoney("32.00"), kernel.ZeroMoney(), kernel.MustMoney("4.00"), kernel.ZeroMoney())
	suite.Require().NoError(o.ApplyPricing(totals, suite.now))

	switch status {
	case order.AwaitingPayment:
		suite.Require().NoError(o.ChangeStatus(order.AwaitingPayment, "awaiting payment", "customer", suite.now))
	case order.PrintPending, order.InProgress:
		suite.Require().NoError(o.ChangeStatus(order.PrintPending, "order finalized", "customer", suite.now))
		if status == order.InProgress {
			suite.Require().NoError(o.ChangeStatus(order.InProgress, "printed", "kitchen", suite.now))
		}
	}

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	return o
}

func (suite *QueriesIntegrationTestSuite) linkAndMove(o *order.Order, courierID kernel.UUID, status order.Status) {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()
	loaded, err := repo.Get(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = loaded.LinkCourier(courierID, suite.now)
	suite.Require().NoError(err)
	if loaded.Status() != status {
		suite.Require().NoError(loaded.ChangeStatus(status, "dispatched", "counter", suite.now))
	}
	suite.Require().NoError(repo.Update(ctx, loaded))
}

func (suite *QueriesIntegrationTestSuite) saveTx(o *order.Order, gateway, providerTxID string, at time.Time) *payment.Transaction {
	tx, err := payment.NewTransaction(
		kernel.NewUUID(), o.ID(), o.TenantID(), gateway, "PIX",
		o.Totals().Total(), payment.DefaultCurrency, at,
	)
	suite.Require().NoError(err)
	if providerTxID != "" {
		suite.Require().NoError(tx.RecordProviderResponse(providerTxID, nil, "", at))
	}
	suite.Require().NoError(suite.factory.Create().PaymentRepository().Add(context.Background(), tx))
	return tx
}

func (suite *QueriesIntegrationTestSuite) saveCourier(name string, active bool) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), suite.tenantID, name, "", active)
	suite.Require().NoError(err)
	suite.Require().NoError(courierrepo.NewGormCourierRepository(suite.db).Add(context.Background(), c))
	return c
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
