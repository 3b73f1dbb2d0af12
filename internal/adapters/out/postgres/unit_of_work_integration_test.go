package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/pgtest"
	"ordering/internal/adapters/out/postgres/tenantrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	defaults  ports.TenantSettings
	now       time.Time
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background(), postgres_adapter.Models()...)
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.defaults = ports.TenantSettings{
		ServiceFeeRate: decimal.RequireFromString("0.10"),
		MaxItems:       50,
		Currency:       "BRL",
	}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, suite.defaults)
	suite.now = time.Date(2026, 5, 2, 19, 30, 0, 0, time.UTC)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_status_history, order_sequences, payment_transactions, tenant_settings",
	).Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndPayment() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder(ctx, uow)
	tx := suite.newTx(o)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, tx))
	suite.Equal(2, uow.(*postgres_adapter.GormUnitOfWork).TrackedCount())
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	loaded, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), loaded.Number())
	latest, err := reader.PaymentRepository().GetLatestActive(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(tx.ID(), latest.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryWrite() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.newOrder(ctx, uow)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, suite.newTx(o)))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Equal(errs.CodeOrderNotFound, errs.CodeOf(err))
	_, err = reader.PaymentRepository().GetLatestActive(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	// the number handed out inside the rolled back transaction is reused
	next := suite.factory.Create()
	suite.Require().NoError(next.Begin(ctx))
	defer func() { _ = next.Rollback(ctx) }()
	number, err := next.OrderRepository().NextNumber(ctx, o.TenantID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), number)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBeginTwice_KeepsSingleTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.Commit(ctx))
	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTenantSettings_ResolvedOncePerUnitOfWork() {
	ctx := context.Background()
	tenantID := kernel.NewUUID()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	first, err := uow.TenantSettings().Get(ctx, tenantID)
	suite.Require().NoError(err)
	suite.Equal(50, first.MaxItems)

	maxItems := 5
	suite.Require().NoError(suite.db.Create(&tenantrepo.SettingsDTO{
		TenantID: tenantID.Bytes(),
		MaxItems: &maxItems,
	}).Error)

	second, err := uow.TenantSettings().Get(ctx, tenantID)
	suite.Require().NoError(err)
	suite.Equal(first, second)

	fresh, err := suite.factory.Create().TenantSettings().Get(ctx, tenantID)
	suite.Require().NoError(err)
	suite.Equal(5, fresh.MaxItems)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(ctx context.Context, uow ports.UnitOfWork) *order.Order {
	tenantID := kernel.NewUUID()
	number, err := uow.OrderRepository().NextNumber(ctx, tenantID)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), tenantID, number, order.Counter, order.Pix, suite.now)
	suite.Require().NoError(err)
	_, err = o.AddItem("COFFEE", "Coffee", kernel.MustMoney("8.00"), 2, "")
	suite.Require().NoError(err)
	totals := order.NewTotals(kernel.MustMoney("16.00"), kernel.ZeroMoney(), kernel.ZeroMoney(), kernel.MustMoney("1.60"))
	suite.Require().NoError(o.ApplyPricing(totals, suite.now))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) newTx(o *order.Order) *payment.Transaction {
	tx, err := payment.NewTransaction(
		kernel.NewUUID(), o.ID(), o.TenantID(), "pagarme", "PIX",
		o.Totals().Total(), payment.DefaultCurrency, suite.now,
	)
	suite.Require().NoError(err)
	return tx
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
