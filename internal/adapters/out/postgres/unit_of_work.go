// Package postgres provides the GORM-based Unit of Work. A unit of work owns one
// database transaction; every repository it hands out after Begin reads and writes
// through that transaction, so row locks taken by GetForUpdate and NextNumber are
// held until Commit or Rollback.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	...
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/adapters/out/postgres/couponrepo"
	"ordering/internal/adapters/out/postgres/courierrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/paymentrepo"
	"ordering/internal/adapters/out/postgres/regionrepo"
	"ordering/internal/adapters/out/postgres/tenantrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists every table the service owns or reads, in migration order.
func Models() []any {
	models := orderrepo.Models()
	return append(models,
		&paymentrepo.TransactionDTO{},
		&courierrepo.CourierDTO{},
		&regionrepo.RegionDTO{},
		&couponrepo.CouponDTO{},
		&catalogrepo.ProductDTO{},
		&tenantrepo.SettingsDTO{},
	)
}

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	defaults ports.TenantSettings
}

// NewGormUnitOfWorkFactory creates a factory whose units of work resolve tenant
// settings on top of the given process defaults.
func NewGormUnitOfWorkFactory(db *gorm.DB, defaults ports.TenantSettings) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, defaults: defaults}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		defaults:          f.defaults,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork is not safe for concurrent use; create one per command.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	defaults          ports.TenantSettings
	settings          *cachedSettings
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	uow.settings = nil
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction after
// Commit, which the deferred rollback in handlers ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn())
}

func (uow *GormUnitOfWork) RegionRepository() ports.RegionRepository {
	return regionrepo.NewGormRegionRepository(uow.conn())
}

func (uow *GormUnitOfWork) CouponRepository() ports.CouponRepository {
	return couponrepo.NewGormCouponRepository(uow.conn())
}

func (uow *GormUnitOfWork) Catalog() ports.Catalog {
	return catalogrepo.NewGormCatalog(uow.conn())
}

// TenantSettings memoizes each tenant's settings for the lifetime of the transaction.
func (uow *GormUnitOfWork) TenantSettings() ports.TenantSettingsProvider {
	if uow.settings == nil {
		uow.settings = &cachedSettings{
			next:     tenantrepo.NewGormTenantSettingsProvider(uow.conn(), uow.defaults),
			byTenant: make(map[kernel.UUID]ports.TenantSettings),
		}
	}
	return uow.settings
}

// TrackAggregate records an aggregate written in this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount reports how many writes were tracked since Begin.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}

type cachedSettings struct {
	next     ports.TenantSettingsProvider
	byTenant map[kernel.UUID]ports.TenantSettings
}

func (c *cachedSettings) Get(ctx context.Context, tenantID kernel.UUID) (ports.TenantSettings, error) {
	if s, ok := c.byTenant[tenantID]; ok {
		return s, nil
	}
	s, err := c.next.Get(ctx, tenantID)
	if err != nil {
		return ports.TenantSettings{}, err
	}
	c.byTenant[tenantID] = s
	return s, nil
}
