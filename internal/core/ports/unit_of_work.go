package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Every repository it hands
// out reads and writes through the transaction started by Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	PaymentRepository() PaymentRepository
	RegionRepository() RegionRepository
	CouponRepository() CouponRepository
	CourierRepository() CourierRepository
	Catalog() Catalog
	TenantSettings() TenantSettingsProvider
}
