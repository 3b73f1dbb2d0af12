// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
// Domain events are emitted only after the unit of work has committed.
package commands

import (
	"context"
	"time"

	"ordering/internal/core/ports"
)

// Clock returns the current time. Handlers take it as a dependency so tests are deterministic.
type Clock func() time.Time

func (c Clock) orNow() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it actually touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// PricingSourcesFactory exposes every read-only source pricing depends on.
	PricingSourcesFactory interface {
		Catalog() ports.Catalog
		RegionRepository() ports.RegionRepository
		CouponRepository() ports.CouponRepository
		TenantSettings() ports.TenantSettingsProvider
	}

	// PricingUoW is used by commands that create or re-price orders. Re-pricing reads
	// the payment repository to refuse edits under a pending charge.
	PricingUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		PricingSourcesFactory
	}

	PricingUoWFactory interface {
		Create() PricingUoW
	}

	// OrderUoW is used by status changes, which may release a pending payment.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW is used to link and unlink couriers.
	CourierUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// PaymentUoW is used by payment initiation and confirmation.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   tx, err := uow.PaymentRepository().GetLatestActive(ctx, orderID)
	//   // ... decide, persist
	//
	//   err = uow.Commit(ctx)
	PaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
		TenantSettings() ports.TenantSettingsProvider
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}
)
