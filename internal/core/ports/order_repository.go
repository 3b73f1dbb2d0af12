// Package ports defines the contracts between the ordering core and its infrastructure:
// repositories bound to a unit of work, read-only collaborators (catalog, regions,
// coupons, tenant settings) and the outbound gateway and event emitter.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates together with
// their items and status history.
type OrderRepository interface {
	// Add persists a new order with its items and history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Items are rewritten and only
	// history entries appended since the last load are inserted. Fails with
	// CONCURRENT_UPDATE if the stored version moved since the order was read.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds its row lock until the unit of work ends.
	// Every command that mutates an order loads it this way.
	//
	// Example:
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   if errs.KindOf(err) == errs.KindNotFound {
	//       return nil, err
	//   }
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// NextNumber returns the next order number of a tenant. The sequence row stays
	// locked until the unit of work ends, so numbers are never handed out twice.
	NextNumber(ctx context.Context, tenantID kernel.UUID) (int64, error)
}
