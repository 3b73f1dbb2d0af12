package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// CourierRepository answers whether a courier may be linked to a tenant's orders.
type CourierRepository interface {
	Exists(ctx context.Context, tenantID, courierID kernel.UUID) (bool, error)
}
