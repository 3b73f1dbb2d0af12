package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/region"
)

// RegionRepository reads tenant delivery regions. Regions are never written by the core.
type RegionRepository interface {
	ListActive(ctx context.Context, tenantID kernel.UUID) ([]*region.Region, error)
}
