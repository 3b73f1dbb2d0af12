package regionrepo

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/region"

	"gorm.io/gorm"
)

type GormRegionRepository struct {
	db *gorm.DB
}

func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// Add stores a region. Used for seeding; the ordering core only reads regions.
func (r *GormRegionRepository) Add(ctx context.Context, aggregate *region.Region) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListActive returns the tenant's active regions in a stable order.
func (r *GormRegionRepository) ListActive(ctx context.Context, tenantID kernel.UUID) ([]*region.Region, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RegionDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active", tenantID.Bytes()).
		Order("neighborhood, city, postal_code").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	regions := make([]*region.Region, 0, len(dtos))
	for _, dto := range dtos {
		reg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}
	return regions, nil
}
