// Package regionrepo reads tenant delivery regions.
package regionrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/region"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegionDTO stores locality names already normalized by region.NewRegion.
type RegionDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Neighborhood     string          `gorm:"type:varchar(255)"`
	City             string          `gorm:"type:varchar(255)"`
	State            string          `gorm:"type:varchar(64)"`
	PostalCode       string          `gorm:"type:varchar(16)"`
	Fee              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	EstimatedMinutes int             `gorm:"not null"`
	Active           bool            `gorm:"not null;index"`
}

func (RegionDTO) TableName() string {
	return "delivery_regions"
}

func fromDomain(r *region.Region) RegionDTO {
	return RegionDTO{
		ID:               r.ID().Bytes(),
		TenantID:         r.TenantID().Bytes(),
		Neighborhood:     r.Neighborhood(),
		City:             r.City(),
		State:            r.State(),
		PostalCode:       r.PostalCode(),
		Fee:              r.Fee().Decimal(),
		EstimatedMinutes: r.EstimatedMinutes(),
		Active:           r.IsActive(),
	}
}

func toDomain(dto RegionDTO) (*region.Region, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.Fee)
	if err != nil {
		return nil, err
	}
	return region.NewRegion(id, tenantID, dto.Neighborhood, dto.City, dto.State, dto.PostalCode, fee, dto.EstimatedMinutes, dto.Active)
}
