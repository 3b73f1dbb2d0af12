// Package courierrepo maps courier roster entries onto the couriers table.
package courierrepo

import (
	"ordering/internal/core/domain/model/courier"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CourierDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Phone    string    `gorm:"type:varchar(32)"`
	Active   bool      `gorm:"not null"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:       c.ID().Bytes(),
		TenantID: c.TenantID().Bytes(),
		Name:     c.Name(),
		Phone:    c.Phone(),
		Active:   c.IsActive(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	return courier.NewCourier(id, tenantID, dto.Name, dto.Phone, dto.Active)
}
