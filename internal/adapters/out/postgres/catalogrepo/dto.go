// Package catalogrepo reads product prices for item snapshots.
package catalogrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_products_tenant_ref,priority:1"`
	Ref      string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_products_tenant_ref,priority:2"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Active   bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

func toSellable(dto ProductDTO) (ports.SellableProduct, error) {
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.SellableProduct{}, err
	}
	return ports.SellableProduct{
		Ref:    dto.Ref,
		Name:   dto.Name,
		Price:  price,
		Active: dto.Active,
	}, nil
}
