package catalogrepo

import (
	"context"
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalog is a read-only view over the products table, which is owned by
// catalog management.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) GetSellablePrice(
	ctx context.Context,
	tenantID kernel.UUID,
	productRef string,
) (ports.SellableProduct, error) {
	if err := tenantID.Validate(); err != nil {
		return ports.SellableProduct{}, err
	}
	productRef = strings.TrimSpace(productRef)
	if productRef == "" {
		return ports.SellableProduct{}, errs.NewValueIsRequiredError("product ref")
	}

	var dto ProductDTO
	err := c.db.WithContext(ctx).First(&dto, "tenant_id = ? AND ref = ?", tenantID.Bytes(), productRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SellableProduct{}, errs.NewObjectNotFoundError("product", productRef)
		}
		return ports.SellableProduct{}, err
	}

	return toSellable(dto)
}
