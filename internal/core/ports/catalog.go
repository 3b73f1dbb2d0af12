package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// SellableProduct is the catalog snapshot copied onto an order item.
type SellableProduct struct {
	Ref    string
	Name   string
	Price  kernel.Money
	Active bool
}

// Catalog is the read-only product lookup used when items are added.
type Catalog interface {
	// GetSellablePrice returns the current name, price and availability of a product.
	// Unknown products yield an ObjectNotFoundError; inactive ones are returned with
	// Active false and the caller decides.
	GetSellablePrice(ctx context.Context, tenantID kernel.UUID, productRef string) (SellableProduct, error)
}
