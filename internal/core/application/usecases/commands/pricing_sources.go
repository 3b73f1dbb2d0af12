package commands

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/region"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// snapshotProduct reads a product inside the active unit of work and refuses
// anything that cannot be sold right now.
func snapshotProduct(
	ctx context.Context,
	catalog ports.Catalog,
	tenantID kernel.UUID,
	productRef string,
) (ports.SellableProduct, error) {
	product, err := catalog.GetSellablePrice(ctx, tenantID, productRef)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ports.SellableProduct{}, errs.NewNotFoundError(
			errs.CodeProductNotFound,
			fmt.Sprintf("product %s not found", productRef),
		)
	}
	if err != nil {
		return ports.SellableProduct{}, err
	}
	if !product.Active {
		return ports.SellableProduct{}, errs.NewValidationError(
			errs.CodeProductUnavailable,
			fmt.Sprintf("product %s is unavailable", productRef),
		)
	}
	return product, nil
}

// loadPricingSources re-reads regions and coupon inside the active unit of work.
// Regions are only needed for delivery orders.
func loadPricingSources(
	ctx context.Context,
	sources PricingSourcesFactory,
	tenantID kernel.UUID,
	channel order.Channel,
	couponID *kernel.UUID,
) ([]*region.Region, *coupon.Coupon, error) {
	var regions []*region.Region
	if channel == order.Delivery {
		var err error
		regions, err = sources.RegionRepository().ListActive(ctx, tenantID)
		if err != nil {
			return nil, nil, err
		}
	}

	if couponID == nil {
		return regions, nil, nil
	}
	c, err := sources.CouponRepository().Get(ctx, *couponID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, errs.NewNotFoundError(
			errs.CodeCouponNotFound,
			fmt.Sprintf("coupon %s not found", couponID),
		)
	}
	if err != nil {
		return nil, nil, err
	}
	return regions, c, nil
}
