package services

import (
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/region"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PricingInput is everything pricing depends on. Regions and Coupon must be read
// inside the unit of work that will persist the result.
type PricingInput struct {
	TenantID       kernel.UUID
	Channel        order.Channel
	Items          []*order.Item
	Coupon         *coupon.Coupon
	Address        *kernel.Address
	Regions        []*region.Region
	ServiceFeeRate decimal.Decimal
	Now            time.Time
}

type PricingResult struct {
	Totals order.Totals
	// Region is the region that priced delivery, nil for other channels.
	Region *region.Region
}

// PricingEngine computes order totals. It has no side effects; calling Price twice
// with the same input yields the same result.
type PricingEngine struct {
	regions RegionResolver
	coupons CouponValidator
}

func NewPricingEngine(regions RegionResolver, coupons CouponValidator) PricingEngine {
	return PricingEngine{regions: regions, coupons: coupons}
}

func (p PricingEngine) Price(in PricingInput) (PricingResult, error) {
	if len(in.Items) == 0 {
		return PricingResult{}, errs.NewValidationError(errs.CodeEmptyOrder, "an order needs at least one item")
	}
	if err := in.Channel.Validate(); err != nil {
		return PricingResult{}, err
	}

	subtotal := kernel.ZeroMoney()
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	result := PricingResult{}
	deliveryFee := kernel.ZeroMoney()
	if in.Channel == order.Delivery {
		if in.Address == nil {
			return PricingResult{}, errs.NewValidationError(errs.CodeAddressRequired, "delivery orders need an address")
		}
		resolved, err := p.regions.Resolve(in.Regions, *in.Address)
		if err != nil {
			return PricingResult{}, err
		}
		deliveryFee = resolved.Fee()
		result.Region = resolved
	}

	discount := kernel.ZeroMoney()
	if in.Coupon != nil {
		d, err := p.coupons.Validate(in.TenantID, in.Coupon, subtotal, in.Now)
		if err != nil {
			return PricingResult{}, err
		}
		discount = d
	}

	serviceFee := subtotal.Rate(in.ServiceFeeRate)

	result.Totals = order.NewTotals(subtotal, discount, deliveryFee, serviceFee)
	return result, nil
}
