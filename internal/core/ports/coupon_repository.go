package ports

import (
	"context"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
)

// CouponRepository reads coupons by id.
type CouponRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*coupon.Coupon, error)
}
