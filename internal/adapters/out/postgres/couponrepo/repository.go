package couponrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormCouponRepository struct {
	db *gorm.DB
}

func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Add stores a coupon. Used for seeding; the ordering core only reads coupons.
func (r *GormCouponRepository) Add(ctx context.Context, aggregate *coupon.Coupon) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get returns the coupon regardless of tenant, status or window; CouponValidator
// decides whether it applies.
func (r *GormCouponRepository) Get(ctx context.Context, id kernel.UUID) (*coupon.Coupon, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CouponDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("coupon", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
