// Package couponrepo reads coupons.
package couponrepo

import (
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponDTO struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_coupons_tenant_code,priority:1"`
	Code        string           `gorm:"type:varchar(64);not null;uniqueIndex:idx_coupons_tenant_code,priority:2"`
	FixedAmount decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	Percentage  decimal.Decimal  `gorm:"type:numeric(5,2);not null"`
	MinPurchase *decimal.Decimal `gorm:"type:numeric(12,2)"`
	ValidFrom   time.Time        `gorm:"not null"`
	ValidUntil  *time.Time
	Active      bool `gorm:"not null"`
}

func (CouponDTO) TableName() string {
	return "coupons"
}

func fromDomain(c *coupon.Coupon) CouponDTO {
	var minPurchase *decimal.Decimal
	if m := c.MinPurchase(); m != nil {
		d := m.Decimal()
		minPurchase = &d
	}

	return CouponDTO{
		ID:          c.ID().Bytes(),
		TenantID:    c.TenantID().Bytes(),
		Code:        c.Code(),
		FixedAmount: c.FixedAmount().Decimal(),
		Percentage:  c.Percentage(),
		MinPurchase: minPurchase,
		ValidFrom:   c.ValidFrom(),
		ValidUntil:  c.ValidUntil(),
		Active:      c.IsActive(),
	}
}

func toDomain(dto CouponDTO) (*coupon.Coupon, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	fixed, err := kernel.NewMoney(dto.FixedAmount)
	if err != nil {
		return nil, err
	}

	var minPurchase *kernel.Money
	if dto.MinPurchase != nil {
		m, minErr := kernel.NewMoney(*dto.MinPurchase)
		if minErr != nil {
			return nil, minErr
		}
		minPurchase = &m
	}

	return coupon.NewCoupon(id, tenantID, dto.Code, fixed, dto.Percentage, minPurchase, dto.ValidFrom, dto.ValidUntil, dto.Active)
}
