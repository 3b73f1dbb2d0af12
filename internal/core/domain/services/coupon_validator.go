package services

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// CouponValidator checks a coupon against a tenant, a subtotal and a moment in time.
type CouponValidator struct{}

func NewCouponValidator() CouponValidator {
	return CouponValidator{}
}

// Validate returns the discount granted by c. Checks run in a fixed order so callers
// always see the same code for the same coupon: missing, wrong tenant, inactive,
// outside its window, below the minimum purchase. The discount is the fixed amount
// plus the percentage of subtotal, never more than subtotal.
func (v CouponValidator) Validate(
	tenantID kernel.UUID,
	c *coupon.Coupon,
	subtotal kernel.Money,
	now time.Time,
) (kernel.Money, error) {
	if c == nil || c.Validate() != nil {
		return kernel.ZeroMoney(), errs.NewNotFoundError(errs.CodeCouponNotFound, "coupon not found")
	}
	if !c.TenantID().IsEqual(tenantID) {
		return kernel.ZeroMoney(), errs.NewValidationError(
			errs.CodeCouponWrongTenant,
			fmt.Sprintf("coupon %s belongs to another tenant", c.Code()),
		)
	}
	if !c.IsActive() {
		return kernel.ZeroMoney(), errs.NewValidationError(
			errs.CodeCouponInactive,
			fmt.Sprintf("coupon %s is inactive", c.Code()),
		)
	}
	if !c.IsWithinWindow(now) {
		return kernel.ZeroMoney(), errs.NewValidationError(
			errs.CodeCouponExpired,
			fmt.Sprintf("coupon %s is not valid at %s", c.Code(), now.Format(time.RFC3339)),
		)
	}
	if minimum := c.MinPurchase(); minimum != nil && subtotal.LessThan(*minimum) {
		return kernel.ZeroMoney(), errs.NewValidationError(
			errs.CodeCouponBelowMinimum,
			fmt.Sprintf("coupon %s requires a subtotal of at least %s", c.Code(), minimum),
		)
	}

	discount := c.FixedAmount().Add(subtotal.Percent(c.Percentage()))
	return discount.Min(subtotal), nil
}
