package coupon_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/core/domain/model/coupon"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewCoupon(t *testing.T) {
	t.Run("should uppercase the code", func(t *testing.T) {
		c, err := coupon.NewCoupon(
			kernel.NewUUID(), kernel.NewUUID(), " welcome10 ",
			kernel.ZeroMoney(), decimal.NewFromInt(10), nil, start, nil, true,
		)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "WELCOME10", c.Code())
		assert.True(t, c.Percentage().Equal(decimal.NewFromInt(10)))
		assert.Nil(t, c.MinPurchase())
	})

	t.Run("should reject percentage above 100", func(t *testing.T) {
		_, err := coupon.NewCoupon(
			kernel.NewUUID(), kernel.NewUUID(), "HALF",
			kernel.ZeroMoney(), decimal.NewFromInt(150), nil, start, nil, true,
		)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsOutOfRange))
	})

	t.Run("should reject an inverted window", func(t *testing.T) {
		end := start.Add(-time.Hour)

		_, err := coupon.NewCoupon(
			kernel.NewUUID(), kernel.NewUUID(), "OLD",
			kernel.ZeroMoney(), decimal.Zero, nil, start, &end, true,
		)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})

	t.Run("should require a code", func(t *testing.T) {
		_, err := coupon.NewCoupon(
			kernel.NewUUID(), kernel.NewUUID(), "  ",
			kernel.ZeroMoney(), decimal.Zero, nil, start, nil, true,
		)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})
}

func TestCoupon_IsWithinWindow(t *testing.T) {
	end := start.Add(48 * time.Hour)
	c, err := coupon.NewCoupon(
		kernel.NewUUID(), kernel.NewUUID(), "WEEKEND",
		kernel.MustMoney("5.00"), decimal.Zero, nil, start, &end, true,
	)
	require.NoError(t, err)

	assert.False(t, c.IsWithinWindow(start.Add(-time.Second)))
	assert.True(t, c.IsWithinWindow(start))
	assert.True(t, c.IsWithinWindow(end))
	assert.False(t, c.IsWithinWindow(end.Add(time.Second)))
}
