package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	t.Run("message carries code and text", func(t *testing.T) {
		err := errs.NewConflictError(errs.CodeInvalidTransition, "PENDING -> COMPLETED")

		assert.Equal(t, "INVALID_TRANSITION: PENDING -> COMPLETED", err.Error())
		assert.Equal(t, errs.KindConflict, err.Kind)
	})

	t.Run("external service error keeps its cause", func(t *testing.T) {
		err := errs.NewExternalServiceError(errs.CodeGatewayUnavailable, "charge failed", context.DeadlineExceeded)

		require.ErrorIs(t, err, errs.ErrExternalService)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "(cause: context deadline exceeded)")
	})

	t.Run("kind sentinels match through wrapping", func(t *testing.T) {
		cases := map[error]*errs.DomainError{
			errs.ErrValidation:        errs.NewValidationError(errs.CodeEmptyOrder, "no items"),
			errs.ErrNotFound:          errs.NewNotFoundError(errs.CodeOrderNotFound, "missing"),
			errs.ErrConflict:          errs.NewConflictError(errs.CodeOrderNotEditable, "completed"),
			errs.ErrRegionUnavailable: errs.NewRegionUnavailableError(errs.CodeRegionUnavailable, "not covered"),
		}
		for sentinel, err := range cases {
			wrapped := fmt.Errorf("finalize: %w", err)
			require.ErrorIs(t, wrapped, sentinel)
		}
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, errs.KindUnknown, errs.KindOf(nil))
	assert.Equal(t, errs.KindUnknown, errs.KindOf(errors.New("plain")))
	assert.Equal(t, errs.KindNotFound, errs.KindOf(errs.NewObjectNotFoundError("order", "1")))
	assert.Equal(t, errs.KindValidation, errs.KindOf(errs.NewValueIsRequiredError("tenantId")))
	assert.Equal(t, errs.KindValidation, errs.KindOf(errs.NewValueIsOutOfRangeError("quantity", 0, 1, 99)))
	assert.Equal(t, errs.KindConflict,
		errs.KindOf(fmt.Errorf("wrap: %w", errs.NewConflictError(errs.CodeDuplicateTransaction, "x"))))
}

func TestCodeOf(t *testing.T) {
	t.Run("domain error code survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("pricing: %w", errs.NewValidationError(errs.CodeCouponExpired, "expired"))

		assert.Equal(t, errs.CodeCouponExpired, errs.CodeOf(err))
		assert.True(t, errs.HasCode(err, errs.CodeCouponExpired))
		assert.False(t, errs.HasCode(err, errs.CodeCouponInactive))
	})

	t.Run("value errors map to generic codes", func(t *testing.T) {
		assert.Equal(t, errs.CodeObjectMissing, errs.CodeOf(errs.NewObjectNotFoundError("order", "1")))
		assert.Equal(t, errs.CodeInvalidValue, errs.CodeOf(errs.NewValueIsInvalidError("amount")))
	})

	t.Run("unclassified errors have no code", func(t *testing.T) {
		assert.Equal(t, errs.Code(""), errs.CodeOf(errors.New("boom")))
		assert.Equal(t, errs.Code(""), errs.CodeOf(nil))
	})
}
