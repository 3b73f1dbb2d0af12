package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	assert.Error(t, err)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	err := queries.GetOrderQuery{}.Validate()

	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	err := queries.GetOrderHistoryQuery{}.Validate()

	assert.ErrorIs(t, err, queries.ErrGetOrderHistoryQueryIsNotConstructed)
}

func TestNewGetPendingPaymentsQuery(t *testing.T) {
	cases := []struct {
		name      string
		olderThan time.Time
		limit     int
		expected  error
	}{
		{"valid", time.Now(), 50, nil},
		{"zero time", time.Time{}, 50, errs.ErrValueIsRequired},
		{"zero limit", time.Now(), 0, errs.ErrValueIsOutOfRange},
		{"limit above maximum", time.Now(), 501, errs.ErrValueIsOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := queries.NewGetPendingPaymentsQuery(tc.olderThan, tc.limit)
			if tc.expected != nil {
				assert.ErrorIs(t, err, tc.expected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.limit, query.Limit())
		})
	}
}

func TestGetAvailableCouriersQuery_NotConstructedViaConstructor(t *testing.T) {
	handler := queries.NewGetAvailableCouriersQueryHandler(nil)

	result, err := handler.Handle(context.Background(), queries.GetAvailableCouriersQuery{})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, queries.ErrGetAvailableCouriersQueryIsNotConstructed)
}
