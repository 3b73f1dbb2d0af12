package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetPendingPaymentsQueryIsNotConstructed = errors.New(
	"GetPendingPaymentsQuery must be created via NewGetPendingPaymentsQuery constructor",
)

const maxPendingPaymentsLimit = 500

// GetPendingPaymentsQuery lists gateway transactions still waiting for the provider.
type GetPendingPaymentsQuery struct {
	olderThan time.Time
	limit     int
	guard     guard.ConstructorGuard
}

func NewGetPendingPaymentsQuery(olderThan time.Time, limit int) (GetPendingPaymentsQuery, error) {
	if olderThan.IsZero() {
		return GetPendingPaymentsQuery{}, errs.NewValueIsRequiredError("olderThan")
	}
	if limit <= 0 || limit > maxPendingPaymentsLimit {
		return GetPendingPaymentsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPendingPaymentsLimit)
	}
	return GetPendingPaymentsQuery{olderThan: olderThan, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingPaymentsQuery) OlderThan() time.Time {
	return q.olderThan
}

func (q GetPendingPaymentsQuery) Limit() int {
	return q.limit
}

func (q GetPendingPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingPaymentsQueryIsNotConstructed)
}

type GetPendingPaymentsQueryResponse struct {
	TransactionID kernel.UUID
	OrderID       kernel.UUID
	OrderNumber   int64
	Gateway       string
	Method        string
	Amount        decimal.Decimal
	ProviderTxID  string
	UpdatedAt     time.Time
}
