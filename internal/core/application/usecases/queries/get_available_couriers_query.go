package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
	"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
)

// GetAvailableCouriersQuery lists active couriers of a tenant that are not out on a delivery.
type GetAvailableCouriersQuery struct {
	tenantID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetAvailableCouriersQuery(tenantID kernel.UUID) (GetAvailableCouriersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAvailableCouriersQuery{}, err
	}
	return GetAvailableCouriersQuery{tenantID: tenantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailableCouriersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}

type GetAvailableCouriersQueryResponse struct {
	ID    kernel.UUID
	Name  string
	Phone string
}
