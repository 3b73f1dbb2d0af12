// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the database into read models and never lock rows.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery reads one order together with its items.
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryResponse struct {
	ID            kernel.UUID
	TenantID      kernel.UUID
	Number        int64
	Channel       string
	Status        string
	PaymentMethod string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	DeliveryFee   decimal.Decimal
	ServiceFee    decimal.Decimal
	Total         decimal.Decimal
	TableRef      string
	CourierID     *kernel.UUID
	Neighborhood  string
	City          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int
	Items         []GetOrderItemResponse
}

type GetOrderItemResponse struct {
	ID          int
	ProductRef  string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Note        string
}
