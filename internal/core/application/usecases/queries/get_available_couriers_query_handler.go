package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAvailableCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetAvailableCouriersQueryHandler(db *gorm.DB) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db}
}

// Handle returns couriers sorted by name. A courier linked to an order that is still
// OUT_FOR_DELIVERY is busy; orders in earlier states do not hold the courier.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]GetAvailableCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAvailableCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.phone
		FROM couriers c
		WHERE c.tenant_id = ?
			AND c.active
			AND NOT EXISTS (
				SELECT 1 FROM orders o
				WHERE o.courier_id = c.id AND o.status = ?
			)
		ORDER BY c.name
	`, query.TenantID().Bytes(), order.OutForDelivery.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var courier GetAvailableCouriersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &courier.Name, &courier.Phone); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		courier.ID = courierID
		couriers = append(couriers, courier)
	}

	return couriers, rows.Err()
}
