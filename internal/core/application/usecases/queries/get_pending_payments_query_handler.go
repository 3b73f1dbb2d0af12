package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetPendingPaymentsQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingPaymentsQueryHandler(db *gorm.DB) GetPendingPaymentsQueryHandler {
	return GetPendingPaymentsQueryHandler{db: db}
}

// Handle returns pending online transactions untouched since olderThan, oldest first.
func (h GetPendingPaymentsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingPaymentsQuery,
) ([]GetPendingPaymentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingPaymentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			t.id,
			t.order_id,
			o.number,
			t.gateway,
			t.method,
			t.amount,
			t.provider_tx_id,
			t.updated_at
		FROM payment_transactions t
		JOIN orders o ON o.id = t.order_id
		WHERE t.status = ?
			AND t.gateway <> ?
			AND t.provider_tx_id <> ''
			AND t.updated_at < ?
		ORDER BY t.updated_at
		LIMIT ?
	`, payment.Pending.String(), payment.DirectGateway, query.OlderThan(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p GetPendingPaymentsQueryResponse
		var id, orderID uuid.UUID
		if err = rows.Scan(
			&id,
			&orderID,
			&p.OrderNumber,
			&p.Gateway,
			&p.Method,
			&p.Amount,
			&p.ProviderTxID,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if p.TransactionID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if p.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}

	return pending, rows.Err()
}
