package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the status changes of an order, oldest first. An unknown order
// yields an empty slice.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			sequence,
			from_status,
			to_status,
			reason,
			actor,
			at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY sequence
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		if err = rows.Scan(
			&entry.Sequence,
			&entry.From,
			&entry.To,
			&entry.Reason,
			&entry.Actor,
			&entry.At,
		); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}

	return history, rows.Err()
}
