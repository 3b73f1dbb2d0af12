package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ORDER_NOT_FOUND when the order does not exist. Items come back in id order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	response := &GetOrderQueryResponse{}
	var id, tenantID uuid.UUID
	var courierID *uuid.UUID

	row := db.Raw(`
		SELECT
			id,
			tenant_id,
			number,
			channel,
			status,
			payment_method,
			subtotal,
			discount,
			delivery_fee,
			service_fee,
			total,
			table_ref,
			courier_id,
			delivery_neighborhood,
			delivery_city,
			created_at,
			updated_at,
			version
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	err := row.Scan(
		&id,
		&tenantID,
		&response.Number,
		&response.Channel,
		&response.Status,
		&response.PaymentMethod,
		&response.Subtotal,
		&response.Discount,
		&response.DeliveryFee,
		&response.ServiceFee,
		&response.Total,
		&response.TableRef,
		&courierID,
		&response.Neighborhood,
		&response.City,
		&response.CreatedAt,
		&response.UpdatedAt,
		&response.Version,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError(errs.CodeOrderNotFound, "order "+query.OrderID().String()+" not found")
		}
		return nil, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if response.TenantID, err = kernel.UUIDFromBytes(tenantID[:]); err != nil {
		return nil, err
	}
	if response.CourierID, err = kernel.UUIDPtrFromBytes(courierID); err != nil {
		return nil, err
	}

	response.Items = make([]GetOrderItemResponse, 0)
	rows, err := db.Raw(`
		SELECT
			id,
			product_ref,
			product_name,
			unit_price,
			quantity,
			note
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderItemResponse
		if err = rows.Scan(
			&item.ID,
			&item.ProductRef,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
			&item.Note,
		); err != nil {
			return nil, err
		}
		response.Items = append(response.Items, item)
	}

	return response, rows.Err()
}
