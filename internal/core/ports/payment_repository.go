package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment transactions.
type PaymentRepository interface {
	Add(ctx context.Context, tx *payment.Transaction) error
	Update(ctx context.Context, tx *payment.Transaction) error
	Get(ctx context.Context, id kernel.UUID) (*payment.Transaction, error)

	// GetLatestActive returns the newest transaction of an order that is not declined,
	// cancelled or refunded. Returns an ObjectNotFoundError when there is none.
	GetLatestActive(ctx context.Context, orderID kernel.UUID) (*payment.Transaction, error)
}
