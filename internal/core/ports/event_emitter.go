package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// EventEmitter hands a domain event to the outbound queue. It is called only after
// the unit of work that produced the event has committed.
type EventEmitter interface {
	Emit(ctx context.Context, event order.Event) error
}
