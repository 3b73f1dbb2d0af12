package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// emitCommitted hands an event to the emitter once its unit of work has committed.
// A failure here cannot undo the commit, so it is logged and not returned.
func emitCommitted(ctx context.Context, emitter ports.EventEmitter, logger *slog.Logger, event order.Event) {
	if err := emitter.Emit(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to emit event",
			"event_id", event.ID,
			"event_type", string(event.Type),
			"order_id", event.OrderID,
			"error", err,
		)
	}
}
