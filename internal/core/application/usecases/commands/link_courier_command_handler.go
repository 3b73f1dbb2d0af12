package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// courierChange runs a courier mutation on a locked order. Requests that would not
// change anything commit nothing and emit nothing.
type courierChange struct {
	uowFactory CourierUoWFactory
	emitter    ports.EventEmitter
	clock      Clock
	logger     *slog.Logger
}

// LinkCourierCommandHandler assigns a courier that exists for the order's tenant.
type LinkCourierCommandHandler struct {
	courierChange
}

func NewLinkCourierCommandHandler(
	uowFactory CourierUoWFactory,
	emitter ports.EventEmitter,
	clock Clock,
	logger *slog.Logger,
) LinkCourierCommandHandler {
	return LinkCourierCommandHandler{courierChange{
		uowFactory: uowFactory,
		emitter:    emitter,
		clock:      clock.orNow(),
		logger:     logger.With("component", "LinkCourierCommandHandler"),
	}}
}

type UnlinkCourierCommandHandler struct {
	courierChange
}

func NewUnlinkCourierCommandHandler(
	uowFactory CourierUoWFactory,
	emitter ports.EventEmitter,
	clock Clock,
	logger *slog.Logger,
) UnlinkCourierCommandHandler {
	return UnlinkCourierCommandHandler{courierChange{
		uowFactory: uowFactory,
		emitter:    emitter,
		clock:      clock.orNow(),
		logger:     logger.With("component", "UnlinkCourierCommandHandler"),
	}}
}

func (h LinkCourierCommandHandler) Handle(ctx context.Context, cmd LinkCourierCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.run(ctx, cmd.OrderID(), func(uow CourierUoW, o *order.Order) (bool, error) {
		if o.Channel() != order.Delivery {
			return false, errs.NewValidationError(errs.CodeNotDeliveryOrder, "couriers can only be linked to delivery orders")
		}
		exists, err := uow.CourierRepository().Exists(ctx, o.TenantID(), cmd.CourierID())
		if err != nil {
			return false, err
		}
		if !exists {
			return false, errs.NewNotFoundError(
				errs.CodeCourierNotFound,
				fmt.Sprintf("courier %s not found", cmd.CourierID()),
			)
		}
		return o.LinkCourier(cmd.CourierID(), h.clock())
	})
}

func (h UnlinkCourierCommandHandler) Handle(ctx context.Context, cmd UnlinkCourierCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.run(ctx, cmd.OrderID(), func(_ CourierUoW, o *order.Order) (bool, error) {
		return o.UnlinkCourier(h.clock())
	})
}

func (h courierChange) run(
	ctx context.Context,
	orderID kernel.UUID,
	mutate func(uow CourierUoW, o *order.Order) (bool, error),
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changed, err := mutate(uow, o)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	var courier string
	if o.CourierID() != nil {
		courier = o.CourierID().String()
	}
	h.logger.InfoContext(ctx, "order courier changed",
		"order_id", o.ID().String(),
		"courier_id", courier,
	)
	emitCommitted(ctx, h.emitter, h.logger, o.NewEvent(order.EventCourierChanged, o.UpdatedAt()))

	return o, nil
}
