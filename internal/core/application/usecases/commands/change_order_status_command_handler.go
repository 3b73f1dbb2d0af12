package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler applies a status transition to a locked order.
// Cancelling an order also voids its payment transaction if no money was captured yet,
// in the same unit of work.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	emitter    ports.EventEmitter
	statuses   services.StatusTransitionManager
	payments   services.PaymentOrchestrator
	clock      Clock
	logger     *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	emitter ports.EventEmitter,
	clock Clock,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	clock = clock.orNow()
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		statuses:   services.NewStatusTransitionManager(clock),
		payments:   services.NewPaymentOrchestrator(),
		clock:      clock,
		logger:     logger.With("component", "ChangeOrderStatusCommandHandler"),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	if err = h.statuses.Transition(o, cmd.Target(), cmd.Reason(), cmd.Actor()); err != nil {
		return nil, err
	}

	if cmd.Target() == order.Cancelled {
		if err = h.releasePayment(ctx, uow.PaymentRepository(), o); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID().String(),
		"from", from.String(),
		"to", o.Status().String(),
		"actor", cmd.Actor(),
	)
	emitCommitted(ctx, h.emitter, h.logger, o.NewEvent(order.EventStatusChanged, o.UpdatedAt()))

	return o, nil
}

func (h ChangeOrderStatusCommandHandler) releasePayment(
	ctx context.Context,
	paymentRepo ports.PaymentRepository,
	o *order.Order,
) error {
	tx, err := paymentRepo.GetLatestActive(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	released, err := h.payments.Release(tx, h.clock())
	if err != nil || !released {
		return err
	}
	return paymentRepo.Update(ctx, tx)
}
