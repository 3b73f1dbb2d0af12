package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// DefaultGatewayTimeout bounds a single gateway call when no timeout is configured.
const DefaultGatewayTimeout = 15 * time.Second

// settlement holds what both payment handlers share: the gateway call outside any
// unit of work and the unit of work that records its result.
type settlement struct {
	uowFactory   PaymentUoWFactory
	gateway      ports.GatewayClient
	emitter      ports.EventEmitter
	orchestrator services.PaymentOrchestrator
	timeout      time.Duration
	clock        Clock
	logger       *slog.Logger
}

func newSettlement(
	uowFactory PaymentUoWFactory,
	gateway ports.GatewayClient,
	emitter ports.EventEmitter,
	timeout time.Duration,
	clock Clock,
	logger *slog.Logger,
) settlement {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return settlement{
		uowFactory:   uowFactory,
		gateway:      gateway,
		emitter:      emitter,
		orchestrator: services.NewPaymentOrchestrator(),
		timeout:      timeout,
		clock:        clock.orNow(),
		logger:       logger,
	}
}

// call runs fn against the gateway under the configured timeout. Any failure is
// reported as GATEWAY_UNAVAILABLE; local state is never touched here.
func (s settlement) call(
	ctx context.Context,
	tx *payment.Transaction,
	fn func(ctx context.Context) (payment.ProviderResult, error),
) (payment.ProviderResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := fn(callCtx)
	if err != nil {
		s.logger.WarnContext(ctx, "payment gateway call failed",
			"transaction_id", tx.ID().String(),
			"order_id", tx.OrderID().String(),
			"gateway", tx.Gateway(),
			"error", err,
		)
		return payment.ProviderResult{}, errs.NewExternalServiceError(
			errs.CodeGatewayUnavailable,
			"payment gateway "+tx.Gateway()+" did not answer",
			err,
		)
	}
	return result, nil
}

// record applies a gateway result in its own unit of work. The order is locked again
// and the transaction reloaded, so a result that lost a race with a cancel is dropped.
func (s settlement) record(
	ctx context.Context,
	orderID, txID kernel.UUID,
	result payment.ProviderResult,
) (*payment.Transaction, error) {
	now := s.clock()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	tx, err := paymentRepo.Get(ctx, txID)
	if err != nil {
		return nil, err
	}

	before := tx.Status()
	statusBefore := o.Status()
	linkedBefore := o.PaymentTransactionID()
	settled, err := s.orchestrator.Apply(o, tx, result, now)
	if err != nil {
		return nil, err
	}

	if before == payment.Pending {
		if err = paymentRepo.Update(ctx, tx); err != nil {
			return nil, err
		}
	}
	if o.Status() != statusBefore || linkedBefore != o.PaymentTransactionID() {
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment result recorded",
		"transaction_id", tx.ID().String(),
		"order_id", o.ID().String(),
		"status", tx.Status().String(),
		"order_status", o.Status().String(),
	)
	if settled && before == payment.Pending && !tx.Amount().Equal(o.Totals().Total()) {
		s.logger.WarnContext(ctx, "payment settled for a stale amount, order left waiting",
			"transaction_id", tx.ID().String(),
			"order_id", o.ID().String(),
			"amount", tx.Amount().String(),
			"total", o.Totals().Total().String(),
		)
	}
	if settled && before == payment.Pending {
		emitCommitted(ctx, s.emitter, s.logger, o.NewEvent(order.EventPaymentConfirmed, now))
	}

	return tx, nil
}

// latestActive returns nil when the order has no live transaction.
func latestActive(ctx context.Context, repo ports.PaymentRepository, orderID kernel.UUID) (*payment.Transaction, error) {
	tx, err := repo.GetLatestActive(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	return tx, err
}
