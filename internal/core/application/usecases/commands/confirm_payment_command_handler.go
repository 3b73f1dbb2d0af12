package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler settles the payment of an order.
//
//   - An AUTHORIZED or PAID transaction is returned as is, with no gateway call.
//   - Cash, card on delivery and meal vouchers are collected in person: a PAID
//     transaction on the direct gateway is written without any external call. A
//     pending transaction left on such an order is DUPLICATE_TRANSACTION.
//   - An online transaction still PENDING is looked up at the gateway and the answer
//     recorded like a charge result. Without a provider id there is nothing to ask,
//     so the caller gets PAYMENT_PENDING.
type ConfirmPaymentCommandHandler struct {
	settlement
}

func NewConfirmPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.GatewayClient,
	emitter ports.EventEmitter,
	timeout time.Duration,
	clock Clock,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{newSettlement(
		uowFactory, gateway, emitter, timeout, clock,
		logger.With("component", "ConfirmPaymentCommandHandler"),
	)}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*payment.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tx, poll, gateway, err := h.inspect(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !poll {
		return tx, nil
	}

	result, err := h.call(ctx, tx, func(ctx context.Context) (payment.ProviderResult, error) {
		return h.gateway.Fetch(ctx, gateway, tx.ProviderTxID())
	})
	if err != nil {
		return nil, err
	}

	return h.record(ctx, tx.OrderID(), tx.ID(), result)
}

// inspect runs the first unit of work. It settles offline payments directly and
// reports whether a pending online transaction must be polled.
func (h ConfirmPaymentCommandHandler) inspect(
	ctx context.Context,
	orderID kernel.UUID,
) (*payment.Transaction, bool, ports.GatewaySettings, error) {
	now := h.clock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	paymentRepo := uow.PaymentRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}
	latest, err := latestActive(ctx, paymentRepo, o.ID())
	if err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}
	if latest != nil && latest.Status().IsSettled() {
		return latest, false, ports.GatewaySettings{}, nil
	}

	if err = h.orchestrator.CheckInitiate(o, o.Totals().Total()); err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}
	settings, err := uow.TenantSettings().Get(ctx, o.TenantID())
	if err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}

	if !o.PaymentMethod().RequiresOnlineConfirmation() {
		if latest != nil {
			return nil, false, ports.GatewaySettings{}, errs.NewConflictError(
				errs.CodeDuplicateTransaction,
				fmt.Sprintf("transaction %s is still pending on %s", latest.ID(), latest.Gateway()),
			)
		}
		tx, err := h.settleDirect(ctx, uow, o, settings.Currency, now)
		return tx, false, ports.GatewaySettings{}, err
	}

	if latest == nil {
		return nil, false, ports.GatewaySettings{}, errs.NewNotFoundError(
			errs.CodeTransactionNotFound,
			fmt.Sprintf("order %s has no payment to confirm", o.ID()),
		)
	}
	if latest.ProviderTxID() == "" {
		return nil, false, ports.GatewaySettings{}, errs.NewConflictError(
			errs.CodePaymentPending,
			fmt.Sprintf("transaction %s is waiting for the gateway", latest.ID()),
		)
	}

	gateway := settings.Gateway
	gateway.Name = latest.Gateway()
	return latest, true, gateway, nil
}

func (h ConfirmPaymentCommandHandler) settleDirect(
	ctx context.Context,
	uow PaymentUoW,
	o *order.Order,
	currency string,
	now time.Time,
) (*payment.Transaction, error) {
	tx, err := h.orchestrator.SettleDirect(o, kernel.NewUUID(), currency, now)
	if err != nil {
		return nil, err
	}
	if err = uow.PaymentRepository().Add(ctx, tx); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "payment settled in person",
		"transaction_id", tx.ID().String(),
		"order_id", o.ID().String(),
		"method", o.PaymentMethod().String(),
	)
	emitCommitted(ctx, h.emitter, h.logger, o.NewEvent(order.EventPaymentConfirmed, now))

	return tx, nil
}
