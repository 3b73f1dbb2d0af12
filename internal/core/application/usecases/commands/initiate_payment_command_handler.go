package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// InitiatePaymentCommandHandler charges an order through its gateway.
//
// The work is split around the external call so that no database transaction is held
// while waiting on the provider:
//  1. lock the order, reuse or open a PENDING transaction, commit;
//  2. call the gateway with the transaction id as idempotency key;
//  3. lock the order again and record the result.
//
// A settled transaction is returned without calling the gateway. The first unit of
// work only writes the transaction, so a gateway failure leaves it PENDING and the
// order exactly as it was; retrying reuses it.
type InitiatePaymentCommandHandler struct {
	settlement
}

func NewInitiatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	gateway ports.GatewayClient,
	emitter ports.EventEmitter,
	timeout time.Duration,
	clock Clock,
	logger *slog.Logger,
) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{newSettlement(
		uowFactory, gateway, emitter, timeout, clock,
		logger.With("component", "InitiatePaymentCommandHandler"),
	)}
}

func (h InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (*payment.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tx, charge, gateway, err := h.reserve(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if !charge {
		return tx, nil
	}

	result, err := h.call(ctx, tx, func(ctx context.Context) (payment.ProviderResult, error) {
		return h.gateway.Charge(ctx, ports.ChargeRequest{
			IdempotencyKey: tx.ID().String(),
			OrderID:        tx.OrderID(),
			TenantID:       tx.TenantID(),
			Amount:         tx.Amount(),
			Currency:       tx.Currency(),
			Method:         tx.Method(),
			Gateway:        gateway,
		})
	})
	if err != nil {
		return nil, err
	}

	return h.record(ctx, tx.OrderID(), tx.ID(), result)
}

// reserve runs the first unit of work. It reports whether the gateway must be called.
func (h InitiatePaymentCommandHandler) reserve(
	ctx context.Context,
	cmd InitiatePaymentCommand,
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

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}
	if err = h.orchestrator.CheckInitiate(o, cmd.Amount()); err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}
	if err = h.orchestrator.CheckMethod(o, cmd.Method()); err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}

	settings, err := uow.TenantSettings().Get(ctx, o.TenantID())
	if err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}
	gateway := settings.Gateway
	if cmd.Gateway() != "" {
		gateway.Name = cmd.Gateway()
	}

	latest, err := latestActive(ctx, paymentRepo, o.ID())
	if err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}
	existing, charge := h.orchestrator.Reuse(latest)
	if !charge {
		return existing, false, gateway, nil
	}

	if existing != nil && existing.Gateway() != gateway.Name {
		return nil, false, ports.GatewaySettings{}, errs.NewConflictError(
			errs.CodeDuplicateTransaction,
			fmt.Sprintf("transaction %s is still pending on %s", existing.ID(), existing.Gateway()),
		)
	}

	// The outcome of an earlier charge for another amount is unknown until the gateway
	// is asked, so it is never voided here.
	if existing != nil && !existing.Amount().Equal(o.Totals().Total()) {
		return nil, false, ports.GatewaySettings{}, errs.NewConflictError(
			errs.CodeDuplicateTransaction,
			fmt.Sprintf("transaction %s for %s is still pending; confirm it first", existing.ID(), existing.Amount()),
		)
	}

	if existing == nil {
		existing, err = h.orchestrator.Open(o, kernel.NewUUID(), gateway.Name, cmd.Method(), settings.Currency, now)
		if err != nil {
			return nil, false, ports.GatewaySettings{}, err
		}
		if err = paymentRepo.Add(ctx, existing); err != nil {
			return nil, false, ports.GatewaySettings{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, ports.GatewaySettings{}, err
	}

	return existing, true, gateway, nil
}
