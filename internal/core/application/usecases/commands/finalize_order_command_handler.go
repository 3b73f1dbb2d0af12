package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// FinalizeOrderCommandHandler prices a basket and persists it as a new order.
//
// Everything that can fail is checked before the first write: tenant item cap,
// product availability, region coverage and coupon validity. Only then is an order
// number drawn and the order written with its items and first history entry.
// The order.finalized event is emitted after commit.
type FinalizeOrderCommandHandler struct {
	uowFactory PricingUoWFactory
	emitter    ports.EventEmitter
	pricing    services.PricingEngine
	statuses   services.StatusTransitionManager
	clock      Clock
	logger     *slog.Logger
}

func NewFinalizeOrderCommandHandler(
	uowFactory PricingUoWFactory,
	emitter ports.EventEmitter,
	clock Clock,
	logger *slog.Logger,
) FinalizeOrderCommandHandler {
	clock = clock.orNow()
	return FinalizeOrderCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		pricing:    services.NewPricingEngine(services.NewRegionResolver(), services.NewCouponValidator()),
		statuses:   services.NewStatusTransitionManager(clock),
		clock:      clock,
		logger:     logger.With("component", "FinalizeOrderCommandHandler"),
	}
}

func (h FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	now := h.clock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settings, err := uow.TenantSettings().Get(ctx, cmd.TenantID())
	if err != nil {
		return nil, err
	}
	lines := cmd.Lines()
	if settings.MaxItems > 0 && len(lines) > settings.MaxItems {
		return nil, errs.NewValidationError(
			errs.CodeTooManyItems,
			fmt.Sprintf("an order accepts at most %d items, got %d", settings.MaxItems, len(lines)),
		)
	}

	catalog := uow.Catalog()
	draft := make([]*order.Item, 0, len(lines))
	for i, line := range lines {
		product, err := snapshotProduct(ctx, catalog, cmd.TenantID(), line.ProductRef)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(i+1, line.ProductRef, product.Name, product.Price, line.Quantity, line.Note)
		if err != nil {
			return nil, err
		}
		draft = append(draft, item)
	}

	regions, coupon, err := loadPricingSources(ctx, uow, cmd.TenantID(), cmd.Channel(), cmd.CouponID())
	if err != nil {
		return nil, err
	}

	priced, err := h.pricing.Price(services.PricingInput{
		TenantID:       cmd.TenantID(),
		Channel:        cmd.Channel(),
		Items:          draft,
		Coupon:         coupon,
		Address:        cmd.Address(),
		Regions:        regions,
		ServiceFeeRate: settings.ServiceFeeRate,
		Now:            now,
	})
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	number, err := orderRepo.NextNumber(ctx, cmd.TenantID())
	if err != nil {
		return nil, err
	}

	o, err := h.build(cmd, number, draft, now)
	if err != nil {
		return nil, err
	}
	if err = o.ApplyPricing(priced.Totals, now); err != nil {
		return nil, err
	}
	if err = h.statuses.Start(o, cmd.Actor()); err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order finalized",
		"order_id", o.ID().String(),
		"tenant_id", o.TenantID().String(),
		"number", o.Number(),
		"status", o.Status().String(),
		"total", o.Totals().Total().String(),
	)
	emitCommitted(ctx, h.emitter, h.logger, o.NewEvent(order.EventFinalized, now))

	return o, nil
}

func (h FinalizeOrderCommandHandler) build(
	cmd FinalizeOrderCommand,
	number int64,
	draft []*order.Item,
	now time.Time,
) (*order.Order, error) {
	o, err := order.NewOrder(cmd.OrderID(), cmd.TenantID(), number, cmd.Channel(), cmd.PaymentMethod(), now)
	if err != nil {
		return nil, err
	}
	for _, item := range draft {
		if _, err = o.AddItem(item.ProductRef(), item.ProductName(), item.UnitPrice(), item.Quantity(), item.Note()); err != nil {
			return nil, err
		}
	}
	if err = o.SetTable(cmd.TableRef()); err != nil {
		return nil, err
	}
	if cmd.Address() != nil {
		if err = o.SetDeliveryAddress(*cmd.Address(), cmd.AddressID()); err != nil {
			return nil, err
		}
	}
	o.SetCustomer(cmd.CustomerID())
	o.SetCoupon(cmd.CouponID())
	return o, nil
}
