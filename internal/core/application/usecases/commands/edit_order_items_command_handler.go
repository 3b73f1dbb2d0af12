package commands

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// EditOrderItemsCommandHandler applies line changes to a locked order and re-prices it
// with regions and coupon read in the same unit of work. This is the only path by
// which totals change after finalize, and it is closed while a charge is PENDING.
type EditOrderItemsCommandHandler struct {
	uowFactory PricingUoWFactory
	emitter    ports.EventEmitter
	pricing    services.PricingEngine
	clock      Clock
	logger     *slog.Logger
}

func NewEditOrderItemsCommandHandler(
	uowFactory PricingUoWFactory,
	emitter ports.EventEmitter,
	clock Clock,
	logger *slog.Logger,
) EditOrderItemsCommandHandler {
	return EditOrderItemsCommandHandler{
		uowFactory: uowFactory,
		emitter:    emitter,
		pricing:    services.NewPricingEngine(services.NewRegionResolver(), services.NewCouponValidator()),
		clock:      clock.orNow(),
		logger:     logger.With("component", "EditOrderItemsCommandHandler"),
	}
}

func (h EditOrderItemsCommandHandler) Handle(ctx context.Context, cmd EditOrderItemsCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if o.Status().IsTerminal() {
		return nil, errs.NewConflictError(errs.CodeOrderNotEditable, fmt.Sprintf("order is %s", o.Status()))
	}
	if err = h.ensureNoPendingCharge(ctx, uow.PaymentRepository(), o); err != nil {
		return nil, err
	}

	settings, err := uow.TenantSettings().Get(ctx, o.TenantID())
	if err != nil {
		return nil, err
	}

	if err = h.apply(ctx, uow.Catalog(), o, cmd.Changes()); err != nil {
		return nil, err
	}
	if settings.MaxItems > 0 && len(o.Items()) > settings.MaxItems {
		return nil, errs.NewValidationError(
			errs.CodeTooManyItems,
			fmt.Sprintf("an order accepts at most %d items", settings.MaxItems),
		)
	}

	regions, coupon, err := loadPricingSources(ctx, uow, o.TenantID(), o.Channel(), o.CouponID())
	if err != nil {
		return nil, err
	}
	priced, err := h.pricing.Price(services.PricingInput{
		TenantID:       o.TenantID(),
		Channel:        o.Channel(),
		Items:          o.Items(),
		Coupon:         coupon,
		Address:        o.DeliveryAddress(),
		Regions:        regions,
		ServiceFeeRate: settings.ServiceFeeRate,
		Now:            now,
	})
	if err != nil {
		return nil, err
	}
	if err = o.ApplyPricing(priced.Totals, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "order items edited",
		"order_id", o.ID().String(),
		"items", len(o.Items()),
		"total", o.Totals().Total().String(),
		"actor", cmd.Actor(),
	)
	emitCommitted(ctx, h.emitter, h.logger, o.NewEvent(order.EventItemsEdited, now))

	return o, nil
}

// ensureNoPendingCharge refuses edits while a charge for the current total is in
// flight. Its amount would no longer match the order.
func (h EditOrderItemsCommandHandler) ensureNoPendingCharge(
	ctx context.Context,
	payments ports.PaymentRepository,
	o *order.Order,
) error {
	latest, err := latestActive(ctx, payments, o.ID())
	if err != nil {
		return err
	}
	if latest != nil && latest.Status() == payment.Pending {
		return errs.NewConflictError(
			errs.CodePaymentPending,
			fmt.Sprintf("transaction %s is pending; confirm or cancel it before editing", latest.ID()),
		)
	}
	return nil
}

func (h EditOrderItemsCommandHandler) apply(
	ctx context.Context,
	catalog ports.Catalog,
	o *order.Order,
	changes []ItemChange,
) error {
	for _, change := range changes {
		switch change.Kind {
		case AddItem:
			product, err := snapshotProduct(ctx, catalog, o.TenantID(), change.ProductRef)
			if err != nil {
				return err
			}
			var note string
			if change.Note != nil {
				note = *change.Note
			}
			if _, err = o.AddItem(change.ProductRef, product.Name, product.Price, *change.Quantity, note); err != nil {
				return err
			}
		case UpdateItem:
			if err := o.UpdateItem(change.ItemID, change.Quantity, change.Note); err != nil {
				return err
			}
		case RemoveItem:
			if err := o.RemoveItem(change.ItemID); err != nil {
				return err
			}
		}
	}
	return nil
}
