package cmd

import (
	"log/slog"
	"net/http"
	"time"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/events"
	"ordering/internal/adapters/out/gateway"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	gateway    ports.GatewayClient
	emitter    ports.EventEmitter
	relay      *events.Relay
	clock      commands.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	rdb redis.Cmdable,
	publisher events.Publisher,
	logger *slog.Logger,
) CompositionRoot {
	httpClient := gateway.NewHTTPClient(&http.Client{Timeout: config.GatewayTimeout}, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, config.TenantDefaults()),
		gateway:    gateway.NewRouter(httpClient).Register(gateway.SandboxGateway, gateway.NewSandboxClient()),
		emitter:    events.NewRedisEmitter(rdb, config.EventQueueKey),
		relay:      events.NewRelay(rdb, config.EventQueueKey, publisher, logger),
		clock:      time.Now,
		logger:     logger,
	}
}

func (c *CompositionRoot) pricingUoWFactory() commands.PricingUoWFactory {
	return FuncPricingUoWFactory(func() commands.PricingUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateFinalizeOrderCommandHandler() commands.FinalizeOrderCommandHandler {
	return commands.NewFinalizeOrderCommandHandler(c.pricingUoWFactory(), c.emitter, c.clock, c.logger)
}

func (c *CompositionRoot) CreateEditOrderItemsCommandHandler() commands.EditOrderItemsCommandHandler {
	return commands.NewEditOrderItemsCommandHandler(c.pricingUoWFactory(), c.emitter, c.clock, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.emitter, c.clock, c.logger)
}

func (c *CompositionRoot) CreateLinkCourierCommandHandler() commands.LinkCourierCommandHandler {
	return commands.NewLinkCourierCommandHandler(c.courierUoWFactory(), c.emitter, c.clock, c.logger)
}

func (c *CompositionRoot) CreateUnlinkCourierCommandHandler() commands.UnlinkCourierCommandHandler {
	return commands.NewUnlinkCourierCommandHandler(c.courierUoWFactory(), c.emitter, c.clock, c.logger)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(
		c.paymentUoWFactory(), c.gateway, c.emitter, c.config.GatewayTimeout, c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(
		c.paymentUoWFactory(), c.gateway, c.emitter, c.config.GatewayTimeout, c.clock, c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingPaymentsQueryHandler() queries.GetPendingPaymentsQueryHandler {
	return queries.NewGetPendingPaymentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		FinalizeOrder:        c.CreateFinalizeOrderCommandHandler(),
		EditOrderItems:       c.CreateEditOrderItemsCommandHandler(),
		ChangeOrderStatus:    c.CreateChangeOrderStatusCommandHandler(),
		LinkCourier:          c.CreateLinkCourierCommandHandler(),
		UnlinkCourier:        c.CreateUnlinkCourierCommandHandler(),
		InitiatePayment:      c.CreateInitiatePaymentCommandHandler(),
		ConfirmPayment:       c.CreateConfirmPaymentCommandHandler(),
		GetOrder:             c.CreateGetOrderQueryHandler(),
		GetOrderHistory:      c.CreateGetOrderHistoryQueryHandler(),
		GetPendingPayments:   c.CreateGetPendingPaymentsQueryHandler(),
		GetAvailableCouriers: c.CreateGetAvailableCouriersQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewPaymentReconcileJob(
			c.CreateGetPendingPaymentsQueryHandler(),
			c.CreateConfirmPaymentCommandHandler(),
			c.config.ReconcileSpec,
			c.config.ReconcileMinAge,
			c.config.ReconcileBatch,
			c.logger,
		),
		jobs.NewEventRelayJob(c.relay, c.config.RelaySpec, c.config.RelayBatch, c.logger),
	)
}

type FuncPricingUoWFactory func() commands.PricingUoW

func (f FuncPricingUoWFactory) Create() commands.PricingUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}
