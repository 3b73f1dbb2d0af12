// Package http is the demonstration HTTP edge. It binds JSON requests to commands
// and queries and maps error kinds onto status codes; it holds no business rules.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

type (
	FinalizeOrderHandler interface {
		Handle(ctx context.Context, cmd commands.FinalizeOrderCommand) (*order.Order, error)
	}
	EditOrderItemsHandler interface {
		Handle(ctx context.Context, cmd commands.EditOrderItemsCommand) (*order.Order, error)
	}
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}
	LinkCourierHandler interface {
		Handle(ctx context.Context, cmd commands.LinkCourierCommand) (*order.Order, error)
	}
	UnlinkCourierHandler interface {
		Handle(ctx context.Context, cmd commands.UnlinkCourierCommand) (*order.Order, error)
	}
	InitiatePaymentHandler interface {
		Handle(ctx context.Context, cmd commands.InitiatePaymentCommand) (*payment.Transaction, error)
	}
	ConfirmPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (*payment.Transaction, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
	}
	GetOrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.GetOrderHistoryQueryResponse, error)
	}
	GetPendingPaymentsHandler interface {
		Handle(ctx context.Context, query queries.GetPendingPaymentsQuery) ([]queries.GetPendingPaymentsQueryResponse, error)
	}
	GetAvailableCouriersHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetAvailableCouriersQuery,
		) ([]queries.GetAvailableCouriersQueryResponse, error)
	}
)

// Handlers groups every use case the edge exposes.
type Handlers struct {
	FinalizeOrder        FinalizeOrderHandler
	EditOrderItems       EditOrderItemsHandler
	ChangeOrderStatus    ChangeOrderStatusHandler
	LinkCourier          LinkCourierHandler
	UnlinkCourier        UnlinkCourierHandler
	InitiatePayment      InitiatePaymentHandler
	ConfirmPayment       ConfirmPaymentHandler
	GetOrder             GetOrderHandler
	GetOrderHistory      GetOrderHistoryHandler
	GetPendingPayments   GetPendingPaymentsHandler
	GetAvailableCouriers GetAvailableCouriersHandler
}

type Server struct {
	h     Handlers
	clock func() time.Time
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers, clock: time.Now}
}

// Register mounts the health check and the /api/v1 routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/tenants/:tenantID/orders", s.FinalizeOrder)
	api.GET("/tenants/:tenantID/couriers/available", s.GetAvailableCouriers)
	api.GET("/orders/:orderID", s.GetOrder)
	api.GET("/orders/:orderID/history", s.GetOrderHistory)
	api.PATCH("/orders/:orderID/items", s.EditOrderItems)
	api.POST("/orders/:orderID/status", s.ChangeOrderStatus)
	api.PUT("/orders/:orderID/courier", s.LinkCourier)
	api.DELETE("/orders/:orderID/courier", s.UnlinkCourier)
	api.POST("/orders/:orderID/payments", s.InitiatePayment)
	api.POST("/orders/:orderID/payments/confirm", s.ConfirmPayment)
	api.GET("/payments/pending", s.GetPendingPayments)
}

// FinalizeOrder handles POST /api/v1/tenants/:tenantID/orders.
func (s *Server) FinalizeOrder(c echo.Context) error {
	tenantID, err := pathUUID(c, "tenantID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req finalizeOrderRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cmd, err := req.toCommand(tenantID)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.FinalizeOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, newOrderResponse(o))
}

// EditOrderItems handles PATCH /api/v1/orders/:orderID/items.
func (s *Server) EditOrderItems(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req editOrderItemsRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cmd, err := req.toCommand(orderID)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.EditOrderItems.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderID/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req changeStatusRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(c, err)
	}
	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, req.Reason, req.Actor)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.ChangeOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// LinkCourier handles PUT /api/v1/orders/:orderID/courier.
func (s *Server) LinkCourier(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req linkCourierRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(c, "courier_id must be a uuid")
	}
	cmd, err := commands.NewLinkCourierCommand(orderID, courierID)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.LinkCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// UnlinkCourier handles DELETE /api/v1/orders/:orderID/courier.
func (s *Server) UnlinkCourier(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	cmd, err := commands.NewUnlinkCourierCommand(orderID)
	if err != nil {
		return writeError(c, err)
	}

	o, err := s.h.UnlinkCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(o))
}

// InitiatePayment handles POST /api/v1/orders/:orderID/payments.
func (s *Server) InitiatePayment(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req initiatePaymentRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	cmd, err := req.toCommand(orderID)
	if err != nil {
		return writeError(c, err)
	}

	tx, err := s.h.InitiatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newTransactionResponse(tx))
}

// ConfirmPayment handles POST /api/v1/orders/:orderID/payments/confirm.
func (s *Server) ConfirmPayment(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	cmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return writeError(c, err)
	}

	tx, err := s.h.ConfirmPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newTransactionResponse(tx))
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return writeError(c, err)
	}

	result, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderViewResponse(result))
}

// GetOrderHistory handles GET /api/v1/orders/:orderID/history.
func (s *Server) GetOrderHistory(c echo.Context) error {
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(c, err)
	}

	history, err := s.h.GetOrderHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	response := make([]historyEntryResponse, len(history))
	for i, entry := range history {
		response[i] = historyEntryResponse{
			Sequence: entry.Sequence,
			From:     entry.From,
			To:       entry.To,
			Reason:   entry.Reason,
			Actor:    entry.Actor,
			At:       entry.At,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetPendingPayments handles GET /api/v1/payments/pending?older_than_seconds=&limit=.
func (s *Server) GetPendingPayments(c echo.Context) error {
	olderThanSeconds, err := queryInt(c, "older_than_seconds", 60)
	if err != nil {
		return badRequest(c, "older_than_seconds must be an integer")
	}
	limit, err := queryInt(c, "limit", 100)
	if err != nil {
		return badRequest(c, "limit must be an integer")
	}
	query, err := queries.NewGetPendingPaymentsQuery(
		s.clock().Add(-time.Duration(olderThanSeconds)*time.Second), limit,
	)
	if err != nil {
		return writeError(c, err)
	}

	pending, err := s.h.GetPendingPayments.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	response := make([]pendingPaymentResponse, len(pending))
	for i, p := range pending {
		response[i] = pendingPaymentResponse{
			TransactionID: p.TransactionID.String(),
			OrderID:       p.OrderID.String(),
			OrderNumber:   p.OrderNumber,
			Gateway:       p.Gateway,
			Method:        p.Method,
			Amount:        p.Amount.StringFixed(2),
			ProviderTxID:  p.ProviderTxID,
			UpdatedAt:     p.UpdatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetAvailableCouriers handles GET /api/v1/tenants/:tenantID/couriers/available.
func (s *Server) GetAvailableCouriers(c echo.Context) error {
	tenantID, err := pathUUID(c, "tenantID")
	if err != nil {
		return badRequest(c, err.Error())
	}
	query, err := queries.NewGetAvailableCouriersQuery(tenantID)
	if err != nil {
		return writeError(c, err)
	}

	couriers, err := s.h.GetAvailableCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	response := make([]courierResponse, len(couriers))
	for i, courier := range couriers {
		response[i] = courierResponse{ID: courier.ID.String(), Name: courier.Name, Phone: courier.Phone}
	}
	return c.JSON(http.StatusOK, response)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%s must be a uuid", name)
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
