package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
)

// ChargeRequest asks a gateway to collect an order total. IdempotencyKey is the local
// transaction id, so retrying a pending transaction never charges twice.
type ChargeRequest struct {
	IdempotencyKey string
	OrderID        kernel.UUID
	TenantID       kernel.UUID
	Amount         kernel.Money
	Currency       string
	Method         string
	Gateway        GatewaySettings
}

// GatewayClient talks to an external payment provider. Calls are made outside any
// unit of work and must honour ctx deadlines.
type GatewayClient interface {
	Charge(ctx context.Context, request ChargeRequest) (payment.ProviderResult, error)
	Fetch(ctx context.Context, gateway GatewaySettings, providerTxID string) (payment.ProviderResult, error)
}
