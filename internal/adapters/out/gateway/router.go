package gateway

import (
	"context"
	"strings"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
)

// Router picks a client by gateway name and falls back to the default client for
// providers without a dedicated one.
type Router struct {
	clients  map[string]ports.GatewayClient
	fallback ports.GatewayClient
}

func NewRouter(fallback ports.GatewayClient) *Router {
	return &Router{clients: make(map[string]ports.GatewayClient), fallback: fallback}
}

// Register binds name (case-insensitive) to client and returns the router for chaining.
func (r *Router) Register(name string, client ports.GatewayClient) *Router {
	r.clients[strings.ToLower(name)] = client
	return r
}

func (r *Router) Charge(ctx context.Context, request ports.ChargeRequest) (payment.ProviderResult, error) {
	return r.pick(request.Gateway.Name).Charge(ctx, request)
}

func (r *Router) Fetch(
	ctx context.Context,
	gateway ports.GatewaySettings,
	providerTxID string,
) (payment.ProviderResult, error) {
	return r.pick(gateway.Name).Fetch(ctx, gateway, providerTxID)
}

func (r *Router) pick(name string) ports.GatewayClient {
	if c, ok := r.clients[strings.ToLower(name)]; ok {
		return c
	}
	return r.fallback
}
