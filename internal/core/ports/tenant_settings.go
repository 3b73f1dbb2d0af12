package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// GatewaySettings selects and authenticates the payment provider of a tenant.
type GatewaySettings struct {
	Name    string
	BaseURL string
	APIKey  string
}

// TenantSettings are resolved once per unit of work and never mutated.
type TenantSettings struct {
	ServiceFeeRate decimal.Decimal
	MaxItems       int
	Currency       string
	Gateway        GatewaySettings
}

// TenantSettingsProvider resolves the effective settings of a tenant, falling back to
// process defaults for anything the tenant did not override.
type TenantSettingsProvider interface {
	Get(ctx context.Context, tenantID kernel.UUID) (TenantSettings, error)
}
