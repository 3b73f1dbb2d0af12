// Package tenantrepo resolves per-tenant settings on top of process defaults.
package tenantrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettingsDTO holds overrides; NULL columns fall back to the defaults.
type SettingsDTO struct {
	TenantID       uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ServiceFeeRate *decimal.Decimal `gorm:"type:numeric(6,4)"`
	MaxItems       *int
	Currency       *string `gorm:"type:varchar(3)"`
	GatewayName    *string `gorm:"type:varchar(32)"`
	GatewayBaseURL *string `gorm:"type:varchar(255)"`
	GatewayAPIKey  *string `gorm:"type:varchar(255)"`
}

func (SettingsDTO) TableName() string {
	return "tenant_settings"
}
