package tenantrepo

import (
	"context"
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

type GormTenantSettingsProvider struct {
	db       *gorm.DB
	defaults ports.TenantSettings
}

func NewGormTenantSettingsProvider(db *gorm.DB, defaults ports.TenantSettings) *GormTenantSettingsProvider {
	return &GormTenantSettingsProvider{db: db, defaults: defaults}
}

// Get returns the defaults overlaid with whatever the tenant configured.
func (p *GormTenantSettingsProvider) Get(ctx context.Context, tenantID kernel.UUID) (ports.TenantSettings, error) {
	if err := tenantID.Validate(); err != nil {
		return ports.TenantSettings{}, err
	}

	settings := p.defaults

	var dto SettingsDTO
	err := p.db.WithContext(ctx).First(&dto, "tenant_id = ?", tenantID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return settings, nil
	}
	if err != nil {
		return ports.TenantSettings{}, err
	}

	if dto.ServiceFeeRate != nil {
		settings.ServiceFeeRate = *dto.ServiceFeeRate
	}
	if dto.MaxItems != nil && *dto.MaxItems > 0 {
		settings.MaxItems = *dto.MaxItems
	}
	if dto.Currency != nil && *dto.Currency != "" {
		settings.Currency = strings.ToUpper(*dto.Currency)
	}
	if dto.GatewayName != nil && *dto.GatewayName != "" {
		settings.Gateway.Name = strings.ToLower(*dto.GatewayName)
	}
	if dto.GatewayBaseURL != nil && *dto.GatewayBaseURL != "" {
		settings.Gateway.BaseURL = *dto.GatewayBaseURL
	}
	if dto.GatewayAPIKey != nil && *dto.GatewayAPIKey != "" {
		settings.Gateway.APIKey = *dto.GatewayAPIKey
	}
	return settings, nil
}
