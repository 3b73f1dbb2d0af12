package cmd_test

import (
	"testing"
	"time"

	"ordering/cmd"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	config, err := cmd.ConfigFromEnv(envOf(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, "ordering:events", config.EventQueueKey)
	assert.Equal(t, "notifications_fanout", config.NotificationExchange)
	assert.Equal(t, "sandbox", config.GatewayName)
	assert.Equal(t, 15*time.Second, config.GatewayTimeout)
	assert.True(t, config.DefaultServiceFeeRate.IsZero())
	assert.Equal(t, "BRL", config.DefaultCurrency)
	assert.Equal(t, 2*time.Minute, config.ReconcileMinAge)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	config, err := cmd.ConfigFromEnv(envOf(map[string]string{
		"HTTP_PORT":                "9000",
		"DB_HOST":                  "db",
		"DB_PASSWORD":              "secret",
		"GATEWAY_NAME":             "PagarMe",
		"GATEWAY_TIMEOUT":          "3s",
		"DEFAULT_SERVICE_FEE_RATE": "0.10",
		"DEFAULT_MAX_ITEMS":        "20",
		"DEFAULT_CURRENCY":         "usd",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9000", config.HTTPPort)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=ordering sslmode=disable", config.DSN())

	defaults := config.TenantDefaults()
	assert.Equal(t, "pagarme", defaults.Gateway.Name)
	assert.True(t, defaults.ServiceFeeRate.Equal(decimal.RequireFromString("0.10")))
	assert.Equal(t, 20, defaults.MaxItems)
	assert.Equal(t, "USD", defaults.Currency)
	assert.Equal(t, 3*time.Second, config.GatewayTimeout)
}

func TestConfigFromEnv_InvalidValues(t *testing.T) {
	_, err := cmd.ConfigFromEnv(envOf(map[string]string{
		"GATEWAY_TIMEOUT":          "soon",
		"DEFAULT_SERVICE_FEE_RATE": "1.5",
		"DEFAULT_MAX_ITEMS":        "-3",
	}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GATEWAY_TIMEOUT")
	assert.Contains(t, err.Error(), "DEFAULT_SERVICE_FEE_RATE")
	assert.Contains(t, err.Error(), "DEFAULT_MAX_ITEMS")
}
