// Package gateway talks to external payment providers. Every provider is reached
// through the same JSON contract; tenants choose the provider and credentials through
// ports.GatewaySettings.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
)

const maxResponseBytes = 1 << 20

var ErrGatewayNotConfigured = errors.New("gateway base url is not configured")

// HTTPClient charges and polls a provider over HTTP. The provider must treat the
// Idempotency-Key header as the charge identity.
type HTTPClient struct {
	http   *http.Client
	logger *slog.Logger
}

func NewHTTPClient(httpClient *http.Client, logger *slog.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPClient{
		http:   httpClient,
		logger: logger.With("component", "gateway.http"),
	}
}

type chargeRequest struct {
	Reference string `json:"reference"`
	OrderID   string `json:"order_id"`
	TenantID  string `json:"tenant_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Method    string `json:"method"`
}

type chargeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	QRCode string `json:"qr_code"`
}

func (c *HTTPClient) Charge(ctx context.Context, request ports.ChargeRequest) (payment.ProviderResult, error) {
	body, err := json.Marshal(chargeRequest{
		Reference: request.IdempotencyKey,
		OrderID:   request.OrderID.String(),
		TenantID:  request.TenantID.String(),
		Amount:    request.Amount.String(),
		Currency:  request.Currency,
		Method:    request.Method,
	})
	if err != nil {
		return payment.ProviderResult{}, err
	}

	endpoint, err := c.endpoint(request.Gateway, "charges")
	if err != nil {
		return payment.ProviderResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return payment.ProviderResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", request.IdempotencyKey)

	return c.do(req, request.Gateway)
}

func (c *HTTPClient) Fetch(
	ctx context.Context,
	gateway ports.GatewaySettings,
	providerTxID string,
) (payment.ProviderResult, error) {
	if strings.TrimSpace(providerTxID) == "" {
		return payment.ProviderResult{}, errors.New("provider transaction id is required")
	}
	endpoint, err := c.endpoint(gateway, "charges", providerTxID)
	if err != nil {
		return payment.ProviderResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return payment.ProviderResult{}, err
	}

	return c.do(req, gateway)
}

func (c *HTTPClient) endpoint(gateway ports.GatewaySettings, elems ...string) (string, error) {
	if strings.TrimSpace(gateway.BaseURL) == "" {
		return "", fmt.Errorf("%w: %s", ErrGatewayNotConfigured, gateway.Name)
	}
	return url.JoinPath(gateway.BaseURL, elems...)
}

func (c *HTTPClient) do(req *http.Request, gateway ports.GatewaySettings) (payment.ProviderResult, error) {
	req.Header.Set("Accept", "application/json")
	if gateway.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+gateway.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return payment.ProviderResult{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return payment.ProviderResult{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(req.Context(), "gateway rejected request",
			"gateway", gateway.Name, "method", req.Method, "status", resp.StatusCode)
		return payment.ProviderResult{}, fmt.Errorf("gateway %s answered %d", gateway.Name, resp.StatusCode)
	}

	var out chargeResponse
	if err = json.Unmarshal(raw, &out); err != nil {
		return payment.ProviderResult{}, fmt.Errorf("decode gateway response: %w", err)
	}
	status, err := parseProviderStatus(out.Status)
	if err != nil {
		return payment.ProviderResult{}, err
	}

	return payment.ProviderResult{
		Status:       status,
		ProviderTxID: out.ID,
		Payload:      raw,
		QRCode:       out.QRCode,
	}, nil
}

// parseProviderStatus folds the vocabularies of common providers onto payment.Status.
func parseProviderStatus(s string) (payment.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "waiting_payment", "processing", "in_process", "created":
		return payment.Pending, nil
	case "authorized", "authorised":
		return payment.Authorized, nil
	case "paid", "approved", "succeeded", "captured":
		return payment.Paid, nil
	case "declined", "refused", "rejected", "failed":
		return payment.Declined, nil
	case "canceled", "cancelled", "voided":
		return payment.Cancelled, nil
	case "refunded", "charged_back":
		return payment.Refunded, nil
	default:
		return payment.Unknown, fmt.Errorf("unknown gateway status %q", s)
	}
}
