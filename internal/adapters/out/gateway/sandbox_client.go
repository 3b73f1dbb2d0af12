package gateway

import (
	"context"
	"strings"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
)

// SandboxGateway is the provider name that never leaves the process.
const SandboxGateway = "sandbox"

// SandboxClient approves every charge immediately. Pix charges get a fake QR code and
// stay pending until fetched, which mimics a customer paying a few seconds later.
type SandboxClient struct{}

func NewSandboxClient() *SandboxClient {
	return &SandboxClient{}
}

func (SandboxClient) Charge(_ context.Context, request ports.ChargeRequest) (payment.ProviderResult, error) {
	providerTxID := "sandbox-" + request.IdempotencyKey
	if strings.EqualFold(request.Method, "PIX") {
		return payment.ProviderResult{
			Status:       payment.Pending,
			ProviderTxID: providerTxID,
			QRCode:       "00020126SANDBOX" + request.IdempotencyKey,
		}, nil
	}
	return payment.ProviderResult{Status: payment.Paid, ProviderTxID: providerTxID}, nil
}

func (SandboxClient) Fetch(_ context.Context, _ ports.GatewaySettings, providerTxID string) (payment.ProviderResult, error) {
	return payment.ProviderResult{Status: payment.Paid, ProviderTxID: providerTxID}, nil
}
