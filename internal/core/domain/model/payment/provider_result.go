package payment

// ProviderResult is what a gateway reports about a charge.
type ProviderResult struct {
	Status       Status
	ProviderTxID string
	Payload      []byte
	QRCode       string
}
