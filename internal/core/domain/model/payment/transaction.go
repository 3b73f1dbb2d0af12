package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrTransactionIsNotConstructed = errors.New("Transaction must be created via NewTransaction constructor")

// DirectGateway names transactions settled without contacting any provider.
const DirectGateway = "direct"

// DefaultCurrency is used when a tenant configures none.
const DefaultCurrency = "BRL"

// Transaction is one payment attempt for an order.
//
// The transaction id doubles as the idempotency key sent to the gateway, so
// re-charging a PENDING transaction never creates a second charge at the provider.
// An order has at most one transaction that is not in a terminal failure state.
type Transaction struct {
	id       kernel.UUID
	orderID  kernel.UUID
	tenantID kernel.UUID
	gateway  string
	method   string
	amount   kernel.Money
	currency string
	status   Status

	providerTxID string
	payload      []byte
	qrCode       string

	authorizedAt *time.Time
	paidAt       *time.Time
	cancelledAt  *time.Time
	refundedAt   *time.Time
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewTransaction creates a PENDING transaction.
func NewTransaction(
	id, orderID, tenantID kernel.UUID,
	gateway, method string,
	amount kernel.Money,
	currency string,
	createdAt time.Time,
) (*Transaction, error) {
	tx := &Transaction{
		status:        Pending,
		createdAt:     createdAt,
		updatedAt:     createdAt,
		amount:        amount,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		tenantID.Validate(),
		tx.setGateway(gateway),
		tx.setMethod(method),
		tx.setCurrency(currency),
	); err != nil {
		return nil, err
	}
	tx.id, tx.orderID, tx.tenantID = id, orderID, tenantID

	return tx, nil
}

// State carries every persisted field; used by RestoreTransaction.
type State struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	TenantID     kernel.UUID
	Gateway      string
	Method       string
	Amount       kernel.Money
	Currency     string
	Status       Status
	ProviderTxID string
	Payload      []byte
	QRCode       string
	AuthorizedAt *time.Time
	PaidAt       *time.Time
	CancelledAt  *time.Time
	RefundedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RestoreTransaction rebuilds a transaction loaded from storage. It runs the
// constructor checks, then overwrites status, provider data and timestamps
// without replaying transitions.
func RestoreTransaction(s State) (*Transaction, error) {
	tx, err := NewTransaction(s.ID, s.OrderID, s.TenantID, s.Gateway, s.Method, s.Amount, s.Currency, s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	tx.status = s.Status
	tx.providerTxID = s.ProviderTxID
	tx.payload = s.Payload
	tx.qrCode = s.QRCode
	tx.authorizedAt = s.AuthorizedAt
	tx.paidAt = s.PaidAt
	tx.cancelledAt = s.CancelledAt
	tx.refundedAt = s.RefundedAt
	tx.updatedAt = s.UpdatedAt
	return tx, nil
}

// Validate reports ErrTransactionIsNotConstructed for transactions not built by
// NewTransaction or RestoreTransaction.
func (t *Transaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransactionIsNotConstructed
	}
	return nil
}

func (t *Transaction) ID() kernel.UUID { return t.id }
func (t *Transaction) OrderID() kernel.UUID { return t.orderID }
func (t *Transaction) TenantID() kernel.UUID { return t.tenantID }
func (t *Transaction) Gateway() string { return t.gateway }
func (t *Transaction) Method() string { return t.method }
func (t *Transaction) Amount() kernel.Money { return t.amount }
func (t *Transaction) Currency() string { return t.currency }
func (t *Transaction) Status() Status { return t.status }
func (t *Transaction) ProviderTxID() string { return t.providerTxID }
func (t *Transaction) Payload() []byte { return t.payload }
func (t *Transaction) QRCode() string { return t.qrCode }
func (t *Transaction) AuthorizedAt() *time.Time { return t.authorizedAt }
func (t *Transaction) PaidAt() *time.Time { return t.paidAt }
func (t *Transaction) CancelledAt() *time.Time { return t.cancelledAt }
func (t *Transaction) RefundedAt() *time.Time { return t.refundedAt }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }

// IsDirect reports a transaction settled without a gateway.
func (t *Transaction) IsDirect() bool {
	return t.gateway == DirectGateway
}

// RecordProviderResponse stores what the provider returned while the transaction is still pending.
func (t *Transaction) RecordProviderResponse(providerTxID string, payload []byte, qrCode string, at time.Time) error {
	if t.status != Pending {
		return t.transitionError(Pending)
	}
	t.setProviderData(providerTxID, payload, qrCode)
	t.updatedAt = at
	return nil
}

// Authorize records that the gateway reserved the funds.
//
// Valid transitions:
//   - Pending -> Authorized
//
// Returns:
//   - nil on success, with authorizedAt set to at
//   - a conflict error with code INVALID_PAYMENT_TRANSITION from any other status
func (t *Transaction) Authorize(providerTxID string, payload []byte, at time.Time) error {
	if err := t.moveTo(Authorized, at); err != nil {
		return err
	}
	t.setProviderData(providerTxID, payload, "")
	t.authorizedAt = &at
	return nil
}

// MarkPaid records a captured payment.
//
// Valid transitions:
//   - Pending -> Paid (immediate capture, and every direct settlement)
//   - Authorized -> Paid (capture after authorization)
//
// Returns:
//   - nil on success, with paidAt set to at
//   - a conflict error with code INVALID_PAYMENT_TRANSITION from any other status
func (t *Transaction) MarkPaid(providerTxID string, payload []byte, at time.Time) error {
	if err := t.moveTo(Paid, at); err != nil {
		return err
	}
	t.setProviderData(providerTxID, payload, "")
	t.paidAt = &at
	return nil
}

// Decline records a refusal by the gateway. Only a PENDING transaction can be declined.
func (t *Transaction) Decline(providerTxID string, payload []byte, at time.Time) error {
	if err := t.moveTo(Declined, at); err != nil {
		return err
	}
	t.setProviderData(providerTxID, payload, "")
	return nil
}

// Cancel voids a transaction before capture.
//
// Valid transitions:
//   - Pending -> Cancelled (order cancelled, or the provider voided the charge)
//   - Authorized -> Cancelled (reservation released)
//
// Paid transactions are refunded instead.
func (t *Transaction) Cancel(at time.Time) error {
	if err := t.moveTo(Cancelled, at); err != nil {
		return err
	}
	t.cancelledAt = &at
	return nil
}

// Refund returns captured funds. Only a PAID transaction can be refunded.
func (t *Transaction) Refund(at time.Time) error {
	if err := t.moveTo(Refunded, at); err != nil {
		return err
	}
	t.refundedAt = &at
	return nil
}

func (t *Transaction) moveTo(target Status, at time.Time) error {
	if !t.status.canMoveTo(target) {
		return t.transitionError(target)
	}
	t.status = target
	t.updatedAt = at
	return nil
}

func (t *Transaction) transitionError(target Status) error {
	return errs.NewConflictError(
		errs.CodeInvalidPaymentTransition,
		fmt.Sprintf("payment %s cannot move from %s to %s", t.id, t.status, target),
	)
}

// setProviderData keeps earlier provider data when the new response omits it.
func (t *Transaction) setProviderData(providerTxID string, payload []byte, qrCode string) {
	if providerTxID != "" {
		t.providerTxID = providerTxID
	}
	if len(payload) > 0 {
		t.payload = payload
	}
	if qrCode != "" {
		t.qrCode = qrCode
	}
}

func (t *Transaction) setGateway(gateway string) error {
	if strings.TrimSpace(gateway) == "" {
		return errs.NewValueIsRequiredError("gateway")
	}
	t.gateway = strings.ToLower(strings.TrimSpace(gateway))
	return nil
}

func (t *Transaction) setMethod(method string) error {
	if strings.TrimSpace(method) == "" {
		return errs.NewValueIsRequiredError("payment method")
	}
	t.method = strings.TrimSpace(method)
	return nil
}

func (t *Transaction) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	t.currency = currency
	return nil
}
