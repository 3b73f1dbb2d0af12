package services

import (
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"
)

const (
	paymentActor         = "payment"
	reasonPaymentSettled = "payment confirmed"
)

// PaymentOrchestrator holds the payment rules that touch both the order and its
// transaction. The handlers around it own loading, locking and the gateway call.
type PaymentOrchestrator struct{}

func NewPaymentOrchestrator() PaymentOrchestrator {
	return PaymentOrchestrator{}
}

// CheckInitiate rejects orders that cannot be charged for amount.
func (p PaymentOrchestrator) CheckInitiate(o *order.Order, amount kernel.Money) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status().IsTerminal() {
		return errs.NewConflictError(errs.CodeOrderNotEditable, fmt.Sprintf("order is %s", o.Status()))
	}
	if !amount.Equal(o.Totals().Total()) {
		return errs.NewValidationError(
			errs.CodeAmountMismatch,
			fmt.Sprintf("amount %s does not match order total %s", amount, o.Totals().Total()),
		)
	}
	return nil
}

// Reuse decides what to do with the latest non-failed transaction of an order.
// A settled transaction is returned as is and must not be charged again. A pending
// one is charged again under its own id so the gateway can deduplicate. With no
// transaction the caller creates a new one.
func (p PaymentOrchestrator) Reuse(latest *payment.Transaction) (tx *payment.Transaction, charge bool) {
	if latest == nil || latest.Status().IsFailed() {
		return nil, true
	}
	if latest.Status().IsSettled() {
		return latest, false
	}
	return latest, true
}

// CheckMethod rejects a charge whose method differs from the one the order was
// finalized with. An order is paid one way only.
func (p PaymentOrchestrator) CheckMethod(o *order.Order, method order.PaymentMethod) error {
	if method != o.PaymentMethod() {
		return errs.NewValidationError(
			errs.CodeMethodMismatch,
			fmt.Sprintf("order is paid by %s, not %s", o.PaymentMethod(), method),
		)
	}
	return nil
}

// Open creates a PENDING transaction for the order total. The order itself is not
// touched; it points at the transaction once a gateway result is recorded.
func (p PaymentOrchestrator) Open(
	o *order.Order,
	id kernel.UUID,
	gateway string,
	method order.PaymentMethod,
	currency string,
	at time.Time,
) (*payment.Transaction, error) {
	if err := p.CheckMethod(o, method); err != nil {
		return nil, err
	}
	return payment.NewTransaction(id, o.ID(), o.TenantID(), gateway, method.String(), o.Totals().Total(), currency, at)
}

// Apply records a gateway result on a pending transaction and links the order to it.
// A settled result advances an order waiting for payment to PRINT_PENDING, unless the
// transaction was opened for another amount than the current total. Results arriving
// for a transaction that is no longer pending are ignored. A refund reported for a
// charge that never settled voids it. It reports whether the transaction is settled.
func (p PaymentOrchestrator) Apply(
	o *order.Order,
	tx *payment.Transaction,
	result payment.ProviderResult,
	at time.Time,
) (bool, error) {
	if tx.Status() != payment.Pending {
		return tx.Status().IsSettled(), nil
	}

	var err error
	//nolint:exhaustive // unknown provider statuses are rejected below
	switch result.Status {
	case payment.Paid:
		err = tx.MarkPaid(result.ProviderTxID, result.Payload, at)
	case payment.Authorized:
		err = tx.Authorize(result.ProviderTxID, result.Payload, at)
	case payment.Pending:
		if err = tx.RecordProviderResponse(result.ProviderTxID, result.Payload, result.QRCode, at); err != nil {
			return false, err
		}
		return false, p.link(o, tx)
	case payment.Declined:
		return false, tx.Decline(result.ProviderTxID, result.Payload, at)
	case payment.Cancelled, payment.Refunded:
		return false, tx.Cancel(at)
	default:
		return false, errs.NewValueIsInvalidErrorWithCause(
			"gateway status",
			fmt.Errorf("unexpected status %s", result.Status),
		)
	}
	if err != nil {
		return false, err
	}
	if err = p.link(o, tx); err != nil {
		return false, err
	}
	if !tx.Amount().Equal(o.Totals().Total()) {
		return true, nil
	}
	return true, p.advance(o, at)
}

// SettleDirect pays an order collected in person without contacting any gateway.
func (p PaymentOrchestrator) SettleDirect(
	o *order.Order,
	id kernel.UUID,
	currency string,
	at time.Time,
) (*payment.Transaction, error) {
	if o.PaymentMethod().RequiresOnlineConfirmation() {
		return nil, errs.NewValidationError(
			errs.CodeInvalidValue,
			fmt.Sprintf("%s must be confirmed through a gateway", o.PaymentMethod()),
		)
	}
	tx, err := p.Open(o, id, payment.DirectGateway, o.PaymentMethod(), currency, at)
	if err != nil {
		return nil, err
	}
	if err = tx.MarkPaid("", nil, at); err != nil {
		return nil, err
	}
	if err = p.link(o, tx); err != nil {
		return nil, err
	}
	if err = p.advance(o, at); err != nil {
		return nil, err
	}
	return tx, nil
}

// Release voids a transaction that has not captured money yet. It is used when the
// order is cancelled and reports whether tx changed.
func (p PaymentOrchestrator) Release(tx *payment.Transaction, at time.Time) (bool, error) {
	if tx == nil {
		return false, nil
	}
	if tx.Status() != payment.Pending && tx.Status() != payment.Authorized {
		return false, nil
	}
	return true, tx.Cancel(at)
}

func (p PaymentOrchestrator) link(o *order.Order, tx *payment.Transaction) error {
	if current := o.PaymentTransactionID(); current != nil && current.IsEqual(tx.ID()) {
		return nil
	}
	return o.AttachPaymentTransaction(tx.ID())
}

func (p PaymentOrchestrator) advance(o *order.Order, at time.Time) error {
	if o.Status() != order.AwaitingPayment {
		return nil
	}
	return o.ChangeStatus(order.PrintPending, reasonPaymentSettled, paymentActor, at)
}
