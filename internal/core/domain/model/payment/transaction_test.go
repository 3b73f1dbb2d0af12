package payment_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTransaction(t *testing.T) *payment.Transaction {
	t.Helper()
	tx, err := payment.NewTransaction(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"PagFlow", "PIX", kernel.MustMoney("59.40"), "", now,
	)
	require.NoError(t, err)
	return tx
}

func TestNewTransaction(t *testing.T) {
	t.Run("should start pending with defaults", func(t *testing.T) {
		tx := newTransaction(t)

		require.NoError(t, tx.Validate())
		assert.Equal(t, payment.Pending, tx.Status())
		assert.Equal(t, "pagflow", tx.Gateway())
		assert.Equal(t, payment.DefaultCurrency, tx.Currency())
		assert.False(t, tx.IsDirect())
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		var zero kernel.UUID

		tx, err := payment.NewTransaction(zero, zero, zero, " ", "", kernel.ZeroMoney(), "EURO", now)

		require.Error(t, err)
		assert.Nil(t, tx)
		assert.Contains(t, err.Error(), "gateway")
		assert.Contains(t, err.Error(), "payment method")
		assert.Contains(t, err.Error(), "currency")
	})
}

func TestTransaction_StateMachine(t *testing.T) {
	t.Run("pending to paid records provider data", func(t *testing.T) {
		tx := newTransaction(t)

		require.NoError(t, tx.MarkPaid("prov-1", []byte(`{"ok":true}`), now))

		assert.Equal(t, payment.Paid, tx.Status())
		assert.Equal(t, "prov-1", tx.ProviderTxID())
		require.NotNil(t, tx.PaidAt())
		assert.True(t, tx.Status().IsSettled())
	})

	t.Run("authorized then paid", func(t *testing.T) {
		tx := newTransaction(t)

		require.NoError(t, tx.Authorize("prov-1", nil, now))
		require.NoError(t, tx.MarkPaid("", nil, now.Add(time.Minute)))

		assert.Equal(t, "prov-1", tx.ProviderTxID())
		require.NotNil(t, tx.AuthorizedAt())
		require.NotNil(t, tx.PaidAt())
	})

	t.Run("paid can only be refunded", func(t *testing.T) {
		tx := newTransaction(t)
		require.NoError(t, tx.MarkPaid("prov-1", nil, now))

		err := tx.Cancel(now)
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, errs.CodeInvalidPaymentTransition, errs.CodeOf(err))

		require.NoError(t, tx.Refund(now))
		assert.True(t, tx.Status().IsFailed())
		require.NotNil(t, tx.RefundedAt())
	})

	t.Run("declined is terminal", func(t *testing.T) {
		tx := newTransaction(t)
		require.NoError(t, tx.Decline("prov-1", nil, now))

		require.Error(t, tx.MarkPaid("prov-1", nil, now))
		require.Error(t, tx.Cancel(now))
		assert.True(t, tx.Status().IsFailed())
	})

	t.Run("provider response only while pending", func(t *testing.T) {
		tx := newTransaction(t)

		require.NoError(t, tx.RecordProviderResponse("prov-1", []byte(`{}`), "00020126qr", now))
		assert.Equal(t, "00020126qr", tx.QRCode())
		assert.Equal(t, payment.Pending, tx.Status())

		require.NoError(t, tx.Cancel(now))
		require.Error(t, tx.RecordProviderResponse("prov-2", nil, "", now))
		assert.Equal(t, "prov-1", tx.ProviderTxID())
	})
}

func TestTransaction_Restore(t *testing.T) {
	paidAt := now
	tx, err := payment.RestoreTransaction(payment.State{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), TenantID: kernel.NewUUID(),
		Gateway: payment.DirectGateway, Method: "CASH", Amount: kernel.MustMoney("10"),
		Currency: "BRL", Status: payment.Paid, PaidAt: &paidAt, CreatedAt: now, UpdatedAt: now,
	})

	require.NoError(t, err)
	assert.True(t, tx.IsDirect())
	assert.Equal(t, payment.Paid, tx.Status())

	_, err = payment.RestoreTransaction(payment.State{
		ID: kernel.NewUUID(), OrderID: kernel.NewUUID(), TenantID: kernel.NewUUID(),
		Gateway: "x", Method: "PIX", Status: payment.Unknown,
	})
	require.Error(t, err)
}

func TestStatus_Parse(t *testing.T) {
	for _, code := range []string{"PENDING", "AUTHORIZED", "PAID", "DECLINED", "CANCELLED", "REFUNDED"} {
		s, err := payment.ParseStatus(code)
		require.NoError(t, err)
		assert.Equal(t, code, s.String())
	}
	_, err := payment.ParseStatus("SETTLED")
	require.Error(t, err)
}
