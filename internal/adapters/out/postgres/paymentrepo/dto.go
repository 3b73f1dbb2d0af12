// Package paymentrepo persists payment transactions.
package paymentrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_payment_transactions_order,priority:1"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null"`
	Gateway      string          `gorm:"type:varchar(32);not null"`
	Method       string          `gorm:"type:varchar(24);not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency     string          `gorm:"type:varchar(3);not null"`
	Status       string          `gorm:"type:varchar(16);not null;index"`
	ProviderTxID string          `gorm:"type:varchar(128);index"`
	Payload      []byte          `gorm:"type:bytea"`
	QRCode       string          `gorm:"type:text"`
	AuthorizedAt *time.Time
	PaidAt       *time.Time
	CancelledAt  *time.Time
	RefundedAt   *time.Time
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false;index:idx_payment_transactions_order,priority:2"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (TransactionDTO) TableName() string {
	return "payment_transactions"
}

func fromDomain(tx *payment.Transaction) TransactionDTO {
	var payload []byte
	if len(tx.Payload()) > 0 {
		payload = tx.Payload()
	}

	return TransactionDTO{
		ID:           tx.ID().Bytes(),
		OrderID:      tx.OrderID().Bytes(),
		TenantID:     tx.TenantID().Bytes(),
		Gateway:      tx.Gateway(),
		Method:       tx.Method(),
		Amount:       tx.Amount().Decimal(),
		Currency:     tx.Currency(),
		Status:       tx.Status().String(),
		ProviderTxID: tx.ProviderTxID(),
		Payload:      payload,
		QRCode:       tx.QRCode(),
		AuthorizedAt: tx.AuthorizedAt(),
		PaidAt:       tx.PaidAt(),
		CancelledAt:  tx.CancelledAt(),
		RefundedAt:   tx.RefundedAt(),
		CreatedAt:    tx.CreatedAt(),
		UpdatedAt:    tx.UpdatedAt(),
	}
}

func toDomain(dto TransactionDTO) (*payment.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestoreTransaction(payment.State{
		ID:           id,
		OrderID:      orderID,
		TenantID:     tenantID,
		Gateway:      dto.Gateway,
		Method:       dto.Method,
		Amount:       amount,
		Currency:     dto.Currency,
		Status:       status,
		ProviderTxID: dto.ProviderTxID,
		Payload:      dto.Payload,
		QRCode:       dto.QRCode,
		AuthorizedAt: dto.AuthorizedAt,
		PaidAt:       dto.PaidAt,
		CancelledAt:  dto.CancelledAt,
		RefundedAt:   dto.RefundedAt,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
