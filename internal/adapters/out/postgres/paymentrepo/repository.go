package paymentrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// activeStatuses are the transaction states that still bind an order.
var activeStatuses = []string{
	payment.Pending.String(),
	payment.Authorized.String(),
	payment.Paid.String(),
}

type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPaymentRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

func (r *GormPaymentRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	result := r.db.WithContext(ctx).Model(&TransactionDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "order_id", "tenant_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment transaction", tx.ID().String())
	}

	r.tracker.TrackAggregate(tx.ID(), tx)
	return nil
}

func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment transaction", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLatestActive returns the newest PENDING, AUTHORIZED or PAID transaction of the order.
func (r *GormPaymentRepository) GetLatestActive(ctx context.Context, orderID kernel.UUID) (*payment.Transaction, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TransactionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN ?", orderID.Bytes(), activeStatuses).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active payment transaction of order", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
