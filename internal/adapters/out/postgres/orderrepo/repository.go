package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row, its items and its full history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1
	dto.History = historyFromDomain(dto.ID, aggregate.History())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the order row guarded by its version, replaces the items and
// appends the history entries recorded since the order was loaded.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "tenant_id", "number", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if err := db.Where("order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if history := historyFromDomain(dto.ID, aggregate.NewHistory()); len(history) > 0 {
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}

	aggregate.MarkPersisted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items and history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE before loading it.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// NextNumber bumps the tenant's sequence row with an upsert. The row stays locked by
// the surrounding transaction until it ends.
func (r *GormOrderRepository) NextNumber(ctx context.Context, tenantID kernel.UUID) (int64, error) {
	if err := tenantID.Validate(); err != nil {
		return 0, err
	}

	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_sequences (tenant_id, last_number)
		VALUES (?, 1)
		ON CONFLICT (tenant_id)
		DO UPDATE SET last_number = order_sequences.last_number + 1
		RETURNING last_number
	`, tenantID.Bytes()).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *GormOrderRepository) load(db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("History", func(tx *gorm.DB) *gorm.DB { return tx.Order("sequence") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound(id)
	}
	return errs.NewConflictError(
		errs.CodeConcurrentUpdate,
		fmt.Sprintf("order %s was changed by another request", id),
	)
}

func notFound(id kernel.UUID) error {
	return errs.NewNotFoundError(errs.CodeOrderNotFound, fmt.Sprintf("order %s not found", id))
}
