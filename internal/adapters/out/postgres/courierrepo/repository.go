package courierrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/courier"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository reads and seeds the courier roster.
type GormCourierRepository struct {
	db *gorm.DB
}

func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add registers a courier. The ordering core never calls it; roster management and
// tests do.
func (r *GormCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Exists reports whether an active courier with courierID belongs to tenantID.
func (r *GormCourierRepository) Exists(ctx context.Context, tenantID, courierID kernel.UUID) (bool, error) {
	c, err := r.Get(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.CanServe(tenantID), nil
}
