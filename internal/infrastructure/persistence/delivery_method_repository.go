package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDeliveryMethodRepository implements commerce.DeliveryMethodRepository using GORM
type GormDeliveryMethodRepository struct {
	db *gorm.DB
}

// NewGormDeliveryMethodRepository creates a new GormDeliveryMethodRepository
func NewGormDeliveryMethodRepository(db *gorm.DB) *GormDeliveryMethodRepository {
	return &GormDeliveryMethodRepository{db: db}
}

func (r *GormDeliveryMethodRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds a delivery method by its internal id.
func (r *GormDeliveryMethodRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.DeliveryMethod, error) {
	var model models.DeliveryMethodModel
	if err := r.conn(ctx, tx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a delivery method by its unique name.
func (r *GormDeliveryMethodRepository) FindByName(ctx context.Context, tx *gorm.DB, name string) (*commerce.DeliveryMethod, error) {
	var model models.DeliveryMethodModel
	if err := r.conn(ctx, tx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// Create persists a new delivery method.
func (r *GormDeliveryMethodRepository) Create(ctx context.Context, tx *gorm.DB, method *commerce.DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.DeliveryMethodModelFromDomain(method)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "name")
	}
	return commit()
}

// Update persists changes to an existing delivery method.
func (r *GormDeliveryMethodRepository) Update(ctx context.Context, tx *gorm.DB, method *commerce.DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	method.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Save(models.DeliveryMethodModelFromDomain(method)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "name")
	}
	return commit()
}

// Delete removes a delivery method. Deletion is restricted while orders
// reference it.
func (r *GormDeliveryMethodRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.DeliveryMethodModel{}, "id = ?", id)
	if result.Error != nil {
		_ = rollback()
		return translateWriteError(result.Error, "id")
	}
	if result.RowsAffected == 0 {
		_ = rollback()
		return shared.ErrNotFound
	}
	return commit()
}
