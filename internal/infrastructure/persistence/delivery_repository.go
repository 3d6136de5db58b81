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

// GormDeliveryRepository implements commerce.DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds a delivery by its internal id, items populated.
func (r *GormDeliveryRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.Delivery, error) {
	var model models.DeliveryModel
	if err := r.conn(ctx, tx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// Create persists a new delivery header.
func (r *GormDeliveryRepository) Create(ctx context.Context, tx *gorm.DB, delivery *commerce.Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.DeliveryModelFromDomain(delivery)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "orderId")
	}
	return commit()
}

// Delete removes a delivery and, via cascade, its items.
func (r *GormDeliveryRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.DeliveryModel{}, "id = ?", id)
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

// BulkCreateItems persists the batch all-or-nothing under one transaction.
//
// Each create attempt runs under a savepoint: a failed INSERT aborts the
// whole postgres transaction otherwise, and no follow-up statement would run.
// When a create trips the unique (configuration, delivery) constraint, the
// attempt is rolled back to the savepoint and the conflict is recovered only
// if the conflicting row was created earlier in this same batch: the
// quantities are merged into that row and no new row is written. A conflict
// with a row that predates the batch re-raises, as does any error that is not
// exactly that one constraint violation. Cross-batch merging stays out of
// scope on purpose; widening this path silently changes import semantics.
func (r *GormDeliveryRepository) BulkCreateItems(ctx context.Context, tx *gorm.DB, deliveryID uuid.UUID, items []commerce.DeliveryItem) ([]commerce.DeliveryItem, error) {
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	const savepoint = "bulk_item_create"
	created := make([]commerce.DeliveryItem, 0, len(items))
	for i := range items {
		item := items[i]
		item.DeliveryID = deliveryID
		if item.ID == uuid.Nil {
			item.BaseEntity = shared.NewBaseEntity()
		}
		if err := item.Validate(); err != nil {
			_ = rollback()
			return nil, err
		}

		if err := scope.SavePoint(savepoint).Error; err != nil {
			_ = rollback()
			return nil, err
		}
		err := scope.Create(models.DeliveryItemModelFromDomain(&item)).Error
		if err == nil {
			created = append(created, item)
			continue
		}
		err = translateWriteError(err, "configurationId")
		if !shared.IsUniqueViolation(err, "configurationId") {
			_ = rollback()
			return nil, err
		}
		if rbErr := scope.RollbackTo(savepoint).Error; rbErr != nil {
			_ = rollback()
			return nil, rbErr
		}

		merged := false
		for j := range created {
			if created[j].ConfigurationID != item.ConfigurationID {
				continue
			}
			created[j].Quantity += item.Quantity
			created[j].UpdatedAt = time.Now()
			if err := scope.Save(models.DeliveryItemModelFromDomain(&created[j])).Error; err != nil {
				_ = rollback()
				return nil, translateWriteError(err, "configurationId")
			}
			merged = true
			break
		}
		if !merged {
			// The conflicting row predates this batch.
			_ = rollback()
			return nil, err
		}
	}

	if err := commit(); err != nil {
		return nil, err
	}
	return created, nil
}
