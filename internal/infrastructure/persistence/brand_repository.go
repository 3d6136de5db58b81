package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBrandRepository implements commerce.BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

func (r *GormBrandRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds a brand by its internal id.
func (r *GormBrandRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.Brand, error) {
	var model models.BrandModel
	if err := r.conn(ctx, tx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindByName finds a brand by its name.
func (r *GormBrandRepository) FindByName(ctx context.Context, tx *gorm.DB, name string) (*commerce.Brand, error) {
	var model models.BrandModel
	if err := r.conn(ctx, tx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// Create persists a new brand.
func (r *GormBrandRepository) Create(ctx context.Context, tx *gorm.DB, brand *commerce.Brand) error {
	if err := brand.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.BrandModelFromDomain(brand)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "name")
	}
	return commit()
}

// Update persists changes to an existing brand.
func (r *GormBrandRepository) Update(ctx context.Context, tx *gorm.DB, brand *commerce.Brand) error {
	if err := brand.Validate(); err != nil {
		return err
	}
	brand.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Save(models.BrandModelFromDomain(brand)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "name")
	}
	return commit()
}

// Delete removes a brand. Its products survive with a null brand reference.
func (r *GormBrandRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.BrandModel{}, "id = ?", id)
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

// UpsertByChannelID reconciles a brand against the row with the same channel
// brand id, falling back to the name for brands the channel does not assign
// an id to.
func (r *GormBrandRepository) UpsertByChannelID(ctx context.Context, tx *gorm.DB, brand *commerce.Brand) (*commerce.Brand, error) {
	if err := brand.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.BrandModel
	var err error
	if brand.ChannelBrandID != nil {
		err = scope.Where("channel_brand_id = ?", *brand.ChannelBrandID).First(&existing).Error
	} else {
		err = scope.Where("name = ?", brand.Name).First(&existing).Error
	}
	switch {
	case err == nil:
		brand.ID = existing.ID
		brand.CreatedAt = existing.CreatedAt
		brand.UpdatedAt = time.Now()
		if err := scope.Save(models.BrandModelFromDomain(brand)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelBrandId")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// A savepoint keeps the surrounding transaction usable when a
		// concurrent import wins the insert race; the caller re-finds the
		// winner on the same transaction.
		if err := scope.SavePoint("brand_create").Error; err != nil {
			_ = rollback()
			return nil, err
		}
		if err := scope.Create(models.BrandModelFromDomain(brand)).Error; err != nil {
			werr := translateWriteError(err, "channelBrandId")
			if shared.IsUniqueViolation(werr, "channelBrandId") {
				_ = scope.RollbackTo("brand_create").Error
			}
			_ = rollback()
			return nil, werr
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.BrandModel
	if err := scope.First(&reread, "id = ?", brand.ID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}
