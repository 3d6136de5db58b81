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

// GormConfigurationRepository implements commerce.ConfigurationRepository using GORM
type GormConfigurationRepository struct {
	db *gorm.DB
}

// NewGormConfigurationRepository creates a new GormConfigurationRepository
func NewGormConfigurationRepository(db *gorm.DB) *GormConfigurationRepository {
	return &GormConfigurationRepository{db: db}
}

func (r *GormConfigurationRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds a configuration by its internal id, product and options populated.
func (r *GormConfigurationRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.ProductConfiguration, error) {
	var model models.ProductConfigurationModel
	if err := r.conn(ctx, tx).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// ListByOrder returns an order's configurations oldest first, products and
// options populated.
func (r *GormConfigurationRepository) ListByOrder(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]commerce.ProductConfiguration, error) {
	var cfgModels []models.ProductConfigurationModel
	if err := r.conn(ctx, tx).
		Preload("Product").
		Preload("Product.Brand").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&cfgModels).Error; err != nil {
		return nil, err
	}
	cfgs := make([]commerce.ProductConfiguration, len(cfgModels))
	for i, m := range cfgModels {
		cfgs[i] = *m.ToDomain()
	}
	return cfgs, nil
}

// Create persists a new configuration.
func (r *GormConfigurationRepository) Create(ctx context.Context, tx *gorm.DB, cfg *commerce.ProductConfiguration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.ProductConfigurationModelFromDomain(cfg)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "channelItemId")
	}
	return commit()
}

// Update persists changes to an existing configuration.
func (r *GormConfigurationRepository) Update(ctx context.Context, tx *gorm.DB, cfg *commerce.ProductConfiguration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Save(models.ProductConfigurationModelFromDomain(cfg)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "channelItemId")
	}
	return commit()
}

// Delete removes a configuration and, via cascade, its options.
func (r *GormConfigurationRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.ProductConfigurationModel{}, "id = ?", id)
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

// UpsertByChannelID reconciles a configuration against the row with the same
// channel line item id, then re-fetches it with product and options.
func (r *GormConfigurationRepository) UpsertByChannelID(ctx context.Context, tx *gorm.DB, cfg *commerce.ProductConfiguration) (*commerce.ProductConfiguration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.ProductConfigurationModel
	err := gorm.ErrRecordNotFound
	if cfg.ChannelItemID != nil {
		err = scope.Where("channel_item_id = ?", *cfg.ChannelItemID).First(&existing).Error
	}
	switch {
	case err == nil:
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		cfg.UpdatedAt = time.Now()
		if err := scope.Save(models.ProductConfigurationModelFromDomain(cfg)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelItemId")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// The savepoint keeps the surrounding transaction usable when a
		// concurrent import wins the insert race; the caller re-finds the
		// winner on the same transaction.
		if err := scope.SavePoint("configuration_create").Error; err != nil {
			_ = rollback()
			return nil, err
		}
		if err := scope.Create(models.ProductConfigurationModelFromDomain(cfg)).Error; err != nil {
			werr := translateWriteError(err, "channelItemId")
			if shared.IsUniqueViolation(werr, "channelItemId") {
				_ = scope.RollbackTo("configuration_create").Error
			}
			_ = rollback()
			return nil, werr
		}
	default:
		_ = rollback()
		return nil, err
	}

	reread, err := r.GetByID(ctx, scope, cfg.ID)
	if err != nil {
		_ = rollback()
		return nil, err
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread, nil
}

// UpsertOption reconciles an option keyed by the (channel option id,
// configuration id) pair: at most one option of a given channel kind exists
// per configuration.
func (r *GormConfigurationRepository) UpsertOption(ctx context.Context, tx *gorm.DB, option *commerce.ProductOption) (*commerce.ProductOption, error) {
	if err := option.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.ProductOptionModel
	err := gorm.ErrRecordNotFound
	if option.ChannelOptionID != nil {
		err = scope.
			Where("channel_option_id = ? AND configuration_id = ?", *option.ChannelOptionID, option.ConfigurationID).
			First(&existing).Error
	}
	switch {
	case err == nil:
		option.ID = existing.ID
		option.CreatedAt = existing.CreatedAt
		option.UpdatedAt = time.Now()
		if err := scope.Save(models.ProductOptionModelFromDomain(option)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelOptionId")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := scope.SavePoint("option_create").Error; err != nil {
			_ = rollback()
			return nil, err
		}
		if err := scope.Create(models.ProductOptionModelFromDomain(option)).Error; err != nil {
			werr := translateWriteError(err, "channelOptionId")
			if shared.IsUniqueViolation(werr, "channelOptionId") {
				_ = scope.RollbackTo("option_create").Error
			}
			_ = rollback()
			return nil, werr
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.ProductOptionModel
	if err := scope.First(&reread, "id = ?", option.ID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}
