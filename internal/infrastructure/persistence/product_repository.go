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

// GormProductRepository implements commerce.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds a product by its internal id, brand populated.
func (r *GormProductRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.Product, error) {
	var model models.ProductModel
	if err := r.conn(ctx, tx).Preload("Brand").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a product by its SKU.
func (r *GormProductRepository) FindBySKU(ctx context.Context, tx *gorm.DB, sku string) (*commerce.Product, error) {
	if sku == "" {
		return nil, shared.NewValidationError("sku", shared.ErrCodeRequiredField, "sku cannot be empty")
	}
	var model models.ProductModel
	if err := r.conn(ctx, tx).Preload("Brand").Where("sku = ?", sku).First(&model).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// Create persists a new product.
func (r *GormProductRepository) Create(ctx context.Context, tx *gorm.DB, product *commerce.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.ProductModelFromDomain(product)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "sku")
	}
	return commit()
}

// Update persists changes to an existing product.
func (r *GormProductRepository) Update(ctx context.Context, tx *gorm.DB, product *commerce.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	product.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Save(models.ProductModelFromDomain(product)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "sku")
	}
	return commit()
}

// Delete removes a product. Its configurations go with it.
func (r *GormProductRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.ProductModel{}, "id = ?", id)
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

// UpsertByChannelID reconciles a product against the row with the same
// channel product id, falling back to the SKU and then to the name within
// the brand when identifiers are absent, then re-fetches the result with its
// brand populated.
func (r *GormProductRepository) UpsertByChannelID(ctx context.Context, tx *gorm.DB, product *commerce.Product) (*commerce.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.ProductModel
	err := gorm.ErrRecordNotFound
	if product.ChannelProductID != nil {
		err = scope.Where("channel_product_id = ?", *product.ChannelProductID).First(&existing).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && product.SKU != nil {
		err = scope.Where("sku = ?", *product.SKU).First(&existing).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && product.ChannelProductID == nil && product.SKU == nil {
		// Bare line items carry nothing but a name. Matching by name within
		// the brand keeps a re-imported "Gift wrap" from piling up rows.
		query := scope.Where("name = ?", product.Name)
		if product.BrandID != nil {
			query = query.Where("brand_id = ?", *product.BrandID)
		} else {
			query = query.Where("brand_id IS NULL")
		}
		err = query.First(&existing).Error
	}
	switch {
	case err == nil:
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = time.Now()
		if err := scope.Save(models.ProductModelFromDomain(product)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelProductId")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := scope.SavePoint("product_create").Error; err != nil {
			_ = rollback()
			return nil, err
		}
		if err := scope.Create(models.ProductModelFromDomain(product)).Error; err != nil {
			werr := translateWriteError(err, "channelProductId")
			if shared.IsUniqueViolation(werr, "channelProductId") {
				_ = scope.RollbackTo("product_create").Error
			}
			_ = rollback()
			return nil, werr
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.ProductModel
	if err := scope.Preload("Brand").First(&reread, "id = ?", product.ID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}
