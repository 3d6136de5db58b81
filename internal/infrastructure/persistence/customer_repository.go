package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements commerce.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds a customer by its internal id, addresses populated.
func (r *GormCustomerRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.Customer, error) {
	var model models.CustomerModel
	if err := r.conn(ctx, tx).Preload("Addresses").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a customer by email, the reconciliation key for imports.
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*commerce.Customer, error) {
	if email == "" {
		return nil, shared.NewValidationError("email", shared.ErrCodeRequiredField, "email cannot be empty")
	}
	var model models.CustomerModel
	if err := r.conn(ctx, tx).
		Preload("Addresses").
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// Create persists a new customer.
func (r *GormCustomerRepository) Create(ctx context.Context, tx *gorm.DB, customer *commerce.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.CustomerModelFromDomain(customer)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "email")
	}
	return commit()
}

// Update persists changes to an existing customer.
func (r *GormCustomerRepository) Update(ctx context.Context, tx *gorm.DB, customer *commerce.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	customer.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Save(models.CustomerModelFromDomain(customer))
	if result.Error != nil {
		_ = rollback()
		return translateWriteError(result.Error, "email")
	}
	return commit()
}

// Delete removes a customer. Deletion is restricted while the customer still
// owns orders; the storage engine reports that as a foreign-key violation.
func (r *GormCustomerRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.CustomerModel{}, "id = ?", id)
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

// UpsertByEmail reconciles the given customer against the row with the same
// email: create when absent, update in place preserving the internal id when
// present, then re-fetch the row with its addresses populated.
func (r *GormCustomerRepository) UpsertByEmail(ctx context.Context, tx *gorm.DB, customer *commerce.Customer) (*commerce.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.CustomerModel
	err := scope.Where("email = ?", strings.ToLower(customer.Email)).First(&existing).Error
	switch {
	case err == nil:
		customer.ID = existing.ID
		customer.CreatedAt = existing.CreatedAt
		customer.UpdatedAt = time.Now()
		if err := scope.Save(models.CustomerModelFromDomain(customer)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "email")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := scope.Create(models.CustomerModelFromDomain(customer)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "email")
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.CustomerModel
	if err := scope.Preload("Addresses").First(&reread, "id = ?", customer.ID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}
