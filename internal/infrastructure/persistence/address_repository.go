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

// GormAddressRepository implements commerce.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds an address by its internal id.
func (r *GormAddressRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.Address, error) {
	var model models.AddressModel
	if err := r.conn(ctx, tx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindByChannelID finds an address by the channel's identity for it.
func (r *GormAddressRepository) FindByChannelID(ctx context.Context, tx *gorm.DB, channelAddressID int) (*commerce.Address, error) {
	var model models.AddressModel
	if err := r.conn(ctx, tx).
		Where("channel_address_id = ?", channelAddressID).
		First(&model).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// ListByCustomer returns all book addresses of a customer.
func (r *GormAddressRepository) ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]commerce.Address, error) {
	var addressModels []models.AddressModel
	if err := r.conn(ctx, tx).
		Where("customer_id = ?", customerID).
		Order("created_at").
		Find(&addressModels).Error; err != nil {
		return nil, err
	}
	addresses := make([]commerce.Address, len(addressModels))
	for i, m := range addressModels {
		addresses[i] = *m.ToDomain()
	}
	return addresses, nil
}

// Create persists a new address.
func (r *GormAddressRepository) Create(ctx context.Context, tx *gorm.DB, address *commerce.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.AddressModelFromDomain(address)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "channelAddressId")
	}
	return commit()
}

// Update persists changes to an existing address.
func (r *GormAddressRepository) Update(ctx context.Context, tx *gorm.DB, address *commerce.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	address.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Save(models.AddressModelFromDomain(address)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "channelAddressId")
	}
	return commit()
}

// Delete removes an address.
func (r *GormAddressRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.AddressModel{}, "id = ?", id)
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

// UpsertByChannelID reconciles the given address against the row with the
// same channel address id, then re-fetches the result. An address without a
// channel identity is always created.
func (r *GormAddressRepository) UpsertByChannelID(ctx context.Context, tx *gorm.DB, address *commerce.Address) (*commerce.Address, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.AddressModel
	err := gorm.ErrRecordNotFound
	if address.ChannelAddressID != nil {
		err = scope.Where("channel_address_id = ?", *address.ChannelAddressID).First(&existing).Error
	}
	switch {
	case err == nil:
		address.ID = existing.ID
		address.CreatedAt = existing.CreatedAt
		address.UpdatedAt = time.Now()
		if err := scope.Save(models.AddressModelFromDomain(address)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelAddressId")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := scope.Create(models.AddressModelFromDomain(address)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelAddressId")
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.AddressModel
	if err := scope.First(&reread, "id = ?", address.ID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}
