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

// GormOrderRepository implements commerce.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// withAggregate preloads the full order aggregate: customer, both addresses,
// channel linkage, comments, and configurations with product, brand and
// options. Reads through here are what make the read model
// association-complete after writes.
func withAggregate(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Customer").
		Preload("BillingAddress").
		Preload("ShippingAddress").
		Preload("Channel").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Configurations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Configurations.Product").
		Preload("Configurations.Product.Brand").
		Preload("Configurations.Options", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") })
}

// GetByID loads the order with its full aggregate.
func (r *GormOrderRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.Order, error) {
	var model models.OrderModel
	if err := withAggregate(r.conn(ctx, tx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// GetByNumber loads the order with its full aggregate by its human order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, tx *gorm.DB, number string) (*commerce.Order, error) {
	var model models.OrderModel
	if err := withAggregate(r.conn(ctx, tx)).Where("number = ?", number).First(&model).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindByChannelOrderID resolves an order through its channel linkage.
func (r *GormOrderRepository) FindByChannelOrderID(ctx context.Context, tx *gorm.DB, channelOrderID int) (*commerce.Order, error) {
	var link models.OrderChannelModel
	if err := r.conn(ctx, tx).
		Where("channel_order_id = ?", channelOrderID).
		First(&link).Error; err != nil {
		return nil, translateReadError(err)
	}
	return r.GetByID(ctx, tx, link.OrderID)
}

// List returns order headers newest first.
func (r *GormOrderRepository) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]commerce.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var orderModels []models.OrderModel
	if err := r.conn(ctx, tx).
		Order("ordered_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]commerce.Order, len(orderModels))
	for i, m := range orderModels {
		orders[i] = *m.ToDomain()
	}
	return orders, nil
}

// Create persists a new order header.
func (r *GormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *commerce.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.OrderModelFromDomain(order)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "number")
	}
	return commit()
}

// Update persists changes to an existing order header.
func (r *GormOrderRepository) Update(ctx context.Context, tx *gorm.DB, order *commerce.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	order.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Save(models.OrderModelFromDomain(order)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "number")
	}
	return commit()
}

// Delete removes an order. Its addresses, comments, configurations and
// channel linkage go with it per the declared cascade policies.
func (r *GormOrderRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.OrderModel{}, "id = ?", id)
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

// UpsertByNumber reconciles the order header against the row with the same
// order number, then re-fetches the full aggregate.
func (r *GormOrderRepository) UpsertByNumber(ctx context.Context, tx *gorm.DB, order *commerce.Order) (*commerce.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.OrderModel
	err := scope.Where("number = ?", order.Number).First(&existing).Error
	switch {
	case err == nil:
		order.ID = existing.ID
		order.CreatedAt = existing.CreatedAt
		order.UpdatedAt = time.Now()
		if err := scope.Save(models.OrderModelFromDomain(order)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "number")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := scope.Create(models.OrderModelFromDomain(order)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "number")
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.OrderModel
	if err := withAggregate(scope).First(&reread, "id = ?", order.ID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}

// UpsertChannel reconciles the one-to-one channel linkage keyed by the
// channel order id.
func (r *GormOrderRepository) UpsertChannel(ctx context.Context, tx *gorm.DB, link *commerce.OrderChannel) (*commerce.OrderChannel, error) {
	if err := link.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.OrderChannelModel
	err := scope.Where("channel_order_id = ?", link.ChannelOrderID).First(&existing).Error
	switch {
	case err == nil:
		link.CreatedAt = existing.CreatedAt
		link.UpdatedAt = time.Now()
		if err := scope.Save(models.OrderChannelModelFromDomain(link)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelOrderId")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now()
		link.CreatedAt = now
		link.UpdatedAt = now
		if err := scope.Create(models.OrderChannelModelFromDomain(link)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelOrderId")
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.OrderChannelModel
	if err := scope.First(&reread, "channel_order_id = ?", link.ChannelOrderID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}
