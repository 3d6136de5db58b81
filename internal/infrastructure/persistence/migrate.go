package persistence

import (
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the schema for all commerce tables,
// including the unique indexes and cascade constraints the reconciliation
// engine depends on. Parents are migrated before children so foreign keys
// resolve.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.CustomerModel{},
		&models.DeliveryMethodModel{},
		&models.BrandModel{},
		&models.ProductModel{},
		&models.OrderModel{},
		&models.AddressModel{},
		&models.OrderChannelModel{},
		&models.OrderCommentModel{},
		&models.ProductConfigurationModel{},
		&models.ProductOptionModel{},
		&models.DeliveryModel{},
		&models.DeliveryItemModel{},
	)
}
