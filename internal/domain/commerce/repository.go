package commerce

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository ports for the commerce context.
//
// Every write method takes an optional transaction handle. A nil tx means the
// repository opens (and owns) its own transaction; a non-nil tx joins the
// caller's transaction, whose boundary the caller owns. The handle is always
// passed explicitly, there is no process-wide connection state.
//
// Upsert methods key on the channel identity, never the internal id, and
// return the row re-fetched with its declared associations populated.

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*Customer, error)
	Create(ctx context.Context, tx *gorm.DB, customer *Customer) error
	Update(ctx context.Context, tx *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	// UpsertByEmail reconciles the given customer against the row with the
	// same email, creating it when absent.
	UpsertByEmail(ctx context.Context, tx *gorm.DB, customer *Customer) (*Customer, error)
}

// AddressRepository defines the interface for address persistence
type AddressRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Address, error)
	FindByChannelID(ctx context.Context, tx *gorm.DB, channelAddressID int) (*Address, error)
	ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]Address, error)
	Create(ctx context.Context, tx *gorm.DB, address *Address) error
	Update(ctx context.Context, tx *gorm.DB, address *Address) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpsertByChannelID(ctx context.Context, tx *gorm.DB, address *Address) (*Address, error)
}

// OrderRepository defines the interface for order header and channel-linkage
// persistence
type OrderRepository interface {
	// GetByID loads the order with its full aggregate: customer, both
	// addresses, channel linkage, comments, configurations with product,
	// brand and options.
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Order, error)
	GetByNumber(ctx context.Context, tx *gorm.DB, number string) (*Order, error)
	FindByChannelOrderID(ctx context.Context, tx *gorm.DB, channelOrderID int) (*Order, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]Order, error)
	Create(ctx context.Context, tx *gorm.DB, order *Order) error
	Update(ctx context.Context, tx *gorm.DB, order *Order) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpsertByNumber(ctx context.Context, tx *gorm.DB, order *Order) (*Order, error)

	// UpsertChannel reconciles the one-to-one channel linkage keyed by the
	// channel order id.
	UpsertChannel(ctx context.Context, tx *gorm.DB, link *OrderChannel) (*OrderChannel, error)
}

// CommentRepository defines the interface for order comment persistence
type CommentRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*OrderComment, error)
	ListByOrder(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]OrderComment, error)
	Create(ctx context.Context, tx *gorm.DB, comment *OrderComment) error
	Update(ctx context.Context, tx *gorm.DB, comment *OrderComment) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpsertByChannelID(ctx context.Context, tx *gorm.DB, comment *OrderComment) (*OrderComment, error)
}

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Brand, error)
	FindByName(ctx context.Context, tx *gorm.DB, name string) (*Brand, error)
	Create(ctx context.Context, tx *gorm.DB, brand *Brand) error
	Update(ctx context.Context, tx *gorm.DB, brand *Brand) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpsertByChannelID(ctx context.Context, tx *gorm.DB, brand *Brand) (*Brand, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, tx *gorm.DB, sku string) (*Product, error)
	Create(ctx context.Context, tx *gorm.DB, product *Product) error
	Update(ctx context.Context, tx *gorm.DB, product *Product) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpsertByChannelID(ctx context.Context, tx *gorm.DB, product *Product) (*Product, error)
}

// ConfigurationRepository defines the interface for line item and option
// persistence
type ConfigurationRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*ProductConfiguration, error)
	ListByOrder(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]ProductConfiguration, error)
	Create(ctx context.Context, tx *gorm.DB, cfg *ProductConfiguration) error
	Update(ctx context.Context, tx *gorm.DB, cfg *ProductConfiguration) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpsertByChannelID(ctx context.Context, tx *gorm.DB, cfg *ProductConfiguration) (*ProductConfiguration, error)

	// UpsertOption reconciles an option keyed by the (channel option id,
	// configuration id) pair.
	UpsertOption(ctx context.Context, tx *gorm.DB, option *ProductOption) (*ProductOption, error)
}

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Delivery, error)
	Create(ctx context.Context, tx *gorm.DB, delivery *Delivery) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	// BulkCreateItems persists the batch all-or-nothing. A uniqueness
	// conflict on (configuration, delivery) between two items of the same
	// batch merges quantities into one row; a conflict with a pre-existing
	// row fails the batch.
	BulkCreateItems(ctx context.Context, tx *gorm.DB, deliveryID uuid.UUID, items []DeliveryItem) ([]DeliveryItem, error)
}

// DeliveryMethodRepository defines the interface for delivery method persistence
type DeliveryMethodRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*DeliveryMethod, error)
	FindByName(ctx context.Context, tx *gorm.DB, name string) (*DeliveryMethod, error)
	Create(ctx context.Context, tx *gorm.DB, method *DeliveryMethod) error
	Update(ctx context.Context, tx *gorm.DB, method *DeliveryMethod) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}
