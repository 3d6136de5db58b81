package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	Number        string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderedAt     time.Time              `gorm:"not null;index"`
	TaxRate       decimal.Decimal        `gorm:"type:decimal(8,5);not null;default:0"`
	ShippingCost  decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentMethod commerce.PaymentMethod `gorm:"type:varchar(20)"`

	CustomerID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliveryMethodID  *uuid.UUID `gorm:"type:uuid"`
	BillingAddressID  *uuid.UUID `gorm:"type:uuid"`
	ShippingAddressID *uuid.UUID `gorm:"type:uuid"`

	Customer        *CustomerModel              `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	DeliveryMethod  *DeliveryMethodModel        `gorm:"foreignKey:DeliveryMethodID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	BillingAddress  *AddressModel               `gorm:"foreignKey:BillingAddressID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	ShippingAddress *AddressModel               `gorm:"foreignKey:ShippingAddressID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Channel         *OrderChannelModel          `gorm:"foreignKey:OrderID"`
	Comments        []OrderCommentModel         `gorm:"foreignKey:OrderID"`
	Configurations  []ProductConfigurationModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity,
// including whatever associations were preloaded.
func (m *OrderModel) ToDomain() *commerce.Order {
	o := &commerce.Order{
		BaseEntity:        m.BaseModel.ToDomain(),
		Number:            m.Number,
		OrderedAt:         m.OrderedAt,
		TaxRate:           m.TaxRate,
		ShippingCost:      m.ShippingCost,
		PaymentMethod:     m.PaymentMethod,
		CustomerID:        m.CustomerID,
		DeliveryMethodID:  m.DeliveryMethodID,
		BillingAddressID:  m.BillingAddressID,
		ShippingAddressID: m.ShippingAddressID,
	}
	if m.Customer != nil {
		o.Customer = m.Customer.ToDomain()
	}
	if m.BillingAddress != nil {
		o.BillingAddress = m.BillingAddress.ToDomain()
	}
	if m.ShippingAddress != nil {
		o.ShippingAddress = m.ShippingAddress.ToDomain()
	}
	if m.Channel != nil {
		o.Channel = m.Channel.ToDomain()
	}
	if len(m.Comments) > 0 {
		o.Comments = make([]commerce.OrderComment, len(m.Comments))
		for i, c := range m.Comments {
			o.Comments[i] = *c.ToDomain()
		}
	}
	if len(m.Configurations) > 0 {
		o.Configurations = make([]commerce.ProductConfiguration, len(m.Configurations))
		for i, c := range m.Configurations {
			o.Configurations[i] = *c.ToDomain()
		}
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *commerce.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Number = o.Number
	m.OrderedAt = o.OrderedAt
	m.TaxRate = o.TaxRate
	m.ShippingCost = o.ShippingCost
	m.PaymentMethod = o.PaymentMethod
	m.CustomerID = o.CustomerID
	m.DeliveryMethodID = o.DeliveryMethodID
	m.BillingAddressID = o.BillingAddressID
	m.ShippingAddressID = o.ShippingAddressID
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *commerce.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderChannelModel is the persistence model for the channel linkage. The
// channel order id is the primary key; the row dies with its order.
type OrderChannelModel struct {
	ChannelOrderID int                         `gorm:"primaryKey;autoIncrement:false"`
	ChannelQuoteID *int                        `gorm:""`
	State          string                      `gorm:"type:varchar(50)"`
	Status         commerce.ChannelOrderStatus `gorm:"type:varchar(30);not null;default:'unknown'"`
	OrderID        uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt      time.Time                   `gorm:"not null"`
	UpdatedAt      time.Time                   `gorm:"not null"`

	Order *OrderModel `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderChannelModel) TableName() string {
	return "order_channels"
}

// ToDomain converts the persistence model to a domain OrderChannel entity.
func (m *OrderChannelModel) ToDomain() *commerce.OrderChannel {
	return &commerce.OrderChannel{
		ChannelOrderID: m.ChannelOrderID,
		ChannelQuoteID: m.ChannelQuoteID,
		State:          m.State,
		Status:         m.Status,
		OrderID:        m.OrderID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderChannel entity.
func (m *OrderChannelModel) FromDomain(c *commerce.OrderChannel) {
	m.ChannelOrderID = c.ChannelOrderID
	m.ChannelQuoteID = c.ChannelQuoteID
	m.State = c.State
	m.Status = c.Status
	m.OrderID = c.OrderID
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// OrderChannelModelFromDomain creates a new persistence model from a domain
// OrderChannel entity.
func OrderChannelModelFromDomain(c *commerce.OrderChannel) *OrderChannelModel {
	m := &OrderChannelModel{}
	m.FromDomain(c)
	return m
}

// OrderCommentModel is the persistence model for the OrderComment domain entity.
type OrderCommentModel struct {
	BaseModel
	Body    string               `gorm:"type:text;not null"`
	Kind    commerce.CommentKind `gorm:"type:varchar(20);not null"`
	OrderID uuid.UUID            `gorm:"type:uuid;not null;index"`

	ChannelCommentID *int                         `gorm:"uniqueIndex"`
	ChannelParentID  *int                         `gorm:""`
	StatusSnapshot   *commerce.ChannelOrderStatus `gorm:"type:varchar(30)"`

	Order *OrderModel `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderCommentModel) TableName() string {
	return "order_comments"
}

// ToDomain converts the persistence model to a domain OrderComment entity.
func (m *OrderCommentModel) ToDomain() *commerce.OrderComment {
	return &commerce.OrderComment{
		BaseEntity:       m.BaseModel.ToDomain(),
		Body:             m.Body,
		Kind:             m.Kind,
		OrderID:          m.OrderID,
		ChannelCommentID: m.ChannelCommentID,
		ChannelParentID:  m.ChannelParentID,
		StatusSnapshot:   m.StatusSnapshot,
	}
}

// FromDomain populates the persistence model from a domain OrderComment entity.
func (m *OrderCommentModel) FromDomain(c *commerce.OrderComment) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Body = c.Body
	m.Kind = c.Kind
	m.OrderID = c.OrderID
	m.ChannelCommentID = c.ChannelCommentID
	m.ChannelParentID = c.ChannelParentID
	m.StatusSnapshot = c.StatusSnapshot
}

// OrderCommentModelFromDomain creates a new persistence model from a domain
// OrderComment entity.
func OrderCommentModelFromDomain(c *commerce.OrderComment) *OrderCommentModel {
	m := &OrderCommentModel{}
	m.FromDomain(c)
	return m
}
