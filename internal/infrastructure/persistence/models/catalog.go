package models

import (
	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/shopspring/decimal"
)

// BrandModel is the persistence model for the Brand domain entity.
type BrandModel struct {
	BaseModel
	Name string `gorm:"type:varchar(200);not null;uniqueIndex"`

	ChannelBrandID *int `gorm:"uniqueIndex"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the persistence model to a domain Brand entity.
func (m *BrandModel) ToDomain() *commerce.Brand {
	return &commerce.Brand{
		BaseEntity:     m.BaseModel.ToDomain(),
		Name:           m.Name,
		ChannelBrandID: m.ChannelBrandID,
	}
}

// FromDomain populates the persistence model from a domain Brand entity.
func (m *BrandModel) FromDomain(b *commerce.Brand) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
	m.ChannelBrandID = b.ChannelBrandID
}

// BrandModelFromDomain creates a new persistence model from a domain Brand entity.
func BrandModelFromDomain(b *commerce.Brand) *BrandModel {
	m := &BrandModel{}
	m.FromDomain(b)
	return m
}

// ProductModel is the persistence model for the Product domain entity.
// Deleting a brand leaves the product with a null brand reference.
type ProductModel struct {
	BaseModel
	Kind        commerce.ProductKind `gorm:"type:varchar(20);not null"`
	Name        string               `gorm:"type:varchar(200);not null"`
	Description string               `gorm:"type:text"`
	SKU         *string              `gorm:"type:varchar(100);uniqueIndex"`

	ChannelProductID *int       `gorm:"uniqueIndex"`
	BrandID          *uuid.UUID `gorm:"type:uuid;index"`

	Brand *BrandModel `gorm:"foreignKey:BrandID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *commerce.Product {
	p := &commerce.Product{
		BaseEntity:       m.BaseModel.ToDomain(),
		Kind:             m.Kind,
		Name:             m.Name,
		Description:      m.Description,
		SKU:              m.SKU,
		ChannelProductID: m.ChannelProductID,
		BrandID:          m.BrandID,
	}
	if m.Brand != nil {
		p.Brand = m.Brand.ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *commerce.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Kind = p.Kind
	m.Name = p.Name
	m.Description = p.Description
	m.SKU = p.SKU
	m.ChannelProductID = p.ChannelProductID
	m.BrandID = p.BrandID
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *commerce.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductConfigurationModel is the persistence model for the line item. It is
// cascade-deleted with either its product or its order.
type ProductConfigurationModel struct {
	BaseModel
	QtyOrdered   int             `gorm:"not null"`
	QtyRefunded  int             `gorm:"not null;default:0"`
	QtyShipped   int             `gorm:"not null;default:0"`
	QtyCancelled int             `gorm:"not null;default:0"`
	QtyInvoiced  int             `gorm:"not null;default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Tax          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	ChannelItemID *int      `gorm:"uniqueIndex"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`

	Product *ProductModel        `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Order   *OrderModel          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Options []ProductOptionModel `gorm:"foreignKey:ConfigurationID"`
}

// TableName returns the table name for GORM
func (ProductConfigurationModel) TableName() string {
	return "product_configurations"
}

// ToDomain converts the persistence model to a domain ProductConfiguration entity.
func (m *ProductConfigurationModel) ToDomain() *commerce.ProductConfiguration {
	c := &commerce.ProductConfiguration{
		BaseEntity:    m.BaseModel.ToDomain(),
		QtyOrdered:    m.QtyOrdered,
		QtyRefunded:   m.QtyRefunded,
		QtyShipped:    m.QtyShipped,
		QtyCancelled:  m.QtyCancelled,
		QtyInvoiced:   m.QtyInvoiced,
		Price:         m.Price,
		Tax:           m.Tax,
		Discount:      m.Discount,
		ChannelItemID: m.ChannelItemID,
		ProductID:     m.ProductID,
		OrderID:       m.OrderID,
	}
	if m.Product != nil {
		c.Product = m.Product.ToDomain()
	}
	if len(m.Options) > 0 {
		c.Options = make([]commerce.ProductOption, len(m.Options))
		for i, o := range m.Options {
			c.Options[i] = *o.ToDomain()
		}
	}
	return c
}

// FromDomain populates the persistence model from a domain ProductConfiguration entity.
func (m *ProductConfigurationModel) FromDomain(c *commerce.ProductConfiguration) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.QtyOrdered = c.QtyOrdered
	m.QtyRefunded = c.QtyRefunded
	m.QtyShipped = c.QtyShipped
	m.QtyCancelled = c.QtyCancelled
	m.QtyInvoiced = c.QtyInvoiced
	m.Price = c.Price
	m.Tax = c.Tax
	m.Discount = c.Discount
	m.ChannelItemID = c.ChannelItemID
	m.ProductID = c.ProductID
	m.OrderID = c.OrderID
}

// ProductConfigurationModelFromDomain creates a new persistence model from a
// domain ProductConfiguration entity.
func ProductConfigurationModelFromDomain(c *commerce.ProductConfiguration) *ProductConfigurationModel {
	m := &ProductConfigurationModel{}
	m.FromDomain(c)
	return m
}

// ProductOptionModel is the persistence model for the ProductOption domain
// entity. The (channel option id, configuration id) pair is unique: at most
// one option of a given channel kind per configuration.
type ProductOptionModel struct {
	BaseModel
	Label     string `gorm:"type:varchar(200);not null"`
	Value     string `gorm:"type:text"`
	SortOrder int    `gorm:"not null;default:0"`

	ChannelOptionID *int      `gorm:"uniqueIndex:idx_option_channel_configuration,priority:1"`
	ConfigurationID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_option_channel_configuration,priority:2"`

	Configuration *ProductConfigurationModel `gorm:"foreignKey:ConfigurationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductOptionModel) TableName() string {
	return "product_options"
}

// ToDomain converts the persistence model to a domain ProductOption entity.
func (m *ProductOptionModel) ToDomain() *commerce.ProductOption {
	return &commerce.ProductOption{
		BaseEntity:      m.BaseModel.ToDomain(),
		Label:           m.Label,
		Value:           m.Value,
		SortOrder:       m.SortOrder,
		ChannelOptionID: m.ChannelOptionID,
		ConfigurationID: m.ConfigurationID,
	}
}

// FromDomain populates the persistence model from a domain ProductOption entity.
func (m *ProductOptionModel) FromDomain(o *commerce.ProductOption) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Label = o.Label
	m.Value = o.Value
	m.SortOrder = o.SortOrder
	m.ChannelOptionID = o.ChannelOptionID
	m.ConfigurationID = o.ConfigurationID
}

// ProductOptionModelFromDomain creates a new persistence model from a domain
// ProductOption entity.
func ProductOptionModelFromDomain(o *commerce.ProductOption) *ProductOptionModel {
	m := &ProductOptionModel{}
	m.FromDomain(o)
	return m
}
