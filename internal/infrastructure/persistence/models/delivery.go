package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/shopspring/decimal"
)

// DeliveryMethodModel is the persistence model for the DeliveryMethod domain
// entity. The lead time range is stored in its encoded string form.
type DeliveryMethodModel struct {
	BaseModel
	Name     string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Carrier  string          `gorm:"type:varchar(100)"`
	Cost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LeadTime string          `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (DeliveryMethodModel) TableName() string {
	return "delivery_methods"
}

// ToDomain converts the persistence model to a domain DeliveryMethod entity.
func (m *DeliveryMethodModel) ToDomain() *commerce.DeliveryMethod {
	return &commerce.DeliveryMethod{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Carrier:    m.Carrier,
		Cost:       m.Cost,
		LeadTime:   m.LeadTime,
	}
}

// FromDomain populates the persistence model from a domain DeliveryMethod entity.
func (m *DeliveryMethodModel) FromDomain(d *commerce.DeliveryMethod) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.Name = d.Name
	m.Carrier = d.Carrier
	m.Cost = d.Cost
	m.LeadTime = d.LeadTime
}

// DeliveryMethodModelFromDomain creates a new persistence model from a domain
// DeliveryMethod entity.
func DeliveryMethodModelFromDomain(d *commerce.DeliveryMethod) *DeliveryMethodModel {
	m := &DeliveryMethodModel{}
	m.FromDomain(d)
	return m
}

// DeliveryModel is the persistence model for the Delivery domain entity.
type DeliveryModel struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShippedAt *time.Time `gorm:""`

	Order *OrderModel         `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Items []DeliveryItemModel `gorm:"foreignKey:DeliveryID"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts the persistence model to a domain Delivery entity.
func (m *DeliveryModel) ToDomain() *commerce.Delivery {
	d := &commerce.Delivery{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		ShippedAt:  m.ShippedAt,
	}
	if len(m.Items) > 0 {
		d.Items = make([]commerce.DeliveryItem, len(m.Items))
		for i, item := range m.Items {
			d.Items[i] = *item.ToDomain()
		}
	}
	return d
}

// FromDomain populates the persistence model from a domain Delivery entity.
func (m *DeliveryModel) FromDomain(d *commerce.Delivery) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.OrderID = d.OrderID
	m.ShippedAt = d.ShippedAt
}

// DeliveryModelFromDomain creates a new persistence model from a domain Delivery entity.
func DeliveryModelFromDomain(d *commerce.Delivery) *DeliveryModel {
	m := &DeliveryModel{}
	m.FromDomain(d)
	return m
}

// DeliveryItemModel is the persistence model for the DeliveryItem domain
// entity. The (configuration, delivery) pair is unique at the storage layer;
// bulk creation recovers from the violation by merging quantities.
type DeliveryItemModel struct {
	BaseModel
	Quantity        int       `gorm:"not null"`
	ConfigurationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_delivery_item_configuration_delivery,priority:1"`
	DeliveryID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_delivery_item_configuration_delivery,priority:2"`

	Configuration *ProductConfigurationModel `gorm:"foreignKey:ConfigurationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Delivery      *DeliveryModel             `gorm:"foreignKey:DeliveryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (DeliveryItemModel) TableName() string {
	return "delivery_items"
}

// ToDomain converts the persistence model to a domain DeliveryItem entity.
func (m *DeliveryItemModel) ToDomain() *commerce.DeliveryItem {
	return &commerce.DeliveryItem{
		BaseEntity:      m.BaseModel.ToDomain(),
		Quantity:        m.Quantity,
		ConfigurationID: m.ConfigurationID,
		DeliveryID:      m.DeliveryID,
	}
}

// FromDomain populates the persistence model from a domain DeliveryItem entity.
func (m *DeliveryItemModel) FromDomain(i *commerce.DeliveryItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.Quantity = i.Quantity
	m.ConfigurationID = i.ConfigurationID
	m.DeliveryID = i.DeliveryID
}

// DeliveryItemModelFromDomain creates a new persistence model from a domain
// DeliveryItem entity.
func DeliveryItemModelFromDomain(i *commerce.DeliveryItem) *DeliveryItemModel {
	m := &DeliveryItemModel{}
	m.FromDomain(i)
	return m
}
