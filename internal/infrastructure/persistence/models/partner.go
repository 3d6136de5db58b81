package models

import (
	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone   string `gorm:"type:varchar(50)"`
	Company string `gorm:"type:varchar(200)"`

	ChannelGroupID    *int `gorm:"index"`
	ChannelCustomerID *int `gorm:"uniqueIndex"`
	IsGuest           bool `gorm:"not null;default:false"`

	Addresses []AddressModel `gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *commerce.Customer {
	c := &commerce.Customer{
		BaseEntity:        m.BaseModel.ToDomain(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Company:           m.Company,
		ChannelGroupID:    m.ChannelGroupID,
		ChannelCustomerID: m.ChannelCustomerID,
		IsGuest:           m.IsGuest,
	}
	if len(m.Addresses) > 0 {
		c.Addresses = make([]commerce.Address, len(m.Addresses))
		for i, a := range m.Addresses {
			c.Addresses[i] = *a.ToDomain()
		}
	}
	return c
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *commerce.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Company = c.Company
	m.ChannelGroupID = c.ChannelGroupID
	m.ChannelCustomerID = c.ChannelCustomerID
	m.IsGuest = c.IsGuest
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *commerce.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// AddressModel is the persistence model for the Address domain entity.
// Street lines and the coordinate pair are stored flat; the domain entity
// exposes them through the virtual field codecs.
type AddressModel struct {
	BaseModel
	Kind      commerce.AddressKind `gorm:"type:varchar(20);not null;index"`
	FirstName string               `gorm:"type:varchar(100)"`
	LastName  string               `gorm:"type:varchar(100)"`
	Street1   string               `gorm:"type:varchar(200);not null"`
	Street2   string               `gorm:"type:varchar(200)"`
	City      string               `gorm:"type:varchar(100)"`
	State     string               `gorm:"type:varchar(100)"`
	Zip       string               `gorm:"type:varchar(20)"`
	Country   string               `gorm:"type:varchar(100)"`
	Phone     string               `gorm:"type:varchar(50)"`

	Latitude  *decimal.Decimal `gorm:"type:decimal(9,6)"`
	Longitude *decimal.Decimal `gorm:"type:decimal(9,6)"`

	CustomerID      *uuid.UUID `gorm:"type:uuid;index"`
	OrderID         *uuid.UUID `gorm:"type:uuid;index"`
	SourceAddressID *uuid.UUID `gorm:"type:uuid"`

	ChannelAddressID *int `gorm:"uniqueIndex"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Order    *OrderModel    `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *commerce.Address {
	return &commerce.Address{
		BaseEntity:       m.BaseModel.ToDomain(),
		Kind:             m.Kind,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Street1:          m.Street1,
		Street2:          m.Street2,
		City:             m.City,
		State:            m.State,
		Zip:              m.Zip,
		Country:          m.Country,
		Phone:            m.Phone,
		Latitude:         m.Latitude,
		Longitude:        m.Longitude,
		CustomerID:       m.CustomerID,
		OrderID:          m.OrderID,
		SourceAddressID:  m.SourceAddressID,
		ChannelAddressID: m.ChannelAddressID,
	}
}

// FromDomain populates the persistence model from a domain Address entity.
func (m *AddressModel) FromDomain(a *commerce.Address) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Kind = a.Kind
	m.FirstName = a.FirstName
	m.LastName = a.LastName
	m.Street1 = a.Street1
	m.Street2 = a.Street2
	m.City = a.City
	m.State = a.State
	m.Zip = a.Zip
	m.Country = a.Country
	m.Phone = a.Phone
	m.Latitude = a.Latitude
	m.Longitude = a.Longitude
	m.CustomerID = a.CustomerID
	m.OrderID = a.OrderID
	m.SourceAddressID = a.SourceAddressID
	m.ChannelAddressID = a.ChannelAddressID
}

// AddressModelFromDomain creates a new persistence model from a domain Address entity.
func AddressModelFromDomain(a *commerce.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}
