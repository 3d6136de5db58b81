package commerce

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DeliveryMethod is a shipping option. Its lead time is a virtual field:
// callers see a min/max day range, storage sees one encoded string.
type DeliveryMethod struct {
	shared.BaseEntity
	Name     string
	Carrier  string
	Cost     decimal.Decimal
	LeadTime string
}

// NewDeliveryMethod creates a delivery method with required fields validated.
func NewDeliveryMethod(name, carrier string) (*DeliveryMethod, error) {
	m := &DeliveryMethod{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		Carrier:    carrier,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the delivery method's invariants.
func (m *DeliveryMethod) Validate() error {
	v := &shared.ValidationError{}
	if m.Name == "" {
		v.Add("name", shared.ErrCodeRequiredField, "name is required")
	}
	if m.Cost.IsNegative() {
		v.Add("cost", shared.ErrCodeInvalidRange, "cost cannot be negative")
	}
	return v.ErrOrNil()
}

// LeadTimeRange decodes the stored lead time.
func (m *DeliveryMethod) LeadTimeRange() LeadTime {
	return DecodeLeadTime(m.LeadTime)
}

// SetLeadTimeRange encodes the range onto the stored column.
func (m *DeliveryMethod) SetLeadTimeRange(t LeadTime) {
	m.LeadTime = EncodeLeadTime(t)
}

// Delivery is one shipment of an order, grouping the quantities shipped per
// line item.
type Delivery struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	ShippedAt *time.Time

	Items []DeliveryItem
}

// NewDelivery creates a delivery with required fields validated.
func NewDelivery(orderID uuid.UUID) (*Delivery, error) {
	d := &Delivery{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the delivery's invariants.
func (d *Delivery) Validate() error {
	v := &shared.ValidationError{}
	if d.OrderID == uuid.Nil {
		v.Add("orderId", shared.ErrCodeRequiredField, "order is required")
	}
	return v.ErrOrNil()
}

// DeliveryItem records how many units of one configuration a delivery
// carries. The (configuration, delivery) pair is unique; the storage layer
// enforces it and bulk creation recovers from it by merging quantities.
type DeliveryItem struct {
	shared.BaseEntity
	Quantity        int
	ConfigurationID uuid.UUID
	DeliveryID      uuid.UUID
}

// NewDeliveryItem creates a delivery item with required fields validated.
func NewDeliveryItem(deliveryID, configurationID uuid.UUID, quantity int) (*DeliveryItem, error) {
	i := &DeliveryItem{
		BaseEntity:      shared.NewBaseEntity(),
		Quantity:        quantity,
		ConfigurationID: configurationID,
		DeliveryID:      deliveryID,
	}
	if err := i.Validate(); err != nil {
		return nil, err
	}
	return i, nil
}

// Validate checks the delivery item's invariants.
func (i *DeliveryItem) Validate() error {
	v := &shared.ValidationError{}
	if i.Quantity <= 0 {
		v.Add("quantity", shared.ErrCodeInvalidRange, "quantity must be positive")
	}
	if i.ConfigurationID == uuid.Nil {
		v.Add("configurationId", shared.ErrCodeRequiredField, "configuration is required")
	}
	if i.DeliveryID == uuid.Nil {
		v.Add("deliveryId", shared.ErrCodeRequiredField, "delivery is required")
	}
	return v.ErrOrNil()
}
