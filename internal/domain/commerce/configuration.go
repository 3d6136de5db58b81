package commerce

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductConfiguration is a line item: one product as ordered on one order,
// with quantity counters and pricing. A configuration reconciled from the
// channel carries the channel's line item id. It is cascade-deleted with
// either parent.
type ProductConfiguration struct {
	shared.BaseEntity
	QtyOrdered   int
	QtyRefunded  int
	QtyShipped   int
	QtyCancelled int
	QtyInvoiced  int
	Price        decimal.Decimal
	Tax          decimal.Decimal
	Discount     decimal.Decimal

	ChannelItemID *int
	ProductID     uuid.UUID
	OrderID       uuid.UUID

	Product *Product
	Options []ProductOption
}

// NewProductConfiguration creates a configuration with required fields validated.
func NewProductConfiguration(orderID, productID uuid.UUID, qty int, price decimal.Decimal) (*ProductConfiguration, error) {
	c := &ProductConfiguration{
		BaseEntity: shared.NewBaseEntity(),
		QtyOrdered: qty,
		Price:      price,
		ProductID:  productID,
		OrderID:    orderID,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration's invariants.
func (c *ProductConfiguration) Validate() error {
	v := &shared.ValidationError{}
	if c.QtyOrdered <= 0 {
		v.Add("qtyOrdered", shared.ErrCodeInvalidRange, "ordered quantity must be positive")
	}
	for field, qty := range map[string]int{
		"qtyRefunded":  c.QtyRefunded,
		"qtyShipped":   c.QtyShipped,
		"qtyCancelled": c.QtyCancelled,
		"qtyInvoiced":  c.QtyInvoiced,
	} {
		if qty < 0 {
			v.Add(field, shared.ErrCodeInvalidRange, "quantity counter cannot be negative")
		}
	}
	if c.Price.IsNegative() {
		v.Add("price", shared.ErrCodeInvalidRange, "price cannot be negative")
	}
	if c.ProductID == uuid.Nil {
		v.Add("productId", shared.ErrCodeRequiredField, "product is required")
	}
	if c.OrderID == uuid.Nil {
		v.Add("orderId", shared.ErrCodeRequiredField, "order is required")
	}
	return v.ErrOrNil()
}

// ProductOption is a label/value pair qualifying a configuration (size,
// colour, engraving text). At most one option of a given channel kind exists
// per configuration.
type ProductOption struct {
	shared.BaseEntity
	Label     string
	Value     string
	SortOrder int

	ChannelOptionID *int
	ConfigurationID uuid.UUID
}

// NewProductOption creates an option with required fields validated.
func NewProductOption(configurationID uuid.UUID, label, value string) (*ProductOption, error) {
	o := &ProductOption{
		BaseEntity:      shared.NewBaseEntity(),
		Label:           strings.TrimSpace(label),
		Value:           value,
		ConfigurationID: configurationID,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks the option's invariants.
func (o *ProductOption) Validate() error {
	v := &shared.ValidationError{}
	if o.Label == "" {
		v.Add("label", shared.ErrCodeRequiredField, "label is required")
	}
	if o.ConfigurationID == uuid.Nil {
		v.Add("configurationId", shared.ErrCodeRequiredField, "configuration is required")
	}
	return v.ErrOrNil()
}
