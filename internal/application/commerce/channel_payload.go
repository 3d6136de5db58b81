package commerce

import (
	"fmt"
	"strings"
	"time"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ChannelOrderPayload is the whole-order snapshot the sales channel delivers.
// It is validated in one pass before any database work starts; reconciliation
// never begins on a payload with a known defect.
type ChannelOrderPayload struct {
	ChannelOrderID int                     `json:"id" validate:"required,gt=0"`
	QuoteID        *int                    `json:"quoteId" validate:"omitempty,gt=0"`
	Number         string                  `json:"number" validate:"max=50"`
	State          string                  `json:"state" validate:"max=50"`
	Status         string                  `json:"status" validate:"max=50"`
	OrderedAt      time.Time               `json:"orderedAt"`
	TaxRate        decimal.Decimal         `json:"taxRate"`
	ShippingCost   decimal.Decimal         `json:"shippingCost"`
	PaymentMethod  string                  `json:"paymentMethod" validate:"omitempty,oneof=card paypal invoice channel manual financed"`
	DeliveryMethod string                  `json:"deliveryMethod" validate:"max=200"`
	Customer       ChannelCustomerPayload  `json:"customer" validate:"required"`
	BillingAddress *ChannelAddressPayload  `json:"billingAddress" validate:"omitempty"`
	ShippingAddr   *ChannelAddressPayload  `json:"shippingAddress" validate:"omitempty"`
	Items          []ChannelItemPayload    `json:"items" validate:"required,min=1,dive"`
	Comments       []ChannelCommentPayload `json:"comments" validate:"omitempty,dive"`
}

func (p *ChannelOrderPayload) validateRules(v *shared.ValidationError) {
	p.Customer.validateRules(v)
	if p.BillingAddress != nil {
		p.BillingAddress.validateRules(v, "billingAddress")
	}
	if p.ShippingAddr != nil {
		p.ShippingAddr.validateRules(v, "shippingAddress")
	}
	if p.TaxRate.IsNegative() {
		v.Add("taxRate", shared.ErrCodeInvalidRange, "tax rate cannot be negative")
	}
	if p.ShippingCost.IsNegative() {
		v.Add("shippingCost", shared.ErrCodeInvalidRange, "shipping cost cannot be negative")
	}
	for i, it := range p.Items {
		if it.Price.IsNegative() {
			v.Add(fmt.Sprintf("items[%d].price", i), shared.ErrCodeInvalidRange, "price cannot be negative")
		}
		if it.Discount.IsNegative() {
			v.Add(fmt.Sprintf("items[%d].discount", i), shared.ErrCodeInvalidRange, "discount cannot be negative")
		}
	}
}

// OrderNumber returns the order number to reconcile under. When the channel
// sends no number the channel order id stands in, prefixed so the two spaces
// cannot collide.
func (p *ChannelOrderPayload) OrderNumber() string {
	if n := strings.TrimSpace(p.Number); n != "" {
		return n
	}
	return channelOrderNumber(p.ChannelOrderID)
}

// ChannelCustomerPayload is the customer block of a channel order.
type ChannelCustomerPayload struct {
	ID      *int   `json:"id" validate:"omitempty,gt=0"`
	GroupID *int   `json:"groupId" validate:"omitempty,gt=0"`
	Guest   bool   `json:"guest"`
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Company string `json:"company" validate:"max=200"`
}

func (p *ChannelCustomerPayload) validateRules(v *shared.ValidationError) {
	if p.Guest && p.ID != nil {
		v.Add("customer.id", shared.ErrCodeCrossField, "guest checkout must not carry a channel customer id")
	}
	if !p.Guest && p.ID == nil {
		v.Add("customer.id", shared.ErrCodeCrossField, "non-guest checkout requires a channel customer id")
	}
}

// ChannelAddressPayload is an address block of a channel order.
type ChannelAddressPayload struct {
	ID        *int             `json:"id" validate:"omitempty,gt=0"`
	FirstName string           `json:"firstName" validate:"max=100"`
	LastName  string           `json:"lastName" validate:"max=100"`
	Street    []string         `json:"street" validate:"required,min=1,max=2"`
	City      string           `json:"city" validate:"max=100"`
	State     string           `json:"state" validate:"max=100"`
	Zip       string           `json:"zip" validate:"max=20"`
	Country   string           `json:"country" validate:"max=100"`
	Phone     string           `json:"phone" validate:"max=50"`
	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`
}

func (p *ChannelAddressPayload) validateRules(v *shared.ValidationError, prefix string) {
	if (p.Latitude == nil) != (p.Longitude == nil) {
		v.Add(prefix+".latitude", shared.ErrCodeCrossField, "latitude and longitude must be provided together")
	}
}

// ChannelItemPayload is one line item of a channel order.
type ChannelItemPayload struct {
	ID        *int                   `json:"id" validate:"omitempty,gt=0"`
	ProductID *int                   `json:"productId" validate:"omitempty,gt=0"`
	SKU       *string                `json:"sku" validate:"omitempty,min=1,max=100"`
	Name      string                 `json:"name" validate:"required,max=200"`
	Kind      string                 `json:"kind" validate:"omitempty,oneof=physical digital service"`
	Brand     *ChannelBrandPayload   `json:"brand" validate:"omitempty"`
	Qty       int                    `json:"qty" validate:"required,gt=0"`
	Price     decimal.Decimal        `json:"price"`
	Tax       decimal.Decimal        `json:"tax"`
	Discount  decimal.Decimal        `json:"discount"`
	Options   []ChannelOptionPayload `json:"options" validate:"omitempty,dive"`
}

// ChannelBrandPayload is the brand block of a channel line item.
type ChannelBrandPayload struct {
	ID   *int   `json:"id" validate:"omitempty,gt=0"`
	Name string `json:"name" validate:"required,max=200"`
}

// ChannelOptionPayload is one option of a channel line item.
type ChannelOptionPayload struct {
	ID        *int   `json:"id" validate:"omitempty,gt=0"`
	Label     string `json:"label" validate:"required,max=200"`
	Value     string `json:"value"`
	SortOrder int    `json:"sortOrder" validate:"gte=0"`
}

// ChannelCommentPayload is one comment of a channel order.
type ChannelCommentPayload struct {
	ID       *int   `json:"id" validate:"required,gt=0"`
	ParentID *int   `json:"parentId" validate:"omitempty,gt=0"`
	Body     string `json:"body" validate:"required"`
	Status   string `json:"status" validate:"max=50"`
}
