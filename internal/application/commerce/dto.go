package commerce

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Inputs accept the combined coordinate form as an object and the split form
// as two separate fields. Cross-field rules keep the two forms from fighting:
// a caller sends one or the other, and the split form is all-or-nothing.

// GeoInput is the combined coordinate form.
type GeoInput struct {
	Lat decimal.Decimal `json:"lat"`
	Lon decimal.Decimal `json:"lon"`
}

// OptionalGeo distinguishes an absent coordinate field from an explicit null.
// Absent leaves stored coordinates untouched; null clears both columns.
type OptionalGeo struct {
	Set   bool      `json:"-" validate:"-"`
	Value *GeoInput `json:"-" validate:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalGeo) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var g GeoInput
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	o.Value = &g
	return nil
}

// CreateCustomerInput carries a customer creation request.
type CreateCustomerInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Company string `json:"company" validate:"max=200"`
}

// UpdateCustomerInput carries a partial customer update. Nil fields are left
// untouched.
type UpdateCustomerInput struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Company *string `json:"company" validate:"omitempty,max=200"`
}

// CreateAddressInput carries an address creation request. Street is the
// structured form, an ordered list of one or two lines.
type CreateAddressInput struct {
	Kind       string     `json:"kind" validate:"required,oneof=customer order"`
	CustomerID *uuid.UUID `json:"customerId"`
	FirstName  string     `json:"firstName" validate:"max=100"`
	LastName   string     `json:"lastName" validate:"max=100"`
	Street     []string   `json:"street" validate:"required,min=1,max=2"`
	City       string     `json:"city" validate:"max=100"`
	State      string     `json:"state" validate:"max=100"`
	Zip        string     `json:"zip" validate:"max=20"`
	Country    string     `json:"country" validate:"max=100"`
	Phone      string     `json:"phone" validate:"max=50"`

	Geo       *GeoInput        `json:"geo"`
	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`
}

func (in *CreateAddressInput) validateRules(v *shared.ValidationError) {
	checkGeoForms(v, in.Geo, in.Latitude, in.Longitude)
	if commerce.AddressKind(in.Kind) == commerce.AddressKindCustomer && in.CustomerID == nil {
		v.Add("customerId", shared.ErrCodeRequiredField, "customer is required for a customer address")
	}
}

// UpdateAddressInput carries a partial address update. Nil fields are left
// untouched; the geo field distinguishes absent from explicit null.
type UpdateAddressInput struct {
	FirstName *string  `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string  `json:"lastName" validate:"omitempty,max=100"`
	Street    []string `json:"street" validate:"omitempty,min=1,max=2"`
	City      *string  `json:"city" validate:"omitempty,max=100"`
	State     *string  `json:"state" validate:"omitempty,max=100"`
	Zip       *string  `json:"zip" validate:"omitempty,max=20"`
	Country   *string  `json:"country" validate:"omitempty,max=100"`
	Phone     *string  `json:"phone" validate:"omitempty,max=50"`

	Geo       OptionalGeo      `json:"geo"`
	Latitude  *decimal.Decimal `json:"latitude"`
	Longitude *decimal.Decimal `json:"longitude"`
}

func (in *UpdateAddressInput) validateRules(v *shared.ValidationError) {
	var combined *GeoInput
	if in.Geo.Set {
		combined = in.Geo.Value
		if combined == nil && (in.Latitude != nil || in.Longitude != nil) {
			v.Add("geo", shared.ErrCodeCrossField, "cannot clear geo and set coordinates in the same request")
			return
		}
	}
	checkGeoForms(v, combined, in.Latitude, in.Longitude)
}

// touchesGeoSource reports whether the update writes any field coordinates
// are derived from.
func (in *UpdateAddressInput) touchesGeoSource() bool {
	return len(in.Street) > 0 || in.City != nil || in.State != nil ||
		in.Zip != nil || in.Country != nil
}

// providesGeo reports whether the update explicitly deals with coordinates,
// either by setting a new pair or by clearing them.
func (in *UpdateAddressInput) providesGeo() bool {
	return in.Geo.Set || (in.Latitude != nil && in.Longitude != nil)
}

func checkGeoForms(v *shared.ValidationError, combined *GeoInput, lat, lon *decimal.Decimal) {
	if (lat == nil) != (lon == nil) {
		v.Add("latitude", shared.ErrCodeCrossField, "latitude and longitude must be provided together")
	}
	if combined != nil && (lat != nil || lon != nil) {
		v.Add("geo", shared.ErrCodeCrossField, "use either the combined geo form or the split coordinate fields, not both")
	}
}

// CreateOrderInput carries a manual order creation request.
type CreateOrderInput struct {
	Number           string          `json:"number" validate:"required,max=50"`
	CustomerID       uuid.UUID       `json:"customerId" validate:"required"`
	OrderedAt        time.Time       `json:"orderedAt"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	ShippingCost     decimal.Decimal `json:"shippingCost"`
	PaymentMethod    string          `json:"paymentMethod" validate:"omitempty,oneof=card paypal invoice channel manual financed"`
	DeliveryMethodID *uuid.UUID      `json:"deliveryMethodId"`
}

// CreateCommentInput carries an order comment creation request. Channel
// comments only enter through reconciliation, so the API accepts the other
// kinds.
type CreateCommentInput struct {
	Kind string `json:"kind" validate:"required,oneof=note status_change"`
	Body string `json:"body" validate:"required"`
}

// CreateBrandInput carries a brand creation request.
type CreateBrandInput struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateProductInput carries a product creation request.
type CreateProductInput struct {
	Kind        string     `json:"kind" validate:"required,oneof=physical digital service"`
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description"`
	SKU         *string    `json:"sku" validate:"omitempty,min=1,max=100"`
	BrandID     *uuid.UUID `json:"brandId"`
}

// LeadTimeInput is the structured lead time range.
type LeadTimeInput struct {
	MinDays int `json:"min" validate:"gte=0"`
	MaxDays int `json:"max" validate:"gte=0"`
}

// CreateDeliveryMethodInput carries a delivery method creation request.
type CreateDeliveryMethodInput struct {
	Name     string          `json:"name" validate:"required,max=200"`
	Carrier  string          `json:"carrier" validate:"max=200"`
	Cost     decimal.Decimal `json:"cost"`
	LeadTime *LeadTimeInput  `json:"leadTime"`
}

func (in *CreateDeliveryMethodInput) validateRules(v *shared.ValidationError) {
	if in.Cost.IsNegative() {
		v.Add("cost", shared.ErrCodeInvalidRange, "cost cannot be negative")
	}
	if in.LeadTime != nil && in.LeadTime.MaxDays < in.LeadTime.MinDays {
		v.Add("leadTime", shared.ErrCodeCrossField, "lead time max must not be below min")
	}
}

// UpdateDeliveryMethodInput carries a partial delivery method update.
type UpdateDeliveryMethodInput struct {
	Name     *string          `json:"name" validate:"omitempty,max=200"`
	Carrier  *string          `json:"carrier" validate:"omitempty,max=200"`
	Cost     *decimal.Decimal `json:"cost"`
	LeadTime *LeadTimeInput   `json:"leadTime"`
}

func (in *UpdateDeliveryMethodInput) validateRules(v *shared.ValidationError) {
	if in.Cost != nil && in.Cost.IsNegative() {
		v.Add("cost", shared.ErrCodeInvalidRange, "cost cannot be negative")
	}
	if in.LeadTime != nil && in.LeadTime.MaxDays < in.LeadTime.MinDays {
		v.Add("leadTime", shared.ErrCodeCrossField, "lead time max must not be below min")
	}
}

// DeliveryItemInput is one line of a delivery creation request.
type DeliveryItemInput struct {
	ConfigurationID uuid.UUID `json:"configurationId" validate:"required"`
	Quantity        int       `json:"quantity" validate:"required,gt=0"`
}

// CreateDeliveryInput carries a delivery creation request with its items.
type CreateDeliveryInput struct {
	OrderID   uuid.UUID           `json:"orderId" validate:"required"`
	ShippedAt *time.Time          `json:"shippedAt"`
	Items     []DeliveryItemInput `json:"items" validate:"required,min=1,dive"`
}
