package commerce

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AddressKind discriminates customer-book addresses from the addresses frozen
// onto an order at checkout.
type AddressKind string

const (
	AddressKindCustomer AddressKind = "customer"
	AddressKindOrder    AddressKind = "order"
)

// IsValid returns true if the kind is valid
func (k AddressKind) IsValid() bool {
	switch k {
	case AddressKindCustomer, AddressKindOrder:
		return true
	default:
		return false
	}
}

// Address represents a postal address. Street lines and the coordinate pair
// are virtual fields: callers see StreetLines() and Geo(), storage sees
// street1/street2 and two nullable decimal columns.
type Address struct {
	shared.BaseEntity
	Kind      AddressKind
	FirstName string
	LastName  string
	Street1   string
	Street2   string
	City      string
	State     string
	Zip       string
	Country   string
	Phone     string

	Latitude  *decimal.Decimal
	Longitude *decimal.Decimal

	// Ownership links. A customer address belongs to a customer; an order
	// address belongs to an order and remembers the customer address it was
	// copied from, when there was one.
	CustomerID      *uuid.UUID
	OrderID         *uuid.UUID
	SourceAddressID *uuid.UUID

	// ChannelAddressID is the channel's identity for this address, unique per
	// address when present.
	ChannelAddressID *int
}

// NewAddress creates an address of the given kind with required fields validated.
func NewAddress(kind AddressKind, street1, city, country string) (*Address, error) {
	a := &Address{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Street1:    street1,
		City:       city,
		Country:    country,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the address's invariants.
func (a *Address) Validate() error {
	v := &shared.ValidationError{}
	if !a.Kind.IsValid() {
		v.Add("kind", shared.ErrCodeInvalidEnum, "kind must be customer or order")
	}
	if strings.TrimSpace(a.Street1) == "" {
		v.Add("street", shared.ErrCodeRequiredField, "at least one street line is required")
	}
	if (a.Latitude == nil) != (a.Longitude == nil) {
		v.Add("geo", shared.ErrCodeCrossField, "latitude and longitude must be set together or not at all")
	}
	return v.ErrOrNil()
}

// StreetLines returns the street as an ordered list of 1-2 lines.
func (a *Address) StreetLines() []string {
	return DecodeStreetLines(a.Street1, a.Street2)
}

// SetStreetLines writes the structured street list back onto the stored
// columns. A populated stored line survives an absent structured line.
func (a *Address) SetStreetLines(lines []string) {
	a.Street1, a.Street2 = EncodeStreetLines(lines, a.Street1, a.Street2)
}

// Geo returns the coordinate pair, or nil when the address has none.
func (a *Address) Geo() *GeoPoint {
	return DecodeGeoPoint(a.Latitude, a.Longitude)
}

// SetGeo writes the coordinate pair onto the stored columns. A nil point
// clears both columns.
func (a *Address) SetGeo(p *GeoPoint) {
	a.Latitude, a.Longitude = EncodeGeoPoint(p)
}

// HasGeo reports whether both coordinate columns are populated.
func (a *Address) HasGeo() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// geoSourceFields are the fields coordinates are derived from. An update that
// changes any of them on a geocoded address must deal with the coordinates
// explicitly; see the address update guard.
type geoSourceFields struct {
	Street1 string
	City    string
	State   string
	Zip     string
	Country string
}

func (a *Address) geoSource() geoSourceFields {
	return geoSourceFields{
		Street1: a.Street1,
		City:    a.City,
		State:   a.State,
		Zip:     a.Zip,
		Country: a.Country,
	}
}

// GeoSourceChanged reports whether other differs from a in any field that
// coordinates are derived from.
func (a *Address) GeoSourceChanged(other *Address) bool {
	return a.geoSource() != other.geoSource()
}
