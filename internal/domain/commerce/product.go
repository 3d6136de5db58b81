package commerce

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// Brand groups products by manufacturer. Deleting a brand leaves its
// products brandless, it never cascades.
type Brand struct {
	shared.BaseEntity
	Name string

	ChannelBrandID *int
}

// NewBrand creates a brand with required fields validated.
func NewBrand(name string) (*Brand, error) {
	b := &Brand{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the brand's invariants.
func (b *Brand) Validate() error {
	v := &shared.ValidationError{}
	if b.Name == "" {
		v.Add("name", shared.ErrCodeRequiredField, "name is required")
	}
	return v.ErrOrNil()
}

// ProductKind is the closed set of product types.
type ProductKind string

const (
	ProductKindPhysical ProductKind = "physical"
	ProductKindDigital  ProductKind = "digital"
	ProductKindService  ProductKind = "service"
)

// IsValid returns true if the kind is valid
func (k ProductKind) IsValid() bool {
	switch k {
	case ProductKindPhysical, ProductKindDigital, ProductKindService:
		return true
	default:
		return false
	}
}

// Product is a catalog entry. A product reconciled from the channel carries
// the channel's product id; SKU and channel id are each unique when present.
type Product struct {
	shared.BaseEntity
	Kind        ProductKind
	Name        string
	Description string
	SKU         *string

	ChannelProductID *int
	BrandID          *uuid.UUID

	Brand *Brand
}

// NewProduct creates a product with required fields validated.
func NewProduct(kind ProductKind, name string) (*Product, error) {
	p := &Product{
		BaseEntity: shared.NewBaseEntity(),
		Kind:       kind,
		Name:       strings.TrimSpace(name),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the product's invariants.
func (p *Product) Validate() error {
	v := &shared.ValidationError{}
	if !p.Kind.IsValid() {
		v.Add("kind", shared.ErrCodeInvalidEnum, "unknown product kind")
	}
	if p.Name == "" {
		v.Add("name", shared.ErrCodeRequiredField, "name is required")
	}
	if p.SKU != nil && strings.TrimSpace(*p.SKU) == "" {
		v.Add("sku", shared.ErrCodeInvalidFormat, "sku cannot be blank")
	}
	return v.ErrOrNil()
}
