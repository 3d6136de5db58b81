package commerce

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/shopspring/decimal"
)

// Read-model views. AssembleOrderView flattens the persisted aggregate into
// the shape API consumers read: addresses and comments inlined on the order,
// line items presented product-first with the order-specific data nested
// under a configuration key.

// CustomerView is the customer as presented on an order.
type CustomerView struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Company           string    `json:"company,omitempty"`
	ChannelCustomerID *int      `json:"channelCustomerId,omitempty"`
	IsGuest           bool      `json:"isGuest"`
}

// AddressView is an address with its virtual fields decoded.
type AddressView struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Street    []string  `json:"street"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zip       string    `json:"zip,omitempty"`
	Country   string    `json:"country,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Geo       *GeoView  `json:"geo,omitempty"`
}

// GeoView is the combined coordinate form.
type GeoView struct {
	Lat decimal.Decimal `json:"lat"`
	Lon decimal.Decimal `json:"lon"`
}

// ChannelView is the channel linkage as presented on an order.
type ChannelView struct {
	ChannelOrderID int    `json:"channelOrderId"`
	ChannelQuoteID *int   `json:"channelQuoteId,omitempty"`
	State          string `json:"state,omitempty"`
	Status         string `json:"status"`
}

// CommentView is a comment as presented on an order.
type CommentView struct {
	ID               uuid.UUID `json:"id"`
	Kind             string    `json:"kind"`
	Body             string    `json:"body"`
	StatusSnapshot   *string   `json:"statusSnapshot,omitempty"`
	ChannelCommentID *int      `json:"channelCommentId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// OptionView is a configuration option.
type OptionView struct {
	Label     string `json:"label"`
	Value     string `json:"value,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

// ConfigurationView is the order-specific slice of a line item.
type ConfigurationView struct {
	ID           uuid.UUID       `json:"id"`
	QtyOrdered   int             `json:"qtyOrdered"`
	QtyRefunded  int             `json:"qtyRefunded"`
	QtyShipped   int             `json:"qtyShipped"`
	QtyCancelled int             `json:"qtyCancelled"`
	QtyInvoiced  int             `json:"qtyInvoiced"`
	Price        decimal.Decimal `json:"price"`
	Tax          decimal.Decimal `json:"tax"`
	Discount     decimal.Decimal `json:"discount"`
	Options      []OptionView    `json:"options"`
}

// ItemView presents a line item product-first.
type ItemView struct {
	ProductID     uuid.UUID         `json:"productId"`
	Kind          string            `json:"kind"`
	Name          string            `json:"name"`
	SKU           *string           `json:"sku,omitempty"`
	Brand         *string           `json:"brand,omitempty"`
	Configuration ConfigurationView `json:"configuration"`
}

// OrderView is the full order read model.
type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	OrderedAt       time.Time       `json:"orderedAt"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	Customer        *CustomerView   `json:"customer,omitempty"`
	BillingAddress  *AddressView    `json:"billingAddress,omitempty"`
	ShippingAddress *AddressView    `json:"shippingAddress,omitempty"`
	Channel         *ChannelView    `json:"channel,omitempty"`
	Comments        []CommentView   `json:"comments"`
	Items           []ItemView      `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// AssembleOrderView builds the read model from a fully loaded order
// aggregate. Missing associations simply stay absent from the view; the
// assembler never reaches back to the database.
func AssembleOrderView(o *commerce.Order) *OrderView {
	view := &OrderView{
		ID:            o.ID,
		Number:        o.Number,
		OrderedAt:     o.OrderedAt,
		TaxRate:       o.TaxRate,
		ShippingCost:  o.ShippingCost,
		PaymentMethod: string(o.PaymentMethod),
		Comments:      make([]CommentView, 0, len(o.Comments)),
		Items:         make([]ItemView, 0, len(o.Configurations)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.Customer != nil {
		view.Customer = &CustomerView{
			ID:                o.Customer.ID,
			Name:              o.Customer.Name,
			Email:             o.Customer.Email,
			Phone:             o.Customer.Phone,
			Company:           o.Customer.Company,
			ChannelCustomerID: o.Customer.ChannelCustomerID,
			IsGuest:           o.Customer.IsGuest,
		}
	}
	view.BillingAddress = assembleAddressView(o.BillingAddress)
	view.ShippingAddress = assembleAddressView(o.ShippingAddress)
	if o.Channel != nil {
		view.Channel = &ChannelView{
			ChannelOrderID: o.Channel.ChannelOrderID,
			ChannelQuoteID: o.Channel.ChannelQuoteID,
			State:          o.Channel.State,
			Status:         string(o.Channel.Status),
		}
	}
	for i := range o.Comments {
		view.Comments = append(view.Comments, assembleCommentView(&o.Comments[i]))
	}
	for i := range o.Configurations {
		view.Items = append(view.Items, assembleItemView(&o.Configurations[i]))
	}
	return view
}

func assembleAddressView(a *commerce.Address) *AddressView {
	if a == nil {
		return nil
	}
	v := &AddressView{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Street:    a.StreetLines(),
		City:      a.City,
		State:     a.State,
		Zip:       a.Zip,
		Country:   a.Country,
		Phone:     a.Phone,
	}
	if g := a.Geo(); g != nil {
		v.Geo = &GeoView{Lat: g.Lat, Lon: g.Lon}
	}
	return v
}

func assembleCommentView(c *commerce.OrderComment) CommentView {
	v := CommentView{
		ID:               c.ID,
		Kind:             string(c.Kind),
		Body:             c.Body,
		ChannelCommentID: c.ChannelCommentID,
		CreatedAt:        c.CreatedAt,
	}
	if c.StatusSnapshot != nil {
		s := string(*c.StatusSnapshot)
		v.StatusSnapshot = &s
	}
	return v
}

func assembleItemView(cfg *commerce.ProductConfiguration) ItemView {
	item := ItemView{
		ProductID: cfg.ProductID,
		Configuration: ConfigurationView{
			ID:           cfg.ID,
			QtyOrdered:   cfg.QtyOrdered,
			QtyRefunded:  cfg.QtyRefunded,
			QtyShipped:   cfg.QtyShipped,
			QtyCancelled: cfg.QtyCancelled,
			QtyInvoiced:  cfg.QtyInvoiced,
			Price:        cfg.Price,
			Tax:          cfg.Tax,
			Discount:     cfg.Discount,
			Options:      make([]OptionView, 0, len(cfg.Options)),
		},
	}
	if cfg.Product != nil {
		item.Kind = string(cfg.Product.Kind)
		item.Name = cfg.Product.Name
		item.SKU = cfg.Product.SKU
		if cfg.Product.Brand != nil {
			name := cfg.Product.Brand.Name
			item.Brand = &name
		}
	}
	for _, opt := range cfg.Options {
		item.Configuration.Options = append(item.Configuration.Options, OptionView{
			Label:     opt.Label,
			Value:     opt.Value,
			SortOrder: opt.SortOrder,
		})
	}
	return item
}
