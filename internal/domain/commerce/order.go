package commerce

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the closed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodPaypal   PaymentMethod = "paypal"
	PaymentMethodInvoice  PaymentMethod = "invoice"
	PaymentMethodChannel  PaymentMethod = "channel"
	PaymentMethodManual   PaymentMethod = "manual"
	PaymentMethodFinanced PaymentMethod = "financed"
)

// IsValid returns true if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodInvoice,
		PaymentMethodChannel, PaymentMethodManual, PaymentMethodFinanced:
		return true
	default:
		return false
	}
}

// Order is the order header. It is the aggregate root the reconciliation
// engine converges channel payloads onto.
type Order struct {
	shared.BaseEntity
	Number        string
	OrderedAt     time.Time
	TaxRate       decimal.Decimal
	ShippingCost  decimal.Decimal
	PaymentMethod PaymentMethod

	CustomerID        uuid.UUID
	DeliveryMethodID  *uuid.UUID
	BillingAddressID  *uuid.UUID
	ShippingAddressID *uuid.UUID

	Customer        *Customer
	BillingAddress  *Address
	ShippingAddress *Address
	Channel         *OrderChannel
	Comments        []OrderComment
	Configurations  []ProductConfiguration
}

// NewOrder creates an order with required fields validated.
func NewOrder(number string, customerID uuid.UUID, orderedAt time.Time) (*Order, error) {
	o := &Order{
		BaseEntity: shared.NewBaseEntity(),
		Number:     strings.TrimSpace(number),
		CustomerID: customerID,
		OrderedAt:  orderedAt,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks the order's invariants.
func (o *Order) Validate() error {
	v := &shared.ValidationError{}
	if o.Number == "" {
		v.Add("number", shared.ErrCodeRequiredField, "order number is required")
	}
	if o.CustomerID == uuid.Nil {
		v.Add("customerId", shared.ErrCodeRequiredField, "customer is required")
	}
	if o.PaymentMethod != "" && !o.PaymentMethod.IsValid() {
		v.Add("paymentMethod", shared.ErrCodeInvalidEnum, "unknown payment method")
	}
	if o.TaxRate.IsNegative() {
		v.Add("taxRate", shared.ErrCodeInvalidRange, "tax rate cannot be negative")
	}
	if o.ShippingCost.IsNegative() {
		v.Add("shippingCost", shared.ErrCodeInvalidRange, "shipping cost cannot be negative")
	}
	return v.ErrOrNil()
}

// ChannelOrderStatus is the order status vocabulary of the sales channel.
// The channel adds statuses without notice, so an unrecognized value maps to
// the explicit unknown sentinel instead of failing validation. Do not turn
// this into a hard allow-list.
type ChannelOrderStatus string

const (
	ChannelOrderStatusPending          ChannelOrderStatus = "pending"
	ChannelOrderStatusAwaitingPayment  ChannelOrderStatus = "awaiting_payment"
	ChannelOrderStatusAwaitingShipment ChannelOrderStatus = "awaiting_shipment"
	ChannelOrderStatusPartiallyShipped ChannelOrderStatus = "partially_shipped"
	ChannelOrderStatusShipped          ChannelOrderStatus = "shipped"
	ChannelOrderStatusCompleted        ChannelOrderStatus = "completed"
	ChannelOrderStatusCancelled        ChannelOrderStatus = "cancelled"
	ChannelOrderStatusRefunded         ChannelOrderStatus = "refunded"
	ChannelOrderStatusDisputed         ChannelOrderStatus = "disputed"
	ChannelOrderStatusUnknown          ChannelOrderStatus = "unknown"
)

// ParseChannelOrderStatus coerces raw channel input to a known status,
// falling back to the unknown sentinel.
func ParseChannelOrderStatus(raw string) ChannelOrderStatus {
	s := ChannelOrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case ChannelOrderStatusPending, ChannelOrderStatusAwaitingPayment,
		ChannelOrderStatusAwaitingShipment, ChannelOrderStatusPartiallyShipped,
		ChannelOrderStatusShipped, ChannelOrderStatusCompleted,
		ChannelOrderStatusCancelled, ChannelOrderStatusRefunded,
		ChannelOrderStatusDisputed:
		return s
	default:
		return ChannelOrderStatusUnknown
	}
}

// OrderChannel is the one-to-one linkage between an internal order and the
// channel's record of it. The channel order id is the reconciliation key;
// the row is deleted with its order.
type OrderChannel struct {
	ChannelOrderID int
	ChannelQuoteID *int
	State          string
	Status         ChannelOrderStatus
	OrderID        uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the linkage's invariants.
func (c *OrderChannel) Validate() error {
	v := &shared.ValidationError{}
	if c.ChannelOrderID <= 0 {
		v.Add("channelOrderId", shared.ErrCodeRequiredField, "channel order id is required")
	}
	if c.OrderID == uuid.Nil {
		v.Add("orderId", shared.ErrCodeRequiredField, "order is required")
	}
	return v.ErrOrNil()
}
