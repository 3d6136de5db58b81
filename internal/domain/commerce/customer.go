package commerce

import (
	"strings"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// Customer represents a buyer, either created through the API or reconciled
// from the external sales channel. It is the aggregate root for customer
// operations; orders reference it and restrict its deletion.
type Customer struct {
	shared.BaseEntity
	Name    string
	Email   string
	Phone   string
	Company string

	// Channel linkage. A customer imported from the sales channel carries the
	// channel's group id and, unless it checked out as a guest, the channel's
	// own customer id. Linkage is keyed by email on import.
	ChannelGroupID    *int
	ChannelCustomerID *int
	IsGuest           bool

	Addresses []Address
}

// NewCustomer creates a customer with required fields validated.
func NewCustomer(name, email string) (*Customer, error) {
	c := &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(email)),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the customer's invariants.
func (c *Customer) Validate() error {
	v := &shared.ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		v.Add("name", shared.ErrCodeRequiredField, "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		v.Add("email", shared.ErrCodeRequiredField, "email is required")
	}
	if err := c.validateLinkage(); err != nil {
		v.Fields = append(v.Fields, err.Fields...)
	}
	return v.ErrOrNil()
}

// validateLinkage enforces the channel-linkage invariant: a non-guest linkage
// must carry the channel customer id, a guest linkage must not.
func (c *Customer) validateLinkage() *shared.ValidationError {
	v := &shared.ValidationError{}
	if c.ChannelGroupID == nil && c.ChannelCustomerID == nil && !c.IsGuest {
		return v
	}
	if c.IsGuest && c.ChannelCustomerID != nil {
		v.Add("channelCustomerId", shared.ErrCodeCrossField, "guest linkage must not carry a channel customer id")
	}
	if !c.IsGuest && c.ChannelGroupID != nil && c.ChannelCustomerID == nil {
		v.Add("channelCustomerId", shared.ErrCodeCrossField, "non-guest linkage requires a channel customer id")
	}
	return v
}

// LinkChannel attaches or refreshes the channel linkage.
func (c *Customer) LinkChannel(groupID *int, customerID *int, guest bool) error {
	c.ChannelGroupID = groupID
	c.ChannelCustomerID = customerID
	c.IsGuest = guest
	if err := c.validateLinkage().ErrOrNil(); err != nil {
		return err
	}
	c.Touch()
	return nil
}
