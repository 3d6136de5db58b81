package commerce

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// CommentKind is the closed set of order comment types.
type CommentKind string

const (
	CommentKindNote         CommentKind = "note"
	CommentKindStatusChange CommentKind = "status_change"
	CommentKindChannel      CommentKind = "channel"
)

// IsValid returns true if the kind is valid
func (k CommentKind) IsValid() bool {
	switch k {
	case CommentKindNote, CommentKindStatusChange, CommentKindChannel:
		return true
	default:
		return false
	}
}

// OrderComment is a free-text note attached to an order. Comments imported
// from the channel carry the channel's comment id and, for threaded replies,
// the channel id of the parent; they may also snapshot the channel order
// status at the time the comment was written.
type OrderComment struct {
	shared.BaseEntity
	Body    string
	Kind    CommentKind
	OrderID uuid.UUID

	ChannelCommentID *int
	ChannelParentID  *int
	StatusSnapshot   *ChannelOrderStatus
}

// NewOrderComment creates a comment with required fields validated.
func NewOrderComment(orderID uuid.UUID, kind CommentKind, body string) (*OrderComment, error) {
	c := &OrderComment{
		BaseEntity: shared.NewBaseEntity(),
		Body:       body,
		Kind:       kind,
		OrderID:    orderID,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the comment's invariants.
func (c *OrderComment) Validate() error {
	v := &shared.ValidationError{}
	if strings.TrimSpace(c.Body) == "" {
		v.Add("body", shared.ErrCodeRequiredField, "body is required")
	}
	if !c.Kind.IsValid() {
		v.Add("kind", shared.ErrCodeInvalidEnum, "unknown comment kind")
	}
	if c.OrderID == uuid.Nil {
		v.Add("orderId", shared.ErrCodeRequiredField, "order is required")
	}
	return v.ErrOrNil()
}
