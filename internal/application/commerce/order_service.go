package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"go.uber.org/zap"
)

// OrderService handles order operations
type OrderService struct {
	orders   commerce.OrderRepository
	comments commerce.CommentRepository
	logger   *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders commerce.OrderRepository, comments commerce.CommentRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, comments: comments, logger: logger}
}

// Get loads one order aggregate by id.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*commerce.Order, error) {
	return s.orders.GetByID(ctx, nil, id)
}

// GetView loads one order and assembles its read model.
func (s *OrderService) GetView(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return AssembleOrderView(order), nil
}

// List returns a page of orders, newest first.
func (s *OrderService) List(ctx context.Context, limit, offset int) ([]commerce.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.List(ctx, nil, limit, offset)
}

// Create validates the input and persists a manually entered order.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*commerce.Order, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	order, err := commerce.NewOrder(in.Number, in.CustomerID, in.OrderedAt)
	if err != nil {
		return nil, err
	}
	order.TaxRate = in.TaxRate
	order.ShippingCost = in.ShippingCost
	order.PaymentMethod = commerce.PaymentMethod(in.PaymentMethod)
	order.DeliveryMethodID = in.DeliveryMethodID
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, nil, order); err != nil {
		return nil, err
	}
	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("number", order.Number))
	return order, nil
}

// Delete removes an order. Its channel linkage, comments and configurations
// go with it.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", zap.String("order_id", id.String()))
	return nil
}

// AddComment attaches a comment to an existing order.
func (s *OrderService) AddComment(ctx context.Context, orderID uuid.UUID, in CreateCommentInput) (*commerce.OrderComment, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if _, err := s.orders.GetByID(ctx, nil, orderID); err != nil {
		return nil, err
	}
	comment, err := commerce.NewOrderComment(orderID, commerce.CommentKind(in.Kind), in.Body)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Create(ctx, nil, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns an order's comments, oldest first.
func (s *OrderService) ListComments(ctx context.Context, orderID uuid.UUID) ([]commerce.OrderComment, error) {
	return s.comments.ListByOrder(ctx, nil, orderID)
}
