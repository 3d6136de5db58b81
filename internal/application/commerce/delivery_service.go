package commerce

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeliveryService handles delivery and delivery method operations
type DeliveryService struct {
	deliveries commerce.DeliveryRepository
	methods    commerce.DeliveryMethodRepository
	orders     commerce.OrderRepository
	tm         TransactionManager
	logger     *zap.Logger
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	deliveries commerce.DeliveryRepository,
	methods commerce.DeliveryMethodRepository,
	orders commerce.OrderRepository,
	tm TransactionManager,
	logger *zap.Logger,
) *DeliveryService {
	return &DeliveryService{
		deliveries: deliveries,
		methods:    methods,
		orders:     orders,
		tm:         tm,
		logger:     logger,
	}
}

// Get loads one delivery with its items.
func (s *DeliveryService) Get(ctx context.Context, id uuid.UUID) (*commerce.Delivery, error) {
	return s.deliveries.GetByID(ctx, nil, id)
}

// Create records a delivery and its items in one transaction. Two input lines
// naming the same configuration end up merged into a single item with the
// summed quantity.
func (s *DeliveryService) Create(ctx context.Context, in CreateDeliveryInput) (*commerce.Delivery, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	var created *commerce.Delivery
	err := s.tm.Atomic(ctx, func(tx *gorm.DB) error {
		if _, err := s.orders.GetByID(ctx, tx, in.OrderID); err != nil {
			return err
		}
		delivery, err := commerce.NewDelivery(in.OrderID)
		if err != nil {
			return err
		}
		delivery.ShippedAt = in.ShippedAt
		if err := s.deliveries.Create(ctx, tx, delivery); err != nil {
			return err
		}
		items := make([]commerce.DeliveryItem, 0, len(in.Items))
		for _, line := range in.Items {
			item, err := commerce.NewDeliveryItem(delivery.ID, line.ConfigurationID, line.Quantity)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		persisted, err := s.deliveries.BulkCreateItems(ctx, tx, delivery.ID, items)
		if err != nil {
			return err
		}
		delivery.Items = persisted
		created = delivery
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("delivery created",
		zap.String("delivery_id", created.ID.String()),
		zap.String("order_id", created.OrderID.String()),
		zap.Int("items", len(created.Items)))
	return created, nil
}

// Delete removes a delivery and its items.
func (s *DeliveryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deliveries.Delete(ctx, nil, id)
}

// GetMethod loads one delivery method by id.
func (s *DeliveryService) GetMethod(ctx context.Context, id uuid.UUID) (*commerce.DeliveryMethod, error) {
	return s.methods.GetByID(ctx, nil, id)
}

// CreateMethod validates the input and persists a new delivery method.
func (s *DeliveryService) CreateMethod(ctx context.Context, in CreateDeliveryMethodInput) (*commerce.DeliveryMethod, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	method, err := commerce.NewDeliveryMethod(in.Name, in.Carrier)
	if err != nil {
		return nil, err
	}
	method.Cost = in.Cost
	if in.LeadTime != nil {
		method.SetLeadTimeRange(commerce.LeadTime{MinDays: in.LeadTime.MinDays, MaxDays: in.LeadTime.MaxDays})
	}
	if err := s.methods.Create(ctx, nil, method); err != nil {
		return nil, err
	}
	return method, nil
}

// UpdateMethod applies a partial update to a delivery method.
func (s *DeliveryService) UpdateMethod(ctx context.Context, id uuid.UUID, in UpdateDeliveryMethodInput) (*commerce.DeliveryMethod, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	method, err := s.methods.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		method.Name = *in.Name
	}
	if in.Carrier != nil {
		method.Carrier = *in.Carrier
	}
	if in.Cost != nil {
		method.Cost = *in.Cost
	}
	if in.LeadTime != nil {
		method.SetLeadTimeRange(commerce.LeadTime{MinDays: in.LeadTime.MinDays, MaxDays: in.LeadTime.MaxDays})
	}
	if err := method.Validate(); err != nil {
		return nil, err
	}
	method.Touch()
	if err := s.methods.Update(ctx, nil, method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeleteMethod removes a delivery method. Orders referencing it restrict the
// delete.
func (s *DeliveryService) DeleteMethod(ctx context.Context, id uuid.UUID) error {
	return s.methods.Delete(ctx, nil, id)
}
