package commerce

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportService is the reconciliation engine. It converges the local database
// onto a channel order snapshot: every entity the payload names is matched by
// its channel identity and updated in place, or created when absent. The
// whole import runs under one transaction; a failing step leaves no partial
// order behind.
type ImportService struct {
	customers commerce.CustomerRepository
	addresses commerce.AddressRepository
	orders    commerce.OrderRepository
	comments  commerce.CommentRepository
	brands    commerce.BrandRepository
	products  commerce.ProductRepository
	configs   commerce.ConfigurationRepository
	methods   commerce.DeliveryMethodRepository
	tm        TransactionManager
	logger    *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(
	customers commerce.CustomerRepository,
	addresses commerce.AddressRepository,
	orders commerce.OrderRepository,
	comments commerce.CommentRepository,
	brands commerce.BrandRepository,
	products commerce.ProductRepository,
	configs commerce.ConfigurationRepository,
	methods commerce.DeliveryMethodRepository,
	tm TransactionManager,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		customers: customers,
		addresses: addresses,
		orders:    orders,
		comments:  comments,
		brands:    brands,
		products:  products,
		configs:   configs,
		methods:   methods,
		tm:        tm,
		logger:    logger,
	}
}

func channelOrderNumber(channelOrderID int) string {
	return fmt.Sprintf("CH-%d", channelOrderID)
}

// ImportOrder validates the payload, reconciles it under one transaction and
// returns the resulting order read model. Validation reports every defect in
// one pass; nothing touches the database until the payload is clean.
func (s *ImportService) ImportOrder(ctx context.Context, payload ChannelOrderPayload) (*OrderView, error) {
	if err := validateInput(&payload); err != nil {
		return nil, err
	}

	var view *OrderView
	err := s.tm.Atomic(ctx, func(tx *gorm.DB) error {
		customer, err := s.reconcileCustomer(ctx, tx, payload.Customer)
		if err != nil {
			return err
		}
		billing, err := s.reconcileAddress(ctx, tx, payload.BillingAddress, customer.ID)
		if err != nil {
			return err
		}
		shipping, err := s.reconcileAddress(ctx, tx, payload.ShippingAddr, customer.ID)
		if err != nil {
			return err
		}
		order, err := s.reconcileOrder(ctx, tx, payload, customer.ID, billing, shipping)
		if err != nil {
			return err
		}
		if err := s.linkAddresses(ctx, tx, order.ID, billing, shipping); err != nil {
			return err
		}
		if err := s.reconcileChannelLink(ctx, tx, payload, order.ID); err != nil {
			return err
		}
		if err := s.reconcileComments(ctx, tx, payload.Comments, order.ID); err != nil {
			return err
		}
		if err := s.reconcileItems(ctx, tx, payload.Items, order.ID); err != nil {
			return err
		}
		full, err := s.orders.GetByID(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		view = AssembleOrderView(full)
		return nil
	})
	if err != nil {
		s.logger.Error("channel order import failed",
			zap.Int("channel_order_id", payload.ChannelOrderID),
			zap.Error(err))
		return nil, err
	}
	s.logger.Info("channel order imported",
		zap.Int("channel_order_id", payload.ChannelOrderID),
		zap.String("order_id", view.ID.String()),
		zap.Int("items", len(view.Items)))
	return view, nil
}

func (s *ImportService) reconcileCustomer(ctx context.Context, tx *gorm.DB, p ChannelCustomerPayload) (*commerce.Customer, error) {
	customer, err := commerce.NewCustomer(p.Name, p.Email)
	if err != nil {
		return nil, err
	}
	customer.Phone = p.Phone
	customer.Company = p.Company
	if err := customer.LinkChannel(p.GroupID, p.ID, p.Guest); err != nil {
		return nil, err
	}
	return s.customers.UpsertByEmail(ctx, tx, customer)
}

// reconcileAddress converges one order address. Addresses carrying a channel
// id are matched by it; addresses without one are created fresh, the channel
// gives us nothing stable to match them on.
func (s *ImportService) reconcileAddress(ctx context.Context, tx *gorm.DB, p *ChannelAddressPayload, customerID uuid.UUID) (*commerce.Address, error) {
	if p == nil {
		return nil, nil
	}
	address := &commerce.Address{
		BaseEntity:       shared.NewBaseEntity(),
		Kind:             commerce.AddressKindOrder,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		City:             p.City,
		State:            p.State,
		Zip:              p.Zip,
		Country:          p.Country,
		Phone:            p.Phone,
		CustomerID:       &customerID,
		ChannelAddressID: p.ID,
	}
	address.SetStreetLines(p.Street)
	address.Latitude = p.Latitude
	address.Longitude = p.Longitude
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if p.ID == nil {
		if err := s.addresses.Create(ctx, tx, address); err != nil {
			return nil, err
		}
		return address, nil
	}
	return s.addresses.UpsertByChannelID(ctx, tx, address)
}

func (s *ImportService) reconcileOrder(ctx context.Context, tx *gorm.DB, p ChannelOrderPayload, customerID uuid.UUID, billing, shipping *commerce.Address) (*commerce.Order, error) {
	order, err := commerce.NewOrder(p.OrderNumber(), customerID, p.OrderedAt)
	if err != nil {
		return nil, err
	}
	order.TaxRate = p.TaxRate
	order.ShippingCost = p.ShippingCost
	order.PaymentMethod = commerce.PaymentMethod(p.PaymentMethod)
	if billing != nil {
		order.BillingAddressID = &billing.ID
	}
	if shipping != nil {
		order.ShippingAddressID = &shipping.ID
	}
	if p.DeliveryMethod != "" {
		method, err := s.methods.FindByName(ctx, tx, p.DeliveryMethod)
		switch {
		case err == nil:
			order.DeliveryMethodID = &method.ID
		case shared.IsNotFound(err):
			s.logger.Warn("channel order names an unknown delivery method",
				zap.Int("channel_order_id", p.ChannelOrderID),
				zap.String("delivery_method", p.DeliveryMethod))
		default:
			return nil, err
		}
	}
	return s.orders.UpsertByNumber(ctx, tx, order)
}

// linkAddresses points the order addresses back at the order they were
// frozen onto. The link cannot be set earlier, the order does not exist yet
// when the addresses are reconciled.
func (s *ImportService) linkAddresses(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, billing, shipping *commerce.Address) error {
	for _, addr := range []*commerce.Address{billing, shipping} {
		if addr == nil || (addr.OrderID != nil && *addr.OrderID == orderID) {
			continue
		}
		addr.OrderID = &orderID
		if err := s.addresses.Update(ctx, tx, addr); err != nil {
			return err
		}
	}
	return nil
}

func (s *ImportService) reconcileChannelLink(ctx context.Context, tx *gorm.DB, p ChannelOrderPayload, orderID uuid.UUID) error {
	link := &commerce.OrderChannel{
		ChannelOrderID: p.ChannelOrderID,
		ChannelQuoteID: p.QuoteID,
		State:          p.State,
		Status:         commerce.ParseChannelOrderStatus(p.Status),
		OrderID:        orderID,
	}
	_, err := s.orders.UpsertChannel(ctx, tx, link)
	return err
}

func (s *ImportService) reconcileComments(ctx context.Context, tx *gorm.DB, payloads []ChannelCommentPayload, orderID uuid.UUID) error {
	for _, p := range payloads {
		comment, err := commerce.NewOrderComment(orderID, commerce.CommentKindChannel, p.Body)
		if err != nil {
			return err
		}
		comment.ChannelCommentID = p.ID
		comment.ChannelParentID = p.ParentID
		if p.Status != "" {
			status := commerce.ParseChannelOrderStatus(p.Status)
			comment.StatusSnapshot = &status
		}
		if _, err := s.comments.UpsertByChannelID(ctx, tx, comment); err != nil {
			return err
		}
	}
	return nil
}

// reconcileItems converges the line items. A concurrent import can slip a
// row in between our find and create; a duplicate-key failure on the channel
// identity is therefore retried once, at which point the find sees the row
// and the upsert takes the update path.
func (s *ImportService) reconcileItems(ctx context.Context, tx *gorm.DB, items []ChannelItemPayload, orderID uuid.UUID) error {
	for i := range items {
		item := &items[i]
		var brandID *uuid.UUID
		if item.Brand != nil {
			brand, err := s.reconcileBrand(ctx, tx, item.Brand)
			if err != nil {
				return err
			}
			brandID = &brand.ID
		}
		product, err := s.reconcileProduct(ctx, tx, item, brandID)
		if err != nil {
			return err
		}
		cfg, err := s.reconcileConfiguration(ctx, tx, item, orderID, product.ID)
		if err != nil {
			return err
		}
		for _, op := range item.Options {
			if err := s.reconcileOption(ctx, tx, op, cfg.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ImportService) reconcileBrand(ctx context.Context, tx *gorm.DB, p *ChannelBrandPayload) (*commerce.Brand, error) {
	brand, err := commerce.NewBrand(p.Name)
	if err != nil {
		return nil, err
	}
	brand.ChannelBrandID = p.ID
	result, err := s.brands.UpsertByChannelID(ctx, tx, brand)
	if shared.IsUniqueViolation(err, "channelBrandId") {
		result, err = s.brands.UpsertByChannelID(ctx, tx, brand)
	}
	return result, err
}

func (s *ImportService) reconcileProduct(ctx context.Context, tx *gorm.DB, item *ChannelItemPayload, brandID *uuid.UUID) (*commerce.Product, error) {
	kind := commerce.ProductKindPhysical
	if item.Kind != "" {
		kind = commerce.ProductKind(item.Kind)
	}
	product, err := commerce.NewProduct(kind, item.Name)
	if err != nil {
		return nil, err
	}
	product.SKU = item.SKU
	product.ChannelProductID = item.ProductID
	product.BrandID = brandID
	result, err := s.products.UpsertByChannelID(ctx, tx, product)
	if shared.IsUniqueViolation(err, "channelProductId") {
		result, err = s.products.UpsertByChannelID(ctx, tx, product)
	}
	return result, err
}

func (s *ImportService) reconcileConfiguration(ctx context.Context, tx *gorm.DB, item *ChannelItemPayload, orderID, productID uuid.UUID) (*commerce.ProductConfiguration, error) {
	cfg, err := commerce.NewProductConfiguration(orderID, productID, item.Qty, item.Price)
	if err != nil {
		return nil, err
	}
	cfg.Tax = item.Tax
	cfg.Discount = item.Discount
	cfg.ChannelItemID = item.ID
	result, err := s.configs.UpsertByChannelID(ctx, tx, cfg)
	if shared.IsUniqueViolation(err, "channelItemId") {
		result, err = s.configs.UpsertByChannelID(ctx, tx, cfg)
	}
	return result, err
}

func (s *ImportService) reconcileOption(ctx context.Context, tx *gorm.DB, p ChannelOptionPayload, configurationID uuid.UUID) error {
	option, err := commerce.NewProductOption(configurationID, p.Label, p.Value)
	if err != nil {
		return err
	}
	option.SortOrder = p.SortOrder
	option.ChannelOptionID = p.ID
	_, err = s.configs.UpsertOption(ctx, tx, option)
	if shared.IsUniqueViolation(err, "channelOptionId") {
		_, err = s.configs.UpsertOption(ctx, tx, option)
	}
	return err
}
