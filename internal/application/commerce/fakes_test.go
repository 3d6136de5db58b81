package commerce

import (
	"context"
	"maps"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// fakeStore is an in-memory stand-in for the persistence layer. It implements
// every repository port with the same observable semantics: channel-identity
// upserts preserve internal ids, and aggregate reads come back with their
// associations populated.
type fakeStore struct {
	customers map[uuid.UUID]*commerce.Customer
	addresses map[uuid.UUID]*commerce.Address
	orders    map[uuid.UUID]*commerce.Order
	channels  map[int]*commerce.OrderChannel
	comments  map[uuid.UUID]*commerce.OrderComment
	brands    map[uuid.UUID]*commerce.Brand
	products  map[uuid.UUID]*commerce.Product
	configs   map[uuid.UUID]*commerce.ProductConfiguration
	options   map[uuid.UUID]*commerce.ProductOption
	methods   map[uuid.UUID]*commerce.DeliveryMethod
	delivs    map[uuid.UUID]*commerce.Delivery
	items     map[uuid.UUID]*commerce.DeliveryItem

	updateCalls map[string]int

	// failOrderUpsert makes the order port fail mid-import so tests can
	// observe the transaction boundary.
	failOrderUpsert error
}

// storeSnapshot captures the entity maps so Atomic can restore them. Entries
// are stored and returned as copies, so cloning the map headers is enough.
type storeSnapshot struct {
	customers map[uuid.UUID]*commerce.Customer
	addresses map[uuid.UUID]*commerce.Address
	orders    map[uuid.UUID]*commerce.Order
	channels  map[int]*commerce.OrderChannel
	comments  map[uuid.UUID]*commerce.OrderComment
	brands    map[uuid.UUID]*commerce.Brand
	products  map[uuid.UUID]*commerce.Product
	configs   map[uuid.UUID]*commerce.ProductConfiguration
	options   map[uuid.UUID]*commerce.ProductOption
	methods   map[uuid.UUID]*commerce.DeliveryMethod
	delivs    map[uuid.UUID]*commerce.Delivery
	items     map[uuid.UUID]*commerce.DeliveryItem
}

func (s *fakeStore) snapshot() storeSnapshot {
	return storeSnapshot{
		customers: maps.Clone(s.customers),
		addresses: maps.Clone(s.addresses),
		orders:    maps.Clone(s.orders),
		channels:  maps.Clone(s.channels),
		comments:  maps.Clone(s.comments),
		brands:    maps.Clone(s.brands),
		products:  maps.Clone(s.products),
		configs:   maps.Clone(s.configs),
		options:   maps.Clone(s.options),
		methods:   maps.Clone(s.methods),
		delivs:    maps.Clone(s.delivs),
		items:     maps.Clone(s.items),
	}
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.customers = snap.customers
	s.addresses = snap.addresses
	s.orders = snap.orders
	s.channels = snap.channels
	s.comments = snap.comments
	s.brands = snap.brands
	s.products = snap.products
	s.configs = snap.configs
	s.options = snap.options
	s.methods = snap.methods
	s.delivs = snap.delivs
	s.items = snap.items
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:   map[uuid.UUID]*commerce.Customer{},
		addresses:   map[uuid.UUID]*commerce.Address{},
		orders:      map[uuid.UUID]*commerce.Order{},
		channels:    map[int]*commerce.OrderChannel{},
		comments:    map[uuid.UUID]*commerce.OrderComment{},
		brands:      map[uuid.UUID]*commerce.Brand{},
		products:    map[uuid.UUID]*commerce.Product{},
		configs:     map[uuid.UUID]*commerce.ProductConfiguration{},
		options:     map[uuid.UUID]*commerce.ProductOption{},
		methods:     map[uuid.UUID]*commerce.DeliveryMethod{},
		delivs:      map[uuid.UUID]*commerce.Delivery{},
		items:       map[uuid.UUID]*commerce.DeliveryItem{},
		updateCalls: map[string]int{},
	}
}

// Atomic implements TransactionManager. The fake mirrors the real boundary:
// when fn fails, the maps are restored to their state before the call, so a
// partial write never becomes visible.
func (s *fakeStore) Atomic(_ context.Context, fn func(tx *gorm.DB) error) error {
	snap := s.snapshot()
	if err := fn(nil); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// customers

func (s *fakeStore) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.Customer, error) {
	if c, ok := s.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (s *fakeStore) FindByEmail(_ context.Context, _ *gorm.DB, email string) (*commerce.Customer, error) {
	for _, c := range s.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *fakeStore) Create(_ context.Context, _ *gorm.DB, customer *commerce.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	cp := *customer
	s.customers[customer.ID] = &cp
	return nil
}

func (s *fakeStore) Update(_ context.Context, _ *gorm.DB, customer *commerce.Customer) error {
	if _, ok := s.customers[customer.ID]; !ok {
		return shared.ErrNotFound
	}
	s.updateCalls["customer"]++
	cp := *customer
	s.customers[customer.ID] = &cp
	return nil
}

func (s *fakeStore) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	if _, ok := s.customers[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

func (s *fakeStore) UpsertByEmail(_ context.Context, _ *gorm.DB, customer *commerce.Customer) (*commerce.Customer, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	for _, existing := range s.customers {
		if existing.Email == customer.Email {
			customer.ID = existing.ID
			customer.CreatedAt = existing.CreatedAt
			customer.UpdatedAt = time.Now()
			break
		}
	}
	cp := *customer
	s.customers[customer.ID] = &cp
	out := *customer
	return &out, nil
}

// customerRepo narrows the fake to the customer port; the other entity ports
// get their own views so method sets never collide.
type customerRepo struct{ *fakeStore }

type addressRepo struct{ *fakeStore }

func (r addressRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.Address, error) {
	if a, ok := r.fakeStore.addresses[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r addressRepo) FindByChannelID(_ context.Context, _ *gorm.DB, channelAddressID int) (*commerce.Address, error) {
	for _, a := range r.fakeStore.addresses {
		if a.ChannelAddressID != nil && *a.ChannelAddressID == channelAddressID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r addressRepo) ListByCustomer(_ context.Context, _ *gorm.DB, customerID uuid.UUID) ([]commerce.Address, error) {
	var out []commerce.Address
	for _, a := range r.fakeStore.addresses {
		if a.CustomerID != nil && *a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r addressRepo) Create(_ context.Context, _ *gorm.DB, address *commerce.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	cp := *address
	r.fakeStore.addresses[address.ID] = &cp
	return nil
}

func (r addressRepo) Update(_ context.Context, _ *gorm.DB, address *commerce.Address) error {
	if _, ok := r.fakeStore.addresses[address.ID]; !ok {
		return shared.ErrNotFound
	}
	r.fakeStore.updateCalls["address"]++
	cp := *address
	r.fakeStore.addresses[address.ID] = &cp
	return nil
}

func (r addressRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.fakeStore.addresses[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.fakeStore.addresses, id)
	return nil
}

func (r addressRepo) UpsertByChannelID(_ context.Context, _ *gorm.DB, address *commerce.Address) (*commerce.Address, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if address.ChannelAddressID != nil {
		for _, existing := range r.fakeStore.addresses {
			if existing.ChannelAddressID != nil && *existing.ChannelAddressID == *address.ChannelAddressID {
				address.ID = existing.ID
				address.CreatedAt = existing.CreatedAt
				address.OrderID = existing.OrderID
				break
			}
		}
	}
	cp := *address
	r.fakeStore.addresses[address.ID] = &cp
	out := *address
	return &out, nil
}

type orderRepo struct{ *fakeStore }

func (r orderRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.Order, error) {
	o, ok := r.fakeStore.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return r.assemble(o), nil
}

func (r orderRepo) assemble(o *commerce.Order) *commerce.Order {
	out := *o
	if c, ok := r.fakeStore.customers[o.CustomerID]; ok {
		cp := *c
		out.Customer = &cp
	}
	if o.BillingAddressID != nil {
		if a, ok := r.fakeStore.addresses[*o.BillingAddressID]; ok {
			cp := *a
			out.BillingAddress = &cp
		}
	}
	if o.ShippingAddressID != nil {
		if a, ok := r.fakeStore.addresses[*o.ShippingAddressID]; ok {
			cp := *a
			out.ShippingAddress = &cp
		}
	}
	for _, link := range r.fakeStore.channels {
		if link.OrderID == o.ID {
			cp := *link
			out.Channel = &cp
		}
	}
	out.Comments = nil
	for _, c := range r.fakeStore.comments {
		if c.OrderID == o.ID {
			out.Comments = append(out.Comments, *c)
		}
	}
	sort.Slice(out.Comments, func(i, j int) bool {
		return out.Comments[i].CreatedAt.Before(out.Comments[j].CreatedAt)
	})
	out.Configurations = nil
	for _, cfg := range r.fakeStore.configs {
		if cfg.OrderID != o.ID {
			continue
		}
		cp := *cfg
		if p, ok := r.fakeStore.products[cfg.ProductID]; ok {
			pp := *p
			if p.BrandID != nil {
				if b, ok := r.fakeStore.brands[*p.BrandID]; ok {
					bp := *b
					pp.Brand = &bp
				}
			}
			cp.Product = &pp
		}
		cp.Options = nil
		for _, op := range r.fakeStore.options {
			if op.ConfigurationID == cfg.ID {
				cp.Options = append(cp.Options, *op)
			}
		}
		sort.Slice(cp.Options, func(i, j int) bool { return cp.Options[i].SortOrder < cp.Options[j].SortOrder })
		out.Configurations = append(out.Configurations, cp)
	}
	sort.Slice(out.Configurations, func(i, j int) bool {
		return out.Configurations[i].CreatedAt.Before(out.Configurations[j].CreatedAt)
	})
	return &out
}

func (r orderRepo) GetByNumber(ctx context.Context, tx *gorm.DB, number string) (*commerce.Order, error) {
	for _, o := range r.fakeStore.orders {
		if o.Number == number {
			return r.GetByID(ctx, tx, o.ID)
		}
	}
	return nil, shared.ErrNotFound
}

func (r orderRepo) FindByChannelOrderID(ctx context.Context, tx *gorm.DB, channelOrderID int) (*commerce.Order, error) {
	if link, ok := r.fakeStore.channels[channelOrderID]; ok {
		return r.GetByID(ctx, tx, link.OrderID)
	}
	return nil, shared.ErrNotFound
}

func (r orderRepo) List(_ context.Context, _ *gorm.DB, limit, offset int) ([]commerce.Order, error) {
	var out []commerce.Order
	for _, o := range r.fakeStore.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r orderRepo) Create(_ context.Context, _ *gorm.DB, order *commerce.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	cp := *order
	r.fakeStore.orders[order.ID] = &cp
	return nil
}

func (r orderRepo) Update(_ context.Context, _ *gorm.DB, order *commerce.Order) error {
	if _, ok := r.fakeStore.orders[order.ID]; !ok {
		return shared.ErrNotFound
	}
	cp := *order
	r.fakeStore.orders[order.ID] = &cp
	return nil
}

func (r orderRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.fakeStore.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.fakeStore.orders, id)
	return nil
}

func (r orderRepo) UpsertByNumber(_ context.Context, _ *gorm.DB, order *commerce.Order) (*commerce.Order, error) {
	if r.fakeStore.failOrderUpsert != nil {
		return nil, r.fakeStore.failOrderUpsert
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	for _, existing := range r.fakeStore.orders {
		if existing.Number == order.Number {
			order.ID = existing.ID
			order.CreatedAt = existing.CreatedAt
			order.UpdatedAt = time.Now()
			break
		}
	}
	cp := *order
	r.fakeStore.orders[order.ID] = &cp
	out := *order
	return &out, nil
}

func (r orderRepo) UpsertChannel(_ context.Context, _ *gorm.DB, link *commerce.OrderChannel) (*commerce.OrderChannel, error) {
	if err := link.Validate(); err != nil {
		return nil, err
	}
	if existing, ok := r.fakeStore.channels[link.ChannelOrderID]; ok {
		link.CreatedAt = existing.CreatedAt
	}
	cp := *link
	r.fakeStore.channels[link.ChannelOrderID] = &cp
	out := *link
	return &out, nil
}

type commentRepo struct{ *fakeStore }

func (r commentRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.OrderComment, error) {
	if c, ok := r.fakeStore.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r commentRepo) ListByOrder(_ context.Context, _ *gorm.DB, orderID uuid.UUID) ([]commerce.OrderComment, error) {
	var out []commerce.OrderComment
	for _, c := range r.fakeStore.comments {
		if c.OrderID == orderID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r commentRepo) Create(_ context.Context, _ *gorm.DB, comment *commerce.OrderComment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	cp := *comment
	r.fakeStore.comments[comment.ID] = &cp
	return nil
}

func (r commentRepo) Update(_ context.Context, _ *gorm.DB, comment *commerce.OrderComment) error {
	if _, ok := r.fakeStore.comments[comment.ID]; !ok {
		return shared.ErrNotFound
	}
	cp := *comment
	r.fakeStore.comments[comment.ID] = &cp
	return nil
}

func (r commentRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.fakeStore.comments, id)
	return nil
}

func (r commentRepo) UpsertByChannelID(_ context.Context, _ *gorm.DB, comment *commerce.OrderComment) (*commerce.OrderComment, error) {
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	if comment.ChannelCommentID != nil {
		for _, existing := range r.fakeStore.comments {
			if existing.ChannelCommentID != nil && *existing.ChannelCommentID == *comment.ChannelCommentID {
				comment.ID = existing.ID
				comment.CreatedAt = existing.CreatedAt
				break
			}
		}
	}
	cp := *comment
	r.fakeStore.comments[comment.ID] = &cp
	out := *comment
	return &out, nil
}

type brandRepo struct{ *fakeStore }

func (r brandRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.Brand, error) {
	if b, ok := r.fakeStore.brands[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r brandRepo) FindByName(_ context.Context, _ *gorm.DB, name string) (*commerce.Brand, error) {
	for _, b := range r.fakeStore.brands {
		if b.Name == name {
			cp := *b
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r brandRepo) Create(_ context.Context, _ *gorm.DB, brand *commerce.Brand) error {
	if err := brand.Validate(); err != nil {
		return err
	}
	cp := *brand
	r.fakeStore.brands[brand.ID] = &cp
	return nil
}

func (r brandRepo) Update(_ context.Context, _ *gorm.DB, brand *commerce.Brand) error {
	cp := *brand
	r.fakeStore.brands[brand.ID] = &cp
	return nil
}

func (r brandRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.fakeStore.brands, id)
	return nil
}

func (r brandRepo) UpsertByChannelID(_ context.Context, _ *gorm.DB, brand *commerce.Brand) (*commerce.Brand, error) {
	if err := brand.Validate(); err != nil {
		return nil, err
	}
	for _, existing := range r.fakeStore.brands {
		match := false
		if brand.ChannelBrandID != nil {
			match = existing.ChannelBrandID != nil && *existing.ChannelBrandID == *brand.ChannelBrandID
		} else {
			match = existing.Name == brand.Name
		}
		if match {
			brand.ID = existing.ID
			brand.CreatedAt = existing.CreatedAt
			break
		}
	}
	cp := *brand
	r.fakeStore.brands[brand.ID] = &cp
	out := *brand
	return &out, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type productRepo struct{ *fakeStore }

func (r productRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.Product, error) {
	if p, ok := r.fakeStore.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r productRepo) FindBySKU(_ context.Context, _ *gorm.DB, sku string) (*commerce.Product, error) {
	for _, p := range r.fakeStore.products {
		if p.SKU != nil && *p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r productRepo) Create(_ context.Context, _ *gorm.DB, product *commerce.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	cp := *product
	r.fakeStore.products[product.ID] = &cp
	return nil
}

func (r productRepo) Update(_ context.Context, _ *gorm.DB, product *commerce.Product) error {
	cp := *product
	r.fakeStore.products[product.ID] = &cp
	return nil
}

func (r productRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.fakeStore.products, id)
	return nil
}

func (r productRepo) UpsertByChannelID(_ context.Context, _ *gorm.DB, product *commerce.Product) (*commerce.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}
	for _, existing := range r.fakeStore.products {
		match := false
		switch {
		case product.ChannelProductID != nil:
			match = existing.ChannelProductID != nil && *existing.ChannelProductID == *product.ChannelProductID
		case product.SKU != nil:
			match = existing.SKU != nil && *existing.SKU == *product.SKU
		default:
			match = existing.Name == product.Name && uuidPtrEqual(existing.BrandID, product.BrandID)
		}
		if match {
			product.ID = existing.ID
			product.CreatedAt = existing.CreatedAt
			break
		}
	}
	cp := *product
	r.fakeStore.products[product.ID] = &cp
	out := *product
	return &out, nil
}

type configRepo struct{ *fakeStore }

func (r configRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.ProductConfiguration, error) {
	if c, ok := r.fakeStore.configs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r configRepo) ListByOrder(_ context.Context, _ *gorm.DB, orderID uuid.UUID) ([]commerce.ProductConfiguration, error) {
	var out []commerce.ProductConfiguration
	for _, c := range r.fakeStore.configs {
		if c.OrderID == orderID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r configRepo) Create(_ context.Context, _ *gorm.DB, cfg *commerce.ProductConfiguration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cp := *cfg
	r.fakeStore.configs[cfg.ID] = &cp
	return nil
}

func (r configRepo) Update(_ context.Context, _ *gorm.DB, cfg *commerce.ProductConfiguration) error {
	cp := *cfg
	r.fakeStore.configs[cfg.ID] = &cp
	return nil
}

func (r configRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.fakeStore.configs, id)
	return nil
}

func (r configRepo) UpsertByChannelID(_ context.Context, _ *gorm.DB, cfg *commerce.ProductConfiguration) (*commerce.ProductConfiguration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ChannelItemID != nil {
		for _, existing := range r.fakeStore.configs {
			if existing.ChannelItemID != nil && *existing.ChannelItemID == *cfg.ChannelItemID {
				cfg.ID = existing.ID
				cfg.CreatedAt = existing.CreatedAt
				break
			}
		}
	}
	cp := *cfg
	r.fakeStore.configs[cfg.ID] = &cp
	out := *cfg
	return &out, nil
}

func (r configRepo) UpsertOption(_ context.Context, _ *gorm.DB, option *commerce.ProductOption) (*commerce.ProductOption, error) {
	if err := option.Validate(); err != nil {
		return nil, err
	}
	if option.ChannelOptionID != nil {
		for _, existing := range r.fakeStore.options {
			if existing.ChannelOptionID != nil &&
				*existing.ChannelOptionID == *option.ChannelOptionID &&
				existing.ConfigurationID == option.ConfigurationID {
				option.ID = existing.ID
				option.CreatedAt = existing.CreatedAt
				break
			}
		}
	}
	cp := *option
	r.fakeStore.options[option.ID] = &cp
	out := *option
	return &out, nil
}

type methodRepo struct{ *fakeStore }

func (r methodRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.DeliveryMethod, error) {
	if m, ok := r.fakeStore.methods[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, shared.ErrNotFound
}

func (r methodRepo) FindByName(_ context.Context, _ *gorm.DB, name string) (*commerce.DeliveryMethod, error) {
	for _, m := range r.fakeStore.methods {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r methodRepo) Create(_ context.Context, _ *gorm.DB, method *commerce.DeliveryMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	cp := *method
	r.fakeStore.methods[method.ID] = &cp
	return nil
}

func (r methodRepo) Update(_ context.Context, _ *gorm.DB, method *commerce.DeliveryMethod) error {
	if _, ok := r.fakeStore.methods[method.ID]; !ok {
		return shared.ErrNotFound
	}
	cp := *method
	r.fakeStore.methods[method.ID] = &cp
	return nil
}

func (r methodRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.fakeStore.methods, id)
	return nil
}

type deliveryRepo struct{ *fakeStore }

func (r deliveryRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*commerce.Delivery, error) {
	d, ok := r.fakeStore.delivs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *d
	cp.Items = nil
	for _, it := range r.fakeStore.items {
		if it.DeliveryID == id {
			cp.Items = append(cp.Items, *it)
		}
	}
	return &cp, nil
}

func (r deliveryRepo) Create(_ context.Context, _ *gorm.DB, delivery *commerce.Delivery) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	cp := *delivery
	r.fakeStore.delivs[delivery.ID] = &cp
	return nil
}

func (r deliveryRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	delete(r.fakeStore.delivs, id)
	return nil
}

func (r deliveryRepo) BulkCreateItems(_ context.Context, _ *gorm.DB, deliveryID uuid.UUID, items []commerce.DeliveryItem) ([]commerce.DeliveryItem, error) {
	var created []commerce.DeliveryItem
	for _, item := range items {
		item.DeliveryID = deliveryID
		if err := item.Validate(); err != nil {
			return nil, err
		}
		merged := false
		for i := range created {
			if created[i].ConfigurationID == item.ConfigurationID {
				created[i].Quantity += item.Quantity
				r.fakeStore.items[created[i].ID].Quantity = created[i].Quantity
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		for _, existing := range r.fakeStore.items {
			if existing.DeliveryID == deliveryID && existing.ConfigurationID == item.ConfigurationID {
				return nil, shared.NewValidationError("configurationId", shared.ErrCodeUniqueViolation,
					"a delivery item for this configuration already exists")
			}
		}
		cp := item
		r.fakeStore.items[item.ID] = &cp
		created = append(created, cp)
	}
	return created, nil
}
