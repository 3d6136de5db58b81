package commerce

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func validPayload() ChannelOrderPayload {
	lat := decimal.NewFromFloat(52.52)
	lon := decimal.NewFromFloat(13.405)
	return ChannelOrderPayload{
		ChannelOrderID: 9001,
		QuoteID:        intPtr(77),
		Number:         "100000042",
		State:          "processing",
		Status:         "awaiting_shipment",
		OrderedAt:      time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		TaxRate:        decimal.NewFromFloat(0.19),
		ShippingCost:   decimal.NewFromFloat(4.90),
		PaymentMethod:  "paypal",
		Customer: ChannelCustomerPayload{
			ID:      intPtr(300),
			GroupID: intPtr(2),
			Name:    "Ada Lovelace",
			Email:   "Ada@Example.com",
			Phone:   "+49 30 1234",
		},
		BillingAddress: &ChannelAddressPayload{
			ID:      intPtr(501),
			Street:  []string{"Unter den Linden 1"},
			City:    "Berlin",
			Zip:     "10117",
			Country: "DE",
		},
		ShippingAddr: &ChannelAddressPayload{
			ID:        intPtr(502),
			Street:    []string{"Friedrichstr. 43", "Hinterhaus"},
			City:      "Berlin",
			Zip:       "10969",
			Country:   "DE",
			Latitude:  &lat,
			Longitude: &lon,
		},
		Items: []ChannelItemPayload{
			{
				ID:        intPtr(7001),
				ProductID: intPtr(42),
				SKU:       strPtr("WID-1"),
				Name:      "Widget",
				Kind:      "physical",
				Brand:     &ChannelBrandPayload{ID: intPtr(5), Name: "Acme"},
				Qty:       3,
				Price:     decimal.NewFromFloat(19.99),
				Tax:       decimal.NewFromFloat(3.80),
				Options: []ChannelOptionPayload{
					{ID: intPtr(1), Label: "Colour", Value: "red", SortOrder: 1},
					{ID: intPtr(2), Label: "Size", Value: "M", SortOrder: 2},
				},
			},
			{
				ID:    intPtr(7002),
				Name:  "Gift wrap",
				Kind:  "service",
				Qty:   1,
				Price: decimal.NewFromFloat(2.50),
			},
		},
		Comments: []ChannelCommentPayload{
			{ID: intPtr(88), Body: "Please ring twice", Status: "awaiting_shipment"},
		},
	}
}

func newImportService(store *fakeStore) *ImportService {
	return NewImportService(
		customerRepo{store},
		addressRepo{store},
		orderRepo{store},
		commentRepo{store},
		brandRepo{store},
		productRepo{store},
		configRepo{store},
		methodRepo{store},
		store,
		zap.NewNop(),
	)
}

func TestImportOrderCreatesWholeAggregate(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)

	view, err := svc.ImportOrder(context.Background(), validPayload())
	require.NoError(t, err)

	assert.Equal(t, "100000042", view.Number)
	require.NotNil(t, view.Customer)
	assert.Equal(t, "ada@example.com", view.Customer.Email)
	assert.Equal(t, intPtr(300), view.Customer.ChannelCustomerID)

	require.NotNil(t, view.BillingAddress)
	assert.Equal(t, []string{"Unter den Linden 1"}, view.BillingAddress.Street)
	assert.Nil(t, view.BillingAddress.Geo)

	require.NotNil(t, view.ShippingAddress)
	assert.Equal(t, []string{"Friedrichstr. 43", "Hinterhaus"}, view.ShippingAddress.Street)
	require.NotNil(t, view.ShippingAddress.Geo)
	assert.True(t, view.ShippingAddress.Geo.Lat.Equal(decimal.NewFromFloat(52.52)))

	require.NotNil(t, view.Channel)
	assert.Equal(t, 9001, view.Channel.ChannelOrderID)
	assert.Equal(t, "awaiting_shipment", view.Channel.Status)

	require.Len(t, view.Comments, 1)
	assert.Equal(t, "channel", view.Comments[0].Kind)
	require.NotNil(t, view.Comments[0].StatusSnapshot)
	assert.Equal(t, "awaiting_shipment", *view.Comments[0].StatusSnapshot)

	require.Len(t, view.Items, 2)
	var widget *ItemView
	for i := range view.Items {
		if view.Items[i].Name == "Widget" {
			widget = &view.Items[i]
		}
	}
	require.NotNil(t, widget)
	assert.Equal(t, "physical", widget.Kind)
	require.NotNil(t, widget.Brand)
	assert.Equal(t, "Acme", *widget.Brand)
	assert.Equal(t, 3, widget.Configuration.QtyOrdered)
	require.Len(t, widget.Configuration.Options, 2)
	assert.Equal(t, "Colour", widget.Configuration.Options[0].Label)
}

func TestImportOrderIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)
	ctx := context.Background()

	first, err := svc.ImportOrder(ctx, validPayload())
	require.NoError(t, err)

	// Re-import with a changed quantity and status. Everything must converge
	// onto the same internal rows.
	payload := validPayload()
	payload.Status = "shipped"
	payload.Items[0].Qty = 5
	second, err := svc.ImportOrder(ctx, payload)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Customer.ID, second.Customer.ID)
	assert.Equal(t, first.BillingAddress.ID, second.BillingAddress.ID)
	assert.Equal(t, "shipped", second.Channel.Status)

	assert.Len(t, store.orders, 1)
	assert.Len(t, store.customers, 1)
	assert.Len(t, store.addresses, 2)
	assert.Len(t, store.configs, 2)
	assert.Len(t, store.comments, 1)
	assert.Len(t, store.brands, 1)
	// "Gift wrap" carries no channel product id and no SKU; the name match
	// keeps the re-import from creating a third product.
	assert.Len(t, store.products, 2)

	for _, cfg := range store.configs {
		if cfg.ChannelItemID != nil && *cfg.ChannelItemID == 7001 {
			assert.Equal(t, 5, cfg.QtyOrdered)
		}
	}
}

func TestImportOrderUnknownStatusMapsToSentinel(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)

	payload := validPayload()
	payload.Status = "quantum_flux"
	view, err := svc.ImportOrder(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, string(commerce.ChannelOrderStatusUnknown), view.Channel.Status)
}

func TestImportOrderRejectsDefectivePayloadBeforePersisting(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)

	payload := validPayload()
	payload.Customer.Email = "nope"
	payload.Items[0].Qty = 0

	_, err := svc.ImportOrder(context.Background(), payload)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	assert.Empty(t, store.orders)
	assert.Empty(t, store.customers)
	assert.Empty(t, store.configs)
}

func TestImportOrderLinksDeliveryMethodByName(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)
	ctx := context.Background()

	method, err := commerce.NewDeliveryMethod("DHL Standard", "DHL")
	require.NoError(t, err)
	require.NoError(t, methodRepo{store}.Create(ctx, nil, method))

	payload := validPayload()
	payload.DeliveryMethod = "DHL Standard"
	view, err := svc.ImportOrder(ctx, payload)
	require.NoError(t, err)

	order := store.orders[view.ID]
	require.NotNil(t, order)
	require.NotNil(t, order.DeliveryMethodID)
	assert.Equal(t, method.ID, *order.DeliveryMethodID)
}

func TestImportOrderUnknownDeliveryMethodIsTolerated(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)

	payload := validPayload()
	payload.DeliveryMethod = "Carrier Pigeon"
	view, err := svc.ImportOrder(context.Background(), payload)
	require.NoError(t, err)

	order := store.orders[view.ID]
	require.NotNil(t, order)
	assert.Nil(t, order.DeliveryMethodID)
}

func TestImportOrderFallsBackToChannelNumber(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)

	payload := validPayload()
	payload.Number = ""
	view, err := svc.ImportOrder(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "CH-9001", view.Number)
}

func TestImportOrderLeavesNothingOnMidImportFailure(t *testing.T) {
	store := newFakeStore()
	svc := newImportService(store)
	store.failOrderUpsert = errors.New("order storage unavailable")

	// Customer and addresses are reconciled before the order upsert; a
	// failure there must take them down with it.
	_, err := svc.ImportOrder(context.Background(), validPayload())

	require.Error(t, err)
	assert.Empty(t, store.customers)
	assert.Empty(t, store.addresses)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.channels)
	assert.Empty(t, store.comments)
	assert.Empty(t, store.brands)
	assert.Empty(t, store.products)
	assert.Empty(t, store.configs)
}
