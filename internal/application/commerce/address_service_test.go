package commerce

import (
	"context"
	"errors"
	"testing"

	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAddressService(store *fakeStore) *AddressService {
	return NewAddressService(addressRepo{store}, store, zap.NewNop())
}

func seedGeocodedAddress(t *testing.T, store *fakeStore) *commerce.Address {
	t.Helper()
	lat := decimal.NewFromFloat(52.52)
	lon := decimal.NewFromFloat(13.405)
	address, err := commerce.NewAddress(commerce.AddressKindOrder, "Unter den Linden 1", "Berlin", "DE")
	require.NoError(t, err)
	address.Zip = "10117"
	address.Latitude = &lat
	address.Longitude = &lon
	cp := *address
	store.addresses[address.ID] = &cp
	return address
}

func TestAddressUpdateGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("changing a location field without touching stale coordinates is rejected", func(t *testing.T) {
		store := newFakeStore()
		svc := newAddressService(store)
		address := seedGeocodedAddress(t, store)

		_, err := svc.Update(ctx, address.ID, UpdateAddressInput{City: strPtr("Hamburg")})
		require.Error(t, err)

		var v *shared.ValidationError
		require.True(t, errors.As(err, &v))
		require.Len(t, v.Fields, 1)
		assert.Equal(t, shared.ErrCodeStaleCoordinates, v.Fields[0].Code)

		// nothing was written
		assert.Equal(t, "Berlin", store.addresses[address.ID].City)
	})

	t.Run("changing a location field with fresh coordinates is accepted", func(t *testing.T) {
		store := newFakeStore()
		svc := newAddressService(store)
		address := seedGeocodedAddress(t, store)

		lat := decimal.NewFromFloat(53.55)
		lon := decimal.NewFromFloat(9.99)
		updated, err := svc.Update(ctx, address.ID, UpdateAddressInput{
			City:     strPtr("Hamburg"),
			Latitude: &lat, Longitude: &lon,
		})
		require.NoError(t, err)
		assert.Equal(t, "Hamburg", updated.City)
		require.NotNil(t, updated.Geo())
		assert.True(t, updated.Geo().Lat.Equal(lat))
	})

	t.Run("changing a location field while clearing coordinates is accepted", func(t *testing.T) {
		store := newFakeStore()
		svc := newAddressService(store)
		address := seedGeocodedAddress(t, store)

		updated, err := svc.Update(ctx, address.ID, UpdateAddressInput{
			City: strPtr("Hamburg"),
			Geo:  OptionalGeo{Set: true, Value: nil},
		})
		require.NoError(t, err)
		assert.Equal(t, "Hamburg", updated.City)
		assert.False(t, updated.HasGeo())
	})

	t.Run("non-location fields never trip the guard", func(t *testing.T) {
		store := newFakeStore()
		svc := newAddressService(store)
		address := seedGeocodedAddress(t, store)

		updated, err := svc.Update(ctx, address.ID, UpdateAddressInput{
			FirstName: strPtr("Ada"),
			Phone:     strPtr("+49 30 1234"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", updated.FirstName)
		assert.True(t, updated.HasGeo())
	})

	t.Run("addresses without coordinates are unaffected", func(t *testing.T) {
		store := newFakeStore()
		svc := newAddressService(store)
		address, err := commerce.NewAddress(commerce.AddressKindOrder, "Friedrichstr. 43", "Berlin", "DE")
		require.NoError(t, err)
		cp := *address
		store.addresses[address.ID] = &cp

		updated, err := svc.Update(ctx, address.ID, UpdateAddressInput{City: strPtr("Hamburg")})
		require.NoError(t, err)
		assert.Equal(t, "Hamburg", updated.City)
	})

	t.Run("unchanged location values do not trip the guard", func(t *testing.T) {
		store := newFakeStore()
		svc := newAddressService(store)
		address := seedGeocodedAddress(t, store)

		// writes the same city back
		updated, err := svc.Update(ctx, address.ID, UpdateAddressInput{City: strPtr("Berlin")})
		require.NoError(t, err)
		assert.True(t, updated.HasGeo())
	})
}

func TestAddressCreateEncodesVirtualFields(t *testing.T) {
	store := newFakeStore()
	svc := newAddressService(store)

	lat := decimal.NewFromFloat(48.85)
	lon := decimal.NewFromFloat(2.35)
	created, err := svc.Create(context.Background(), CreateAddressInput{
		Kind:    "order",
		Street:  []string{"5 Avenue Anatole", "Étage 2"},
		City:    "Paris",
		Country: "FR",
		Geo:     &GeoInput{Lat: lat, Lon: lon},
	})
	require.NoError(t, err)

	stored := store.addresses[created.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "5 Avenue Anatole", stored.Street1)
	assert.Equal(t, "Étage 2", stored.Street2)
	require.NotNil(t, stored.Latitude)
	require.NotNil(t, stored.Longitude)
	assert.True(t, stored.Latitude.Equal(lat))
}

func TestAddressUpdateStreetNeverClearsStoredSecondLine(t *testing.T) {
	store := newFakeStore()
	svc := newAddressService(store)

	address, err := commerce.NewAddress(commerce.AddressKindOrder, "Friedrichstr. 43", "Berlin", "DE")
	require.NoError(t, err)
	address.Street2 = "Hinterhaus"
	cp := *address
	store.addresses[address.ID] = &cp

	updated, err := svc.Update(context.Background(), address.ID, UpdateAddressInput{
		Street: []string{"Torstr. 12"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Torstr. 12", updated.Street1)
	assert.Equal(t, "Hinterhaus", updated.Street2)
}
