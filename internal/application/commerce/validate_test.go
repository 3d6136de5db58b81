package commerce

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldCodes(t *testing.T, err error) map[string]string {
	t.Helper()
	var v *shared.ValidationError
	require.True(t, errors.As(err, &v), "expected a validation error, got %v", err)
	out := make(map[string]string, len(v.Fields))
	for _, f := range v.Fields {
		out[f.Field] = f.Code
	}
	return out
}

func TestValidateInputCollectsAllViolations(t *testing.T) {
	in := CreateCustomerInput{
		Name:  "",
		Email: "not-an-email",
	}
	err := validateInput(&in)
	require.Error(t, err)

	codes := fieldCodes(t, err)
	assert.Equal(t, shared.ErrCodeRequiredField, codes["name"])
	assert.Equal(t, shared.ErrCodeInvalidFormat, codes["email"])
}

func TestCreateAddressInputGeoRules(t *testing.T) {
	lat := decimal.NewFromFloat(52.52)
	lon := decimal.NewFromFloat(13.405)

	t.Run("split form requires both sides", func(t *testing.T) {
		in := CreateAddressInput{
			Kind:     "order",
			Street:   []string{"Unter den Linden 1"},
			Latitude: &lat,
		}
		err := validateInput(&in)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeCrossField, codes["latitude"])
	})

	t.Run("combined and split forms are mutually exclusive", func(t *testing.T) {
		in := CreateAddressInput{
			Kind:     "order",
			Street:   []string{"Unter den Linden 1"},
			Geo:      &GeoInput{Lat: lat, Lon: lon},
			Latitude: &lat, Longitude: &lon,
		}
		err := validateInput(&in)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeCrossField, codes["geo"])
	})

	t.Run("customer kind requires an owner", func(t *testing.T) {
		in := CreateAddressInput{
			Kind:   "customer",
			Street: []string{"Unter den Linden 1"},
		}
		err := validateInput(&in)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeRequiredField, codes["customerId"])
	})

	t.Run("valid input passes", func(t *testing.T) {
		in := CreateAddressInput{
			Kind:   "order",
			Street: []string{"Unter den Linden 1", "c/o Schmidt"},
			Geo:    &GeoInput{Lat: lat, Lon: lon},
		}
		assert.NoError(t, validateInput(&in))
	})
}

func TestOptionalGeoUnmarshal(t *testing.T) {
	t.Run("absent field stays unset", func(t *testing.T) {
		var in UpdateAddressInput
		require.NoError(t, json.Unmarshal([]byte(`{"city":"Berlin"}`), &in))
		assert.False(t, in.Geo.Set)
	})

	t.Run("explicit null is set with nil value", func(t *testing.T) {
		var in UpdateAddressInput
		require.NoError(t, json.Unmarshal([]byte(`{"geo":null}`), &in))
		assert.True(t, in.Geo.Set)
		assert.Nil(t, in.Geo.Value)
	})

	t.Run("object is set with value", func(t *testing.T) {
		var in UpdateAddressInput
		require.NoError(t, json.Unmarshal([]byte(`{"geo":{"lat":"52.52","lon":"13.405"}}`), &in))
		assert.True(t, in.Geo.Set)
		require.NotNil(t, in.Geo.Value)
		assert.True(t, in.Geo.Value.Lat.Equal(decimal.NewFromFloat(52.52)))
	})
}

func TestUpdateAddressInputGeoRules(t *testing.T) {
	lat := decimal.NewFromFloat(48.85)
	lon := decimal.NewFromFloat(2.35)

	t.Run("clearing geo while setting split coordinates is rejected", func(t *testing.T) {
		in := UpdateAddressInput{
			Geo:      OptionalGeo{Set: true, Value: nil},
			Latitude: &lat, Longitude: &lon,
		}
		err := validateInput(&in)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeCrossField, codes["geo"])
	})

	t.Run("half a coordinate pair is rejected", func(t *testing.T) {
		in := UpdateAddressInput{Longitude: &lon}
		err := validateInput(&in)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeCrossField, codes["latitude"])
	})
}

func TestChannelOrderPayloadValidation(t *testing.T) {
	t.Run("defects across the payload are reported together", func(t *testing.T) {
		payload := ChannelOrderPayload{
			ChannelOrderID: 0,
			Customer:       ChannelCustomerPayload{Name: "", Email: "bad"},
			Items:          nil,
		}
		err := validateInput(&payload)
		require.Error(t, err)

		var v *shared.ValidationError
		require.True(t, errors.As(err, &v))
		assert.GreaterOrEqual(t, len(v.Fields), 4)
	})

	t.Run("guest checkout must not carry a channel customer id", func(t *testing.T) {
		id := 101
		payload := validPayload()
		payload.Customer.Guest = true
		payload.Customer.ID = &id
		err := validateInput(&payload)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeCrossField, codes["customer.id"])
	})

	t.Run("non-guest checkout requires a channel customer id", func(t *testing.T) {
		payload := validPayload()
		payload.Customer.Guest = false
		payload.Customer.ID = nil
		err := validateInput(&payload)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeCrossField, codes["customer.id"])
	})

	t.Run("negative item price is reported with its index", func(t *testing.T) {
		payload := validPayload()
		payload.Items[0].Price = decimal.NewFromInt(-1)
		err := validateInput(&payload)
		codes := fieldCodes(t, err)
		assert.Equal(t, shared.ErrCodeInvalidRange, codes["items[0].price"])
	})

	t.Run("valid payload passes", func(t *testing.T) {
		payload := validPayload()
		assert.NoError(t, validateInput(&payload))
	})
}
