package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer and normalizes email", func(t *testing.T) {
		c, err := NewCustomer("Ada Lovelace", " Ada@Example.COM ")

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", c.Email)
		assert.NotEqual(t, c.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("collects every violation at once", func(t *testing.T) {
		_, err := NewCustomer("", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
		assert.Contains(t, err.Error(), "email is required")
	})
}

func TestCustomerChannelLinkage(t *testing.T) {
	t.Run("non-guest linkage requires channel customer id", func(t *testing.T) {
		c, err := NewCustomer("Ada", "ada@example.com")
		require.NoError(t, err)

		err = c.LinkChannel(intPtr(3), nil, false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requires a channel customer id")
	})

	t.Run("guest linkage must not carry channel customer id", func(t *testing.T) {
		c, err := NewCustomer("Ada", "ada@example.com")
		require.NoError(t, err)

		err = c.LinkChannel(intPtr(3), intPtr(42), true)
		assert.Error(t, err)
	})

	t.Run("accepts well-formed linkages", func(t *testing.T) {
		c, err := NewCustomer("Ada", "ada@example.com")
		require.NoError(t, err)

		assert.NoError(t, c.LinkChannel(intPtr(3), intPtr(42), false))
		assert.NoError(t, c.LinkChannel(intPtr(3), nil, true))
	})
}

func TestParseChannelOrderStatus(t *testing.T) {
	t.Run("recognizes channel vocabulary", func(t *testing.T) {
		assert.Equal(t, ChannelOrderStatusShipped, ParseChannelOrderStatus("Shipped"))
		assert.Equal(t, ChannelOrderStatusAwaitingPayment, ParseChannelOrderStatus("awaiting_payment"))
	})

	t.Run("maps unrecognized input to the unknown sentinel", func(t *testing.T) {
		assert.Equal(t, ChannelOrderStatusUnknown, ParseChannelOrderStatus("half_shipped_maybe"))
		assert.Equal(t, ChannelOrderStatusUnknown, ParseChannelOrderStatus(""))
	})
}
