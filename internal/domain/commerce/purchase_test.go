package commerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	amount := decimal.NewFromFloat(49.99)

	t.Run("creates pending purchase", func(t *testing.T) {
		p, err := NewPurchase("ord_123", "ext-1", amount, "usd")
		require.NoError(t, err)

		assert.Equal(t, "ord_123", p.GumroadOrderID)
		assert.Equal(t, PurchaseStatusPending, p.Status)
		assert.Equal(t, "USD", p.Currency)
		assert.Equal(t, ProviderGumroad, p.Provider)
		assert.True(t, amount.Equal(p.Amount))
	})

	t.Run("rejects empty order ID", func(t *testing.T) {
		_, err := NewPurchase(" ", "ext-1", amount, "USD")
		require.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewPurchase("ord_1", "ext-1", decimal.NewFromInt(-1), "USD")
		require.Error(t, err)
	})

	t.Run("rejects malformed currency", func(t *testing.T) {
		_, err := NewPurchase("ord_1", "ext-1", amount, "dollars")
		require.Error(t, err)
	})
}

func TestPurchaseTransitions(t *testing.T) {
	newPurchase := func(t *testing.T) *Purchase {
		p, err := NewPurchase("ord_9", "ext-2", decimal.NewFromInt(30), "EUR")
		require.NoError(t, err)
		return p
	}

	t.Run("complete then refund", func(t *testing.T) {
		p := newPurchase(t)
		require.NoError(t, p.Complete())
		assert.True(t, p.IsCompleted())

		require.NoError(t, p.Refund())
		assert.Equal(t, PurchaseStatusRefunded, p.Status)
		assert.False(t, p.IsCompleted())
	})

	t.Run("cannot refund a pending purchase", func(t *testing.T) {
		p := newPurchase(t)
		require.Error(t, p.Refund())
	})

	t.Run("cannot complete a refunded purchase", func(t *testing.T) {
		p := newPurchase(t)
		require.NoError(t, p.Complete())
		require.NoError(t, p.Refund())
		require.Error(t, p.Complete())
	})
}
