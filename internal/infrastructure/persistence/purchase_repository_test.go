package persistence

import (
	"context"
	"testing"

	"github.com/glossary/backend/internal/domain/commerce"
	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPurchaseTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&commerce.Purchase{})
	require.NoError(t, err)

	return db
}

func mustCreatePurchase(t *testing.T, repo *GormPurchaseRepository, orderID, userID string, amount string) *commerce.Purchase {
	t.Helper()
	purchase, err := commerce.NewPurchase(orderID, userID, decimal.RequireFromString(amount), "USD")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), purchase))
	return purchase
}

func TestPurchaseRepository_SaveAndFind(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	t.Run("saves and finds by order ID", func(t *testing.T) {
		purchase := mustCreatePurchase(t, repo, "GUM-1001", "user_1", "49.99")

		found, err := repo.FindByOrderID(ctx, "GUM-1001")
		require.NoError(t, err)
		assert.Equal(t, purchase.ID, found.ID)
		assert.True(t, found.Amount.Equal(decimal.RequireFromString("49.99")))
		assert.Equal(t, commerce.PurchaseStatusPending, found.Status)
	})

	t.Run("finds by ID", func(t *testing.T) {
		purchase := mustCreatePurchase(t, repo, "GUM-1002", "user_1", "49.99")

		found, err := repo.FindByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, "GUM-1002", found.GumroadOrderID)
	})

	t.Run("missing purchase returns not found", func(t *testing.T) {
		_, err := repo.FindByOrderID(ctx, "GUM-missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("status transition persists", func(t *testing.T) {
		purchase := mustCreatePurchase(t, repo, "GUM-1003", "user_2", "49.99")
		require.NoError(t, purchase.Complete())
		require.NoError(t, repo.Save(ctx, purchase))

		found, err := repo.FindByOrderID(ctx, "GUM-1003")
		require.NoError(t, err)
		assert.True(t, found.IsCompleted())
	})
}

func TestPurchaseRepository_FindByUser(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	mustCreatePurchase(t, repo, "GUM-2001", "user_a", "49.99")
	mustCreatePurchase(t, repo, "GUM-2002", "user_a", "59.99")
	mustCreatePurchase(t, repo, "GUM-2003", "user_b", "49.99")

	purchases, err := repo.FindByUser(ctx, "user_a")
	require.NoError(t, err)
	assert.Len(t, purchases, 2)

	purchases, err = repo.FindByUser(ctx, "user_c")
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestPurchaseRepository_FindRecent(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()

	for i, orderID := range []string{"GUM-3001", "GUM-3002", "GUM-3003", "GUM-3004", "GUM-3005"} {
		purchase := mustCreatePurchase(t, repo, orderID, "user_x", "49.99")
		if i < 3 {
			require.NoError(t, purchase.Complete())
			require.NoError(t, repo.Save(ctx, purchase))
		}
	}

	t.Run("filters by status and paginates", func(t *testing.T) {
		page, err := repo.FindRecent(ctx, commerce.PurchaseStatusCompleted, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, int64(3), page.Total)
		assert.True(t, page.HasMore)

		page, err = repo.FindRecent(ctx, commerce.PurchaseStatusCompleted, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.False(t, page.HasMore)
	})

	t.Run("empty status returns every purchase", func(t *testing.T) {
		page, err := repo.FindRecent(ctx, "", shared.Filter{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, int64(5), page.Total)
		assert.False(t, page.HasMore)
	})
}
