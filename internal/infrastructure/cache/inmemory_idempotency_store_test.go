package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("marks new order as processed", func(t *testing.T) {
		newlyMarked, err := store.MarkProcessed(ctx, "GUM-1001", time.Hour)
		require.NoError(t, err)
		assert.True(t, newlyMarked)
	})

	t.Run("rejects replayed order", func(t *testing.T) {
		newlyMarked, err := store.MarkProcessed(ctx, "GUM-1002", time.Hour)
		require.NoError(t, err)
		assert.True(t, newlyMarked)

		newlyMarked, err = store.MarkProcessed(ctx, "GUM-1002", time.Hour)
		require.NoError(t, err)
		assert.False(t, newlyMarked)
	})

	t.Run("allows reprocessing after expiry", func(t *testing.T) {
		newlyMarked, err := store.MarkProcessed(ctx, "GUM-1003", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, newlyMarked)

		time.Sleep(20 * time.Millisecond)

		newlyMarked, err = store.MarkProcessed(ctx, "GUM-1003", time.Hour)
		require.NoError(t, err)
		assert.True(t, newlyMarked)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "GUM-2001")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "GUM-2001", time.Hour)
	require.NoError(t, err)

	processed, err = store.IsProcessed(ctx, "GUM-2001")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentMarks(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()
	const workers = 16

	var wg sync.WaitGroup
	wins := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			newlyMarked, err := store.MarkProcessed(ctx, "GUM-3001", time.Hour)
			assert.NoError(t, err)
			wins <- newlyMarked
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for win := range wins {
		if win {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent mark should win")
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
