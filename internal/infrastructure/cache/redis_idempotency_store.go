package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/glossary/backend/internal/domain/shared"
	"github.com/glossary/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// webhookKeyPrefix namespaces order IDs so the same Redis instance can be
// shared with other caches.
const webhookKeyPrefix = "webhook:order:"

// RedisIdempotencyStore deduplicates webhook deliveries across instances.
// Payment providers retry notifications aggressively, so the processed set
// has to be shared state in multi-instance deployments.
type RedisIdempotencyStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisIdempotencyStore connects to Redis and verifies the connection
func NewRedisIdempotencyStore(cfg config.RedisConfig) (*RedisIdempotencyStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: webhookKeyPrefix,
	}, nil
}

// NewRedisIdempotencyStoreWithClient wraps an existing client, sharing it
// with other components
func NewRedisIdempotencyStoreWithClient(client *redis.Client, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = webhookKeyPrefix
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkProcessed records an order ID with a TTL. SETNX makes the check and
// the write one atomic operation, so concurrent replays cannot both win.
func (s *RedisIdempotencyStore) MarkProcessed(ctx context.Context, orderID string, ttl time.Duration) (bool, error) {
	newlyMarked, err := s.client.SetNX(ctx, s.keyPrefix+orderID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark order as processed: %w", err)
	}
	return newlyMarked, nil
}

// IsProcessed checks whether the order ID was already handled
func (s *RedisIdempotencyStore) IsProcessed(ctx context.Context, orderID string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.keyPrefix+orderID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check processed order: %w", err)
	}
	return exists > 0, nil
}

// Close closes the Redis client
func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

// Ensure RedisIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
