package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	catalogapp "github.com/glossary/backend/internal/application/catalog"
	"github.com/glossary/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const (
	// popularKeyPrefix namespaces cached listings per requested limit
	popularKeyPrefix = "popular_terms:"

	// popularDefaultTTL bounds how stale the ranking can get
	popularDefaultTTL = 5 * time.Minute
)

// RedisPopularTermsCache caches the most-viewed term listing. View counters
// change on every term read, so recomputing the ranking per request is
// wasted work; a short TTL keeps the listing fresh enough.
type RedisPopularTermsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPopularTermsCache connects to Redis and verifies the connection
func NewRedisPopularTermsCache(cfg config.RedisConfig) (*RedisPopularTermsCache, error) {
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

	return &RedisPopularTermsCache{
		client: client,
		ttl:    popularDefaultTTL,
	}, nil
}

// NewRedisPopularTermsCacheWithClient wraps an existing client, sharing it
// with other components. A non-positive ttl uses the default.
func NewRedisPopularTermsCacheWithClient(client *redis.Client, ttl time.Duration) *RedisPopularTermsCache {
	if ttl <= 0 {
		ttl = popularDefaultTTL
	}
	return &RedisPopularTermsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached listing for the limit, or ok=false on a miss
func (c *RedisPopularTermsCache) Get(ctx context.Context, limit int) ([]catalogapp.TermListResponse, bool, error) {
	payload, err := c.client.Get(ctx, popularKey(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read popular terms cache: %w", err)
	}

	var terms []catalogapp.TermListResponse
	if err := json.Unmarshal(payload, &terms); err != nil {
		// A payload from an older encoding counts as a miss
		return nil, false, nil
	}
	return terms, true, nil
}

// Set stores the listing for the limit with the configured TTL
func (c *RedisPopularTermsCache) Set(ctx context.Context, limit int, terms []catalogapp.TermListResponse) error {
	payload, err := json.Marshal(terms)
	if err != nil {
		return fmt.Errorf("failed to encode popular terms: %w", err)
	}
	if err := c.client.Set(ctx, popularKey(limit), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write popular terms cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached listing regardless of limit
func (c *RedisPopularTermsCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, popularKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to drop popular terms key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan popular terms keys: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisPopularTermsCache) Close() error {
	return c.client.Close()
}

func popularKey(limit int) string {
	return fmt.Sprintf("%s%d", popularKeyPrefix, limit)
}

// Ensure RedisPopularTermsCache implements PopularTermsCache
var _ catalogapp.PopularTermsCache = (*RedisPopularTermsCache)(nil)
