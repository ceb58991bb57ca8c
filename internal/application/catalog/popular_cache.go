package catalog

import "context"

// PopularTermsCache is a read-through cache for the most-viewed listing.
// The Redis adapter implements it when a cache host is configured;
// otherwise the service hits the database on every request. The ranking
// tolerates short staleness, so entries expire on a TTL rather than being
// invalidated on every view.
type PopularTermsCache interface {
	// Get returns the cached listing for the limit. The second return is
	// false on a cache miss.
	Get(ctx context.Context, limit int) ([]TermListResponse, bool, error)

	// Set stores the listing for the limit
	Set(ctx context.Context, limit int, terms []TermListResponse) error

	// Invalidate drops all cached listings
	Invalidate(ctx context.Context) error
}
