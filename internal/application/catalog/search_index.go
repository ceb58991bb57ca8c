package catalog

import (
	"context"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// TermSearchIndex is the full-text search surface for terms. The Meilisearch
// adapter implements it when a search host is configured; otherwise the
// service falls back to database substring search.
type TermSearchIndex interface {
	// IndexTerm adds or replaces a term document in the index
	IndexTerm(ctx context.Context, term *catalog.Term) error

	// RemoveTerm deletes a term document from the index
	RemoveTerm(ctx context.Context, termID uuid.UUID) error

	// SearchTerms returns matching term IDs in relevance order
	SearchTerms(ctx context.Context, query string, limit int) ([]uuid.UUID, error)
}
