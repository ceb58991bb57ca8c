package catalog

import (
	"context"

	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TermRepository defines the interface for term persistence
type TermRepository interface {
	// FindByID finds a term by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Term, error)

	// FindByName finds a term by its exact name
	FindByName(ctx context.Context, name string) (*Term, error)

	// FindAll finds all terms matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Term, error)

	// FindByCategory finds all terms in a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Term, error)

	// FindBySubcategory finds all terms attached to a subcategory
	FindBySubcategory(ctx context.Context, subcategoryID uuid.UUID, filter shared.Filter) ([]Term, error)

	// Search finds terms whose name or definition matches the query,
	// case-insensitive substring match
	Search(ctx context.Context, query string, filter shared.Filter) ([]Term, error)

	// FindMostViewed returns terms ordered by view count descending
	FindMostViewed(ctx context.Context, limit int) ([]Term, error)

	// Save creates or updates a term
	Save(ctx context.Context, term *Term) error

	// SetSubcategories replaces the term's subcategory associations
	SetSubcategories(ctx context.Context, termID uuid.UUID, subcategoryIDs []uuid.UUID) error

	// IncrementViewCount bumps the denormalized view counter by one
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// DeleteCascade removes the term along with its subcategory links,
	// views, favorites and progress rows in a single transaction
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	// Count counts terms matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
