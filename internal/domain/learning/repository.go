package learning

import (
	"context"
	"time"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// FavoriteRepository defines the interface for favorite persistence
type FavoriteRepository interface {
	// Add inserts a favorite; adding an existing pair is a no-op
	Add(ctx context.Context, userID string, termID uuid.UUID) error

	// Remove deletes a favorite; removing a missing pair is a no-op
	Remove(ctx context.Context, userID string, termID uuid.UUID) error

	// Exists reports whether the user favorited the term
	Exists(ctx context.Context, userID string, termID uuid.UUID) (bool, error)

	// FindTermsByUser returns the favorited terms, newest favorite first
	FindTermsByUser(ctx context.Context, userID string) ([]catalog.Term, error)

	// DeleteByUser removes all favorites of a user
	DeleteByUser(ctx context.Context, userID string) error
}

// ProgressRepository defines the interface for learning progress persistence
type ProgressRepository interface {
	// MarkLearned records a term as learned; repeat calls are no-ops
	MarkLearned(ctx context.Context, userID string, termID uuid.UUID) error

	// UnmarkLearned removes a learned record; missing pairs are no-ops
	UnmarkLearned(ctx context.Context, userID string, termID uuid.UUID) error

	// FindLearnedTerms returns the terms a user marked as learned
	FindLearnedTerms(ctx context.Context, userID string) ([]catalog.Term, error)

	// CountLearned counts the terms a user marked as learned
	CountLearned(ctx context.Context, userID string) (int64, error)

	// CategoryProgress returns per-category completion for a user.
	// Categories without terms are not included.
	CategoryProgress(ctx context.Context, userID string) ([]CategoryProgress, error)

	// DeleteByUser removes all progress rows of a user
	DeleteByUser(ctx context.Context, userID string) error
}

// ViewRepository defines the interface for term view persistence
type ViewRepository interface {
	// Record upserts a view, keeping the latest timestamp per (user, term)
	Record(ctx context.Context, userID string, termID uuid.UUID, viewedAt time.Time) error

	// ViewTimes returns the raw view timestamps of a user
	ViewTimes(ctx context.Context, userID string) ([]time.Time, error)

	// CountByUser counts distinct terms the user has viewed
	CountByUser(ctx context.Context, userID string) (int64, error)

	// FindRecommended returns unseen terms from the categories the user has
	// been reading, most viewed first, backfilled with globally popular
	// unseen terms up to limit.
	FindRecommended(ctx context.Context, userID string, limit int) ([]catalog.Term, error)

	// DeleteByUser removes all view rows of a user
	DeleteByUser(ctx context.Context, userID string) error
}
