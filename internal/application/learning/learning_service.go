package learning

import (
	"context"
	"time"

	"github.com/glossary/backend/internal/application/catalog"
	domaincatalog "github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/learning"
	"github.com/google/uuid"
)

// recommendationLimit caps how many terms a recommendation request returns
const recommendationLimit = 6

// LearningStats summarizes a user's activity
type LearningStats struct {
	TermsViewed    int64     `json:"terms_viewed"`
	TermsLearned   int64     `json:"terms_learned"`
	FavoriteCount  int       `json:"favorite_count"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// LearningService handles favorites, progress, streaks and recommendations
type LearningService struct {
	favoriteRepo learning.FavoriteRepository
	progressRepo learning.ProgressRepository
	viewRepo     learning.ViewRepository
	termRepo     domaincatalog.TermRepository
}

// NewLearningService creates a new LearningService
func NewLearningService(
	favoriteRepo learning.FavoriteRepository,
	progressRepo learning.ProgressRepository,
	viewRepo learning.ViewRepository,
	termRepo domaincatalog.TermRepository,
) *LearningService {
	return &LearningService{
		favoriteRepo: favoriteRepo,
		progressRepo: progressRepo,
		viewRepo:     viewRepo,
		termRepo:     termRepo,
	}
}

// AddFavorite marks a term as a favorite. Adding an existing favorite is a
// no-op.
func (s *LearningService) AddFavorite(ctx context.Context, userID string, termID uuid.UUID) error {
	if _, err := s.termRepo.FindByID(ctx, termID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(ctx, userID, termID)
}

// RemoveFavorite removes a favorite. Removing a missing pair is a no-op.
func (s *LearningService) RemoveFavorite(ctx context.Context, userID string, termID uuid.UUID) error {
	return s.favoriteRepo.Remove(ctx, userID, termID)
}

// IsFavorite reports whether the user favorited the term
func (s *LearningService) IsFavorite(ctx context.Context, userID string, termID uuid.UUID) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, termID)
}

// ListFavorites returns the user's favorited terms, newest first
func (s *LearningService) ListFavorites(ctx context.Context, userID string) ([]catalog.TermListResponse, error) {
	terms, err := s.favoriteRepo.FindTermsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toListResponses(terms), nil
}

// MarkLearned records a term as learned
func (s *LearningService) MarkLearned(ctx context.Context, userID string, termID uuid.UUID) error {
	if _, err := s.termRepo.FindByID(ctx, termID); err != nil {
		return err
	}
	return s.progressRepo.MarkLearned(ctx, userID, termID)
}

// UnmarkLearned removes a learned record
func (s *LearningService) UnmarkLearned(ctx context.Context, userID string, termID uuid.UUID) error {
	return s.progressRepo.UnmarkLearned(ctx, userID, termID)
}

// ListLearned returns the terms the user marked as learned
func (s *LearningService) ListLearned(ctx context.Context, userID string) ([]catalog.TermListResponse, error) {
	terms, err := s.progressRepo.FindLearnedTerms(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toListResponses(terms), nil
}

// CategoryProgress returns per-category completion, excluding categories
// without terms
func (s *LearningService) CategoryProgress(ctx context.Context, userID string) ([]learning.CategoryProgress, error) {
	progress, err := s.progressRepo.CategoryProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	withTerms := make([]learning.CategoryProgress, 0, len(progress))
	for _, p := range progress {
		if p.TotalTerms > 0 {
			withTerms = append(withTerms, p)
		}
	}
	return withTerms, nil
}

// Streak computes the user's activity streak from their view history
func (s *LearningService) Streak(ctx context.Context, userID string) (learning.Streak, error) {
	viewTimes, err := s.viewRepo.ViewTimes(ctx, userID)
	if err != nil {
		return learning.Streak{}, err
	}
	return learning.ComputeStreak(viewTimes, time.Now()), nil
}

// Recommendations suggests unseen terms, at most six per request
func (s *LearningService) Recommendations(ctx context.Context, userID string) ([]catalog.TermListResponse, error) {
	terms, err := s.viewRepo.FindRecommended(ctx, userID, recommendationLimit)
	if err != nil {
		return nil, err
	}
	return toListResponses(terms), nil
}

// Stats aggregates the user's learning activity
func (s *LearningService) Stats(ctx context.Context, userID string) (*LearningStats, error) {
	viewed, err := s.viewRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	learned, err := s.progressRepo.CountLearned(ctx, userID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepo.FindTermsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	viewTimes, err := s.viewRepo.ViewTimes(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak := learning.ComputeStreak(viewTimes, time.Now())

	return &LearningStats{
		TermsViewed:    viewed,
		TermsLearned:   learned,
		FavoriteCount:  len(favorites),
		CurrentStreak:  streak.CurrentStreak,
		LongestStreak:  streak.LongestStreak,
		LastActivityAt: streak.LastActivityDate,
	}, nil
}

func toListResponses(terms []domaincatalog.Term) []catalog.TermListResponse {
	responses := make([]catalog.TermListResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, catalog.ToTermListResponse(&terms[i]))
	}
	return responses
}
