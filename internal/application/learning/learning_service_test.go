package learning

import (
	"context"
	"testing"
	"time"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/learning"
	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Mocks
// ============================================================================

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID string, termID uuid.UUID) error {
	args := m.Called(ctx, userID, termID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID string, termID uuid.UUID) error {
	args := m.Called(ctx, userID, termID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID string, termID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, termID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) FindTermsByUser(ctx context.Context, userID string) ([]catalog.Term, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) MarkLearned(ctx context.Context, userID string, termID uuid.UUID) error {
	args := m.Called(ctx, userID, termID)
	return args.Error(0)
}

func (m *MockProgressRepository) UnmarkLearned(ctx context.Context, userID string, termID uuid.UUID) error {
	args := m.Called(ctx, userID, termID)
	return args.Error(0)
}

func (m *MockProgressRepository) FindLearnedTerms(ctx context.Context, userID string) ([]catalog.Term, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockProgressRepository) CountLearned(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) CategoryProgress(ctx context.Context, userID string) ([]learning.CategoryProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]learning.CategoryProgress), args.Error(1)
}

func (m *MockProgressRepository) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockViewRepository struct {
	mock.Mock
}

func (m *MockViewRepository) Record(ctx context.Context, userID string, termID uuid.UUID, viewedAt time.Time) error {
	args := m.Called(ctx, userID, termID, viewedAt)
	return args.Error(0)
}

func (m *MockViewRepository) ViewTimes(ctx context.Context, userID string) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockViewRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockViewRepository) FindRecommended(ctx context.Context, userID string, limit int) ([]catalog.Term, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockViewRepository) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockTermRepository struct {
	mock.Mock
}

func (m *MockTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Term, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Term), args.Error(1)
}

func (m *MockTermRepository) FindByName(ctx context.Context, name string) (*catalog.Term, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Term), args.Error(1)
}

func (m *MockTermRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Term, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockTermRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Term, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockTermRepository) FindBySubcategory(ctx context.Context, subcategoryID uuid.UUID, filter shared.Filter) ([]catalog.Term, error) {
	args := m.Called(ctx, subcategoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockTermRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]catalog.Term, error) {
	args := m.Called(ctx, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockTermRepository) FindMostViewed(ctx context.Context, limit int) ([]catalog.Term, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Term), args.Error(1)
}

func (m *MockTermRepository) Save(ctx context.Context, term *catalog.Term) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockTermRepository) SetSubcategories(ctx context.Context, termID uuid.UUID, subcategoryIDs []uuid.UUID) error {
	args := m.Called(ctx, termID, subcategoryIDs)
	return args.Error(0)
}

func (m *MockTermRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTermRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTermRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// ============================================================================
// Tests
// ============================================================================

func TestLearningService_AddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("adds favorite for existing term", func(t *testing.T) {
		term, _ := catalog.NewTerm("Attention", "def")
		termRepo := new(MockTermRepository)
		termRepo.On("FindByID", ctx, term.ID).Return(term, nil)
		favRepo := new(MockFavoriteRepository)
		favRepo.On("Add", ctx, "user_1", term.ID).Return(nil)

		svc := NewLearningService(favRepo, new(MockProgressRepository), new(MockViewRepository), termRepo)

		require.NoError(t, svc.AddFavorite(ctx, "user_1", term.ID))
		favRepo.AssertExpectations(t)
	})

	t.Run("fails for missing term", func(t *testing.T) {
		termID := uuid.New()
		termRepo := new(MockTermRepository)
		termRepo.On("FindByID", ctx, termID).Return(nil, shared.ErrNotFound)

		svc := NewLearningService(new(MockFavoriteRepository), new(MockProgressRepository), new(MockViewRepository), termRepo)

		err := svc.AddFavorite(ctx, "user_1", termID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestLearningService_CategoryProgress(t *testing.T) {
	ctx := context.Background()

	progressRepo := new(MockProgressRepository)
	progressRepo.On("CategoryProgress", ctx, "user_1").Return([]learning.CategoryProgress{
		{CategoryName: "NLP", TotalTerms: 10, CompletedTerms: 4, PercentComplete: 40},
		{CategoryName: "Empty", TotalTerms: 0, CompletedTerms: 0},
	}, nil)

	svc := NewLearningService(new(MockFavoriteRepository), progressRepo, new(MockViewRepository), new(MockTermRepository))

	progress, err := svc.CategoryProgress(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, "NLP", progress[0].CategoryName)
}

func TestLearningService_Streak(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	viewRepo := new(MockViewRepository)
	viewRepo.On("ViewTimes", ctx, "user_1").Return([]time.Time{
		now,
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, -2),
	}, nil)

	svc := NewLearningService(new(MockFavoriteRepository), new(MockProgressRepository), viewRepo, new(MockTermRepository))

	streak, err := svc.Streak(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
}

func TestLearningService_Recommendations(t *testing.T) {
	ctx := context.Background()

	terms := make([]catalog.Term, 0, 6)
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		term, _ := catalog.NewTerm(name, "def")
		terms = append(terms, *term)
	}

	viewRepo := new(MockViewRepository)
	viewRepo.On("FindRecommended", ctx, "user_1", 6).Return(terms, nil)

	svc := NewLearningService(new(MockFavoriteRepository), new(MockProgressRepository), viewRepo, new(MockTermRepository))

	recs, err := svc.Recommendations(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, recs, 6)
	viewRepo.AssertExpectations(t)
}

func TestLearningService_Stats(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	favTerm, _ := catalog.NewTerm("Fav", "def")
	favRepo := new(MockFavoriteRepository)
	favRepo.On("FindTermsByUser", ctx, "user_1").Return([]catalog.Term{*favTerm}, nil)
	progressRepo := new(MockProgressRepository)
	progressRepo.On("CountLearned", ctx, "user_1").Return(int64(7), nil)
	viewRepo := new(MockViewRepository)
	viewRepo.On("CountByUser", ctx, "user_1").Return(int64(25), nil)
	viewRepo.On("ViewTimes", ctx, "user_1").Return([]time.Time{now}, nil)

	svc := NewLearningService(favRepo, progressRepo, viewRepo, new(MockTermRepository))

	stats, err := svc.Stats(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, int64(25), stats.TermsViewed)
	assert.Equal(t, int64(7), stats.TermsLearned)
	assert.Equal(t, 1, stats.FavoriteCount)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestLearningService_StatsWithNoActivity(t *testing.T) {
	ctx := context.Background()

	favRepo := new(MockFavoriteRepository)
	favRepo.On("FindTermsByUser", ctx, "user_new").Return([]catalog.Term{}, nil)
	progressRepo := new(MockProgressRepository)
	progressRepo.On("CountLearned", ctx, "user_new").Return(int64(0), nil)
	viewRepo := new(MockViewRepository)
	viewRepo.On("CountByUser", ctx, "user_new").Return(int64(0), nil)
	viewRepo.On("ViewTimes", ctx, "user_new").Return([]time.Time{}, nil)

	svc := NewLearningService(favRepo, progressRepo, viewRepo, new(MockTermRepository))

	stats, err := svc.Stats(ctx, "user_new")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.LongestStreak)
	// an inactive user still gets a timestamp here, not a zero time
	assert.False(t, stats.LastActivityAt.IsZero())
}
