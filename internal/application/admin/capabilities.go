package admin

import (
	"context"

	"github.com/glossary/backend/internal/domain/shared"
)

// The capability interfaces below define admin surfaces that are part of the
// API contract but have no backing implementation yet. The placeholder
// implementations return shared.ErrNotImplemented so clients get a stable
// error code instead of a 404.

// ModerationQueue reviews user-submitted content before publication
type ModerationQueue interface {
	ListPending(ctx context.Context) ([]interface{}, error)
	Approve(ctx context.Context, submissionID string) error
	Reject(ctx context.Context, submissionID string, reason string) error
}

// FeedbackStore collects user feedback on terms and definitions
type FeedbackStore interface {
	Submit(ctx context.Context, userID string, termID string, message string) error
	List(ctx context.Context, filter shared.Filter) ([]interface{}, error)
}

// AchievementTracker awards badges for learning milestones
type AchievementTracker interface {
	ListForUser(ctx context.Context, userID string) ([]interface{}, error)
	Evaluate(ctx context.Context, userID string) error
}

// QuizEngine generates and grades quizzes from glossary content
type QuizEngine interface {
	Generate(ctx context.Context, userID string, categoryID string) (interface{}, error)
	Grade(ctx context.Context, userID string, quizID string, answers map[string]string) (interface{}, error)
}

// UnimplementedModerationQueue is the placeholder ModerationQueue
type UnimplementedModerationQueue struct{}

func (UnimplementedModerationQueue) ListPending(context.Context) ([]interface{}, error) {
	return nil, shared.ErrNotImplemented
}

func (UnimplementedModerationQueue) Approve(context.Context, string) error {
	return shared.ErrNotImplemented
}

func (UnimplementedModerationQueue) Reject(context.Context, string, string) error {
	return shared.ErrNotImplemented
}

// UnimplementedFeedbackStore is the placeholder FeedbackStore
type UnimplementedFeedbackStore struct{}

func (UnimplementedFeedbackStore) Submit(context.Context, string, string, string) error {
	return shared.ErrNotImplemented
}

func (UnimplementedFeedbackStore) List(context.Context, shared.Filter) ([]interface{}, error) {
	return nil, shared.ErrNotImplemented
}

// UnimplementedAchievementTracker is the placeholder AchievementTracker
type UnimplementedAchievementTracker struct{}

func (UnimplementedAchievementTracker) ListForUser(context.Context, string) ([]interface{}, error) {
	return nil, shared.ErrNotImplemented
}

func (UnimplementedAchievementTracker) Evaluate(context.Context, string) error {
	return shared.ErrNotImplemented
}

// UnimplementedQuizEngine is the placeholder QuizEngine
type UnimplementedQuizEngine struct{}

func (UnimplementedQuizEngine) Generate(context.Context, string, string) (interface{}, error) {
	return nil, shared.ErrNotImplemented
}

func (UnimplementedQuizEngine) Grade(context.Context, string, string, map[string]string) (interface{}, error) {
	return nil, shared.ErrNotImplemented
}

var (
	_ ModerationQueue    = UnimplementedModerationQueue{}
	_ FeedbackStore      = UnimplementedFeedbackStore{}
	_ AchievementTracker = UnimplementedAchievementTracker{}
	_ QuizEngine         = UnimplementedQuizEngine{}
)
