package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/glossary/backend/internal/domain/identity"
	"github.com/glossary/backend/internal/domain/learning"
	"github.com/glossary/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService handles profiles, settings and user-data lifecycle
type UserService struct {
	userRepo     identity.UserRepository
	settingsRepo identity.SettingsRepository
	favoriteRepo learning.FavoriteRepository
	progressRepo learning.ProgressRepository
	viewRepo     learning.ViewRepository
	db           *gorm.DB
	logger       *zap.Logger
}

// NewUserService creates a new UserService. db is used to scope user-data
// deletion in one transaction.
func NewUserService(
	userRepo identity.UserRepository,
	settingsRepo identity.SettingsRepository,
	favoriteRepo learning.FavoriteRepository,
	progressRepo learning.ProgressRepository,
	viewRepo learning.ViewRepository,
	db *gorm.DB,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		favoriteRepo: favoriteRepo,
		progressRepo: progressRepo,
		viewRepo:     viewRepo,
		db:           db,
		logger:       logger,
	}
}

// SyncFromAuth upserts the user row from an external auth profile. Called on
// every authenticated request path that needs a user row, so it has to be
// cheap and idempotent.
func (s *UserService) SyncFromAuth(ctx context.Context, req AuthProfile) (*UserResponse, error) {
	user, err := identity.NewUser(req.ID, req.Email, req.FirstName, req.LastName, req.ProfileImageURL)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	// re-read so access fields reflect the stored row, not the fresh struct
	stored, err := s.userRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(stored), nil
}

// GetProfile returns the user's profile
func (s *UserService) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetSettings returns the user's settings, creating the row with defaults
// on first read
func (s *UserService) GetSettings(ctx context.Context, userID string) (map[string]interface{}, error) {
	settings, err := s.settingsRepo.FindByUser(ctx, userID)
	if errors.Is(err, shared.ErrNotFound) {
		return s.createDefaultSettings(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	var preferences map[string]interface{}
	if err := json.Unmarshal(settings.Preferences, &preferences); err != nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Stored preferences are not valid JSON")
	}
	return preferences, nil
}

// UpdateSettings merges the given preferences into the user's settings
func (s *UserService) UpdateSettings(ctx context.Context, userID string, updates map[string]interface{}) (map[string]interface{}, error) {
	if len(updates) == 0 {
		return s.GetSettings(ctx, userID)
	}

	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	for key, value := range updates {
		current[key] = value
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.settingsRepo.Save(ctx, &identity.UserSettings{
		UserID:      userID,
		Preferences: raw,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}
	return current, nil
}

// ExportData composes everything stored about a user into one document
func (s *UserService) ExportData(ctx context.Context, userID string) (*UserDataExport, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	favorites, err := s.favoriteRepo.FindTermsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	learned, err := s.progressRepo.FindLearnedTerms(ctx, userID)
	if err != nil {
		return nil, err
	}
	viewed, err := s.viewRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	export := &UserDataExport{
		Profile:     *ToUserResponse(user),
		Settings:    settings,
		ViewedTerms: viewed,
		ExportedAt:  time.Now(),
	}
	for _, term := range favorites {
		export.Favorites = append(export.Favorites, term.Name)
	}
	for _, term := range learned {
		export.LearnedTerms = append(export.LearnedTerms, term.Name)
	}
	return export, nil
}

// DeleteData removes the user's activity and settings in one transaction.
// The profile row itself stays so a later login does not resurrect stale
// access state.
func (s *UserService) DeleteData(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			"DELETE FROM favorites WHERE user_id = ?",
			"DELETE FROM user_progress WHERE user_id = ?",
			"DELETE FROM term_views WHERE user_id = ?",
			"DELETE FROM user_settings WHERE user_id = ?",
		} {
			if err := tx.Exec(stmt, userID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("user data deleted", zap.String("user_id", userID))
	return nil
}

// createDefaultSettings writes and returns the default preference document
func (s *UserService) createDefaultSettings(ctx context.Context, userID string) (map[string]interface{}, error) {
	defaults := identity.DefaultPreferences()
	raw, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.settingsRepo.Save(ctx, &identity.UserSettings{
		UserID:      userID,
		Preferences: raw,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return nil, err
	}
	return defaults, nil
}
