package identity

import (
	"context"

	"github.com/glossary/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by the external auth subject
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll finds all users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Upsert inserts the user or refreshes the profile fields of an
	// existing row, keyed by ID. Access fields are left untouched on
	// conflict.
	Upsert(ctx context.Context, user *User) error

	// Save persists the full user row
	Save(ctx context.Context, user *User) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SettingsRepository defines the interface for user settings persistence
type SettingsRepository interface {
	// FindByUser returns the settings row for a user, or shared.ErrNotFound
	FindByUser(ctx context.Context, userID string) (*UserSettings, error)

	// Save creates or updates a settings row
	Save(ctx context.Context, settings *UserSettings) error

	// DeleteByUser removes the settings row for a user
	DeleteByUser(ctx context.Context, userID string) error
}
