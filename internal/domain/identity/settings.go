package identity

import (
	"time"

	"gorm.io/datatypes"
)

// UserSettings holds per-user preferences as a free-form JSON document.
// The row is created lazily with defaults the first time settings are read.
type UserSettings struct {
	UserID      string         `gorm:"type:varchar(255);primaryKey"`
	Preferences datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (UserSettings) TableName() string {
	return "user_settings"
}

// DefaultPreferences returns the preference document for a fresh settings row
func DefaultPreferences() map[string]interface{} {
	return map[string]interface{}{
		"theme":               "system",
		"email_notifications": true,
		"daily_goal":          5,
	}
}
