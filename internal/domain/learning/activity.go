package learning

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a term a user wants to come back to. The (user, term) pair
// is unique and adding an existing favorite is a no-op.
type Favorite struct {
	UserID    string    `gorm:"type:varchar(255);primaryKey"`
	TermID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// Progress records that a user marked a term as learned. Same uniqueness and
// idempotency semantics as Favorite.
type Progress struct {
	UserID    string    `gorm:"type:varchar(255);primaryKey"`
	TermID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LearnedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Progress) TableName() string {
	return "user_progress"
}

// TermView is the activity log behind streaks and recommendations. One row
// per (user, term); repeated views move ViewedAt forward.
type TermView struct {
	UserID   string    `gorm:"type:varchar(255);primaryKey"`
	TermID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ViewedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TermView) TableName() string {
	return "term_views"
}

// CategoryProgress summarizes a user's completion of one category
type CategoryProgress struct {
	CategoryID      uuid.UUID `json:"category_id"`
	CategoryName    string    `json:"category_name"`
	TotalTerms      int       `json:"total_terms"`
	CompletedTerms  int       `json:"completed_terms"`
	PercentComplete int       `json:"percent_complete"`
}
