package identity

import (
	"regexp"
	"strings"
	"time"
)

// SubscriptionTier represents the user's access level
type SubscriptionTier string

const (
	TierFree     SubscriptionTier = "free"
	TierLifetime SubscriptionTier = "lifetime"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents an account in the system. The ID is the subject issued by
// the external identity provider, so it is a string rather than a UUID, and
// rows are upserted on every login rather than created once.
type User struct {
	ID               string `gorm:"type:varchar(255);primaryKey"`
	Email            string `gorm:"type:varchar(255);index"`
	FirstName        string `gorm:"type:varchar(100)"`
	LastName         string `gorm:"type:varchar(100)"`
	ProfileImageURL  string `gorm:"type:varchar(500)"`
	SubscriptionTier SubscriptionTier `gorm:"type:varchar(20);not null;default:'free'"`
	LifetimeAccess   bool             `gorm:"not null;default:false"`
	PurchaseDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user from an external auth profile
func NewUser(id, email, firstName, lastName, profileImageURL string) (*User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingUserID
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now()
	return &User{
		ID:               id,
		Email:            strings.ToLower(strings.TrimSpace(email)),
		FirstName:        firstName,
		LastName:         lastName,
		ProfileImageURL:  profileImageURL,
		SubscriptionTier: TierFree,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// RefreshProfile updates the fields mirrored from the identity provider
func (u *User) RefreshProfile(email, firstName, lastName, profileImageURL string) error {
	if email != "" && !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}

	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.FirstName = firstName
	u.LastName = lastName
	u.ProfileImageURL = profileImageURL
	u.UpdatedAt = time.Now()
	return nil
}

// GrantLifetimeAccess marks the user as having purchased lifetime access
func (u *User) GrantLifetimeAccess(purchasedAt time.Time) {
	u.SubscriptionTier = TierLifetime
	u.LifetimeAccess = true
	u.PurchaseDate = &purchasedAt
	u.UpdatedAt = time.Now()
}

// RevokeLifetimeAccess reverts the user to the free tier after a refund
func (u *User) RevokeLifetimeAccess() {
	u.SubscriptionTier = TierFree
	u.LifetimeAccess = false
	u.PurchaseDate = nil
	u.UpdatedAt = time.Now()
}

// HasLifetimeAccess returns true if the user purchased lifetime access
func (u *User) HasLifetimeAccess() bool {
	return u.LifetimeAccess
}
