package identity

import (
	"time"

	"github.com/glossary/backend/internal/domain/identity"
)

// AuthProfile is the profile mirrored from the external identity provider
type AuthProfile struct {
	ID              string `json:"id" binding:"required"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// UserResponse is the profile representation
type UserResponse struct {
	ID               string     `json:"id"`
	Email            string     `json:"email,omitempty"`
	FirstName        string     `json:"first_name,omitempty"`
	LastName         string     `json:"last_name,omitempty"`
	ProfileImageURL  string     `json:"profile_image_url,omitempty"`
	SubscriptionTier string     `json:"subscription_tier"`
	LifetimeAccess   bool       `json:"lifetime_access"`
	PurchaseDate     *time.Time `json:"purchase_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// UserDataExport is the single-document export of everything stored about
// a user
type UserDataExport struct {
	Profile      UserResponse           `json:"profile"`
	Settings     map[string]interface{} `json:"settings"`
	Favorites    []string               `json:"favorites"`
	LearnedTerms []string               `json:"learned_terms"`
	ViewedTerms  int64                  `json:"viewed_terms"`
	ExportedAt   time.Time              `json:"exported_at"`
}

// ToUserResponse converts a domain user to its response
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		ProfileImageURL:  user.ProfileImageURL,
		SubscriptionTier: string(user.SubscriptionTier),
		LifetimeAccess:   user.LifetimeAccess,
		PurchaseDate:     user.PurchaseDate,
		CreatedAt:        user.CreatedAt,
	}
}
