package identity

import "github.com/glossary/backend/internal/domain/shared"

var (
	ErrMissingUserID = shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	ErrInvalidEmail  = shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
)
