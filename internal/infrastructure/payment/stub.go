package payment

import (
	"context"

	commerceapp "github.com/glossary/backend/internal/application/commerce"
	"github.com/glossary/backend/internal/domain/shared"
)

var _ commerceapp.WebhookVerifier = (*UnconfiguredVerifier)(nil)

// UnconfiguredVerifier is wired when no seller ID is configured. Every
// notification is rejected with shared.ErrUnavailable so the webhook
// endpoint stays up but never records a sale it cannot verify.
type UnconfiguredVerifier struct{}

// NewUnconfiguredVerifier creates the placeholder webhook verifier
func NewUnconfiguredVerifier() *UnconfiguredVerifier {
	return &UnconfiguredVerifier{}
}

func (UnconfiguredVerifier) VerifySale(context.Context, map[string]string) (*commerceapp.SaleNotification, error) {
	return nil, shared.ErrUnavailable
}
