// Package payment adapts provider webhook notifications to the commerce layer.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	commerceapp "github.com/glossary/backend/internal/application/commerce"
	infraconfig "github.com/glossary/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ commerceapp.WebhookVerifier = (*GumroadVerifier)(nil)

var (
	// ErrMissingSellerID is returned when the ping carries no seller_id
	ErrMissingSellerID = errors.New("gumroad: missing seller_id")
	// ErrSellerMismatch is returned when the seller_id does not match ours
	ErrSellerMismatch = errors.New("gumroad: seller_id mismatch")
	// ErrProductMismatch is returned when the ping is for another product
	ErrProductMismatch = errors.New("gumroad: product_id mismatch")
	// ErrMissingSaleID is returned when the ping carries no sale_id
	ErrMissingSaleID = errors.New("gumroad: missing sale_id")
	// ErrTestPing is returned for test pings. It wraps the commerce
	// sentinel so the webhook acknowledges them without touching
	// purchase state.
	ErrTestPing = fmt.Errorf("gumroad: %w", commerceapp.ErrWebhookTestPing)
)

// GumroadVerifier validates Gumroad ping notifications. Gumroad posts sales
// as form-encoded bodies; authenticity is checked by comparing the seller_id
// against the one configured for the account, which is the scheme Gumroad
// documents for ping consumers.
type GumroadVerifier struct {
	sellerID  string
	productID string
	logger    *zap.Logger
}

// NewGumroadVerifier creates a verifier from configuration
func NewGumroadVerifier(cfg infraconfig.GumroadConfig, logger *zap.Logger) (*GumroadVerifier, error) {
	if cfg.SellerID == "" {
		return nil, errors.New("gumroad seller_id is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GumroadVerifier{
		sellerID:  cfg.SellerID,
		productID: cfg.ProductID,
		logger:    logger,
	}, nil
}

// VerifySale checks the ping's origin fields and extracts the sale
func (v *GumroadVerifier) VerifySale(ctx context.Context, form map[string]string) (*commerceapp.SaleNotification, error) {
	sellerID := form["seller_id"]
	if sellerID == "" {
		return nil, ErrMissingSellerID
	}
	if sellerID != v.sellerID {
		v.logger.Warn("rejected ping from unknown seller", zap.String("seller_id", sellerID))
		return nil, ErrSellerMismatch
	}
	if v.productID != "" && form["product_id"] != "" && form["product_id"] != v.productID {
		return nil, ErrProductMismatch
	}
	if isTrue(form["test"]) {
		return nil, ErrTestPing
	}

	saleID := form["sale_id"]
	if saleID == "" {
		return nil, ErrMissingSaleID
	}

	amount, err := parsePrice(form["price"])
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(form["currency"])
	if currency == "" {
		currency = "USD"
	}

	return &commerceapp.SaleNotification{
		OrderID:  saleID,
		UserID:   buyerID(form),
		Email:    strings.ToLower(strings.TrimSpace(form["email"])),
		Amount:   amount,
		Currency: currency,
		Refunded: isTrue(form["refunded"]),
		Raw:      form,
	}, nil
}

// buyerID pulls the app user ID the checkout page passes through as a
// custom field or URL parameter
func buyerID(form map[string]string) string {
	for _, key := range []string{"custom_fields[user_id]", "url_params[user_id]", "user_id"} {
		if id := form[key]; id != "" {
			return id
		}
	}
	return ""
}

// parsePrice converts Gumroad's cent-denominated price to a decimal amount
func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	cents, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("gumroad: invalid price %q", raw)
	}
	return cents.Div(decimal.NewFromInt(100)), nil
}

func isTrue(raw string) bool {
	return strings.EqualFold(raw, "true") || raw == "1"
}
