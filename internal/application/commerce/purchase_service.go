package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glossary/backend/internal/domain/commerce"
	"github.com/glossary/backend/internal/domain/identity"
	"github.com/glossary/backend/internal/domain/shared"
	"github.com/glossary/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrWebhookVerificationFailed is returned when the provider notification fails verification
	ErrWebhookVerificationFailed = errors.New("webhook: verification failed")
	// ErrWebhookUserNotFound is returned when the notification references an unknown user
	ErrWebhookUserNotFound = errors.New("webhook: user not found")
	// ErrWebhookTestPing marks provider test pings. Verifiers return it so
	// the webhook can be acknowledged without touching purchase state.
	ErrWebhookTestPing = errors.New("webhook: test ping")
)

// WebhookVerifier validates a raw provider notification and extracts the
// sale fields. The Gumroad adapter implements it.
type WebhookVerifier interface {
	VerifySale(ctx context.Context, form map[string]string) (*SaleNotification, error)
}

// SaleNotification is a verified provider sale event
type SaleNotification struct {
	OrderID  string
	UserID   string
	Email    string
	Amount   decimal.Decimal
	Currency string
	Refunded bool
	Raw      map[string]string
}

// WebhookResult reports how a notification was handled
type WebhookResult struct {
	OrderID          string `json:"order_id"`
	AlreadyProcessed bool   `json:"already_processed"`
	Refunded         bool   `json:"refunded"`
	TestPing         bool   `json:"test_ping"`
}

// PurchaseService processes payment webhooks and serves purchase queries
type PurchaseService struct {
	purchaseRepo     commerce.PurchaseRepository
	userRepo         identity.UserRepository
	verifier         WebhookVerifier
	idempotencyStore shared.IdempotencyStore
	idempotencyTTL   time.Duration
	db               *gorm.DB
	logger           *zap.Logger
	businessMetrics  *telemetry.BusinessMetrics
}

// SetBusinessMetrics sets the business metrics collector
func (s *PurchaseService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

func (s *PurchaseService) recordPurchase(ctx context.Context, outcome telemetry.PurchaseOutcome, sale *SaleNotification) {
	if s.businessMetrics == nil {
		return
	}
	s.businessMetrics.RecordPurchase(ctx, outcome, sale.Currency)
	if outcome == telemetry.PurchaseOutcomeCompleted {
		s.businessMetrics.RecordPurchaseAmount(ctx, sale.Amount, sale.Currency)
	}
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo commerce.PurchaseRepository,
	userRepo identity.UserRepository,
	verifier WebhookVerifier,
	idempotencyStore shared.IdempotencyStore,
	db *gorm.DB,
	logger *zap.Logger,
) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		purchaseRepo:     purchaseRepo,
		userRepo:         userRepo,
		verifier:         verifier,
		idempotencyStore: idempotencyStore,
		idempotencyTTL:   shared.DefaultIdempotencyConfig().TTL,
		db:               db,
		logger:           logger,
	}
}

// HandleWebhook verifies and processes a provider notification. Replays are
// short-circuited by the idempotency store and, failing that, by the unique
// order ID on the purchase row.
func (s *PurchaseService) HandleWebhook(ctx context.Context, form map[string]string) (*WebhookResult, error) {
	sale, err := s.verifier.VerifySale(ctx, form)
	if err != nil {
		if errors.Is(err, ErrWebhookTestPing) {
			s.logger.Info("test ping acknowledged")
			return &WebhookResult{TestPing: true}, nil
		}
		s.logger.Warn("webhook verification failed", zap.Error(err))
		if s.businessMetrics != nil {
			s.businessMetrics.RecordPurchase(ctx, telemetry.PurchaseOutcomeRejected, "")
		}
		return nil, fmt.Errorf("%w: %v", ErrWebhookVerificationFailed, err)
	}

	s.logger.Info("sale notification received",
		zap.String("order_id", sale.OrderID),
		zap.String("user_id", sale.UserID),
		zap.String("amount", sale.Amount.String()),
		zap.String("currency", sale.Currency),
		zap.Bool("refunded", sale.Refunded))

	if s.idempotencyStore != nil {
		newlyMarked, err := s.idempotencyStore.MarkProcessed(ctx, sale.OrderID, s.idempotencyTTL)
		if err != nil {
			// dedup store trouble must not drop a sale; the DB catches replays
			s.logger.Warn("idempotency store unavailable", zap.Error(err))
		} else if !newlyMarked && !sale.Refunded {
			s.recordPurchase(ctx, telemetry.PurchaseOutcomeDuplicate, sale)
			return &WebhookResult{OrderID: sale.OrderID, AlreadyProcessed: true}, nil
		}
	}

	if sale.Refunded {
		return s.handleRefund(ctx, sale)
	}
	return s.handleSale(ctx, sale)
}

// handleSale records the purchase and grants lifetime access atomically
func (s *PurchaseService) handleSale(ctx context.Context, sale *SaleNotification) (*WebhookResult, error) {
	if existing, err := s.purchaseRepo.FindByOrderID(ctx, sale.OrderID); err == nil && existing.IsCompleted() {
		s.recordPurchase(ctx, telemetry.PurchaseOutcomeDuplicate, sale)
		return &WebhookResult{OrderID: sale.OrderID, AlreadyProcessed: true}, nil
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := s.resolveUser(ctx, sale)
	if err != nil {
		return nil, err
	}

	purchase, err := commerce.NewPurchase(sale.OrderID, user.ID, sale.Amount, sale.Currency)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(sale.Raw); err == nil {
		purchase.PurchaseData = raw
	}
	if err := purchase.Complete(); err != nil {
		return nil, err
	}

	purchasedAt := time.Now()
	user.GrantLifetimeAccess(purchasedAt)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(purchase).Error; err != nil {
			return err
		}
		return tx.Save(user).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("lifetime access granted",
		zap.String("order_id", sale.OrderID),
		zap.String("user_id", user.ID))
	s.recordPurchase(ctx, telemetry.PurchaseOutcomeCompleted, sale)
	return &WebhookResult{OrderID: sale.OrderID}, nil
}

// handleRefund flips the purchase to refunded and revokes lifetime access
func (s *PurchaseService) handleRefund(ctx context.Context, sale *SaleNotification) (*WebhookResult, error) {
	purchase, err := s.purchaseRepo.FindByOrderID(ctx, sale.OrderID)
	if err != nil {
		return nil, err
	}
	if purchase.Status == commerce.PurchaseStatusRefunded {
		return &WebhookResult{OrderID: sale.OrderID, AlreadyProcessed: true, Refunded: true}, nil
	}
	if err := purchase.Refund(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, purchase.UserID)
	if err != nil {
		return nil, err
	}
	user.RevokeLifetimeAccess()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(purchase).Error; err != nil {
			return err
		}
		return tx.Save(user).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase refunded",
		zap.String("order_id", sale.OrderID),
		zap.String("user_id", user.ID))
	s.recordPurchase(ctx, telemetry.PurchaseOutcomeRefunded, sale)
	return &WebhookResult{OrderID: sale.OrderID, Refunded: true}, nil
}

// resolveUser finds the buyer by ID, then by email
func (s *PurchaseService) resolveUser(ctx context.Context, sale *SaleNotification) (*identity.User, error) {
	if sale.UserID != "" {
		user, err := s.userRepo.FindByID(ctx, sale.UserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	if sale.Email != "" {
		user, err := s.userRepo.FindByEmail(ctx, sale.Email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return nil, ErrWebhookUserNotFound
}

// GetByOrderID returns a purchase by the provider's order ID
func (s *PurchaseService) GetByOrderID(ctx context.Context, orderID string) (*commerce.Purchase, error) {
	return s.purchaseRepo.FindByOrderID(ctx, orderID)
}

// ListByUser returns a user's purchases, newest first
func (s *PurchaseService) ListByUser(ctx context.Context, userID string) ([]commerce.Purchase, error) {
	return s.purchaseRepo.FindByUser(ctx, userID)
}

// ListRecent returns purchases page by page, optionally filtered by status
func (s *PurchaseService) ListRecent(ctx context.Context, status commerce.PurchaseStatus, filter shared.Filter) (shared.Paginated[commerce.Purchase], error) {
	return s.purchaseRepo.FindRecent(ctx, status, filter)
}
