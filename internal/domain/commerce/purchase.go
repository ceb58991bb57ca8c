package commerce

import (
	"strings"
	"time"

	"github.com/glossary/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PurchaseStatus represents the lifecycle state of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// IsValid reports whether the status is a known lifecycle state
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusCompleted, PurchaseStatusFailed, PurchaseStatusRefunded:
		return true
	}
	return false
}

// ProviderGumroad is the only payment provider currently wired
const ProviderGumroad = "gumroad"

// Purchase is a one-time lifetime-access sale. Rows are keyed by the
// provider's order ID so webhook replays land on the same record instead of
// creating duplicates.
type Purchase struct {
	shared.BaseEntity
	GumroadOrderID string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	UserID         string          `gorm:"type:varchar(255);not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Currency       string          `gorm:"type:varchar(3);not null"`
	Status         PurchaseStatus  `gorm:"type:varchar(20);not null;default:'pending'"`
	Provider       string          `gorm:"type:varchar(30);not null;default:'gumroad'"`
	// PurchaseData keeps the raw webhook payload for audits and disputes.
	PurchaseData datatypes.JSON `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a purchase from a verified provider notification
func NewPurchase(orderID, userID string, amount decimal.Decimal, currency string) (*Purchase, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Purchase order ID cannot be empty")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, shared.NewDomainError("INVALID_USER_ID", "Purchase requires a user")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Purchase amount cannot be negative")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	return &Purchase{
		BaseEntity:     shared.NewBaseEntity(),
		GumroadOrderID: orderID,
		UserID:         userID,
		Amount:         amount,
		Currency:       strings.ToUpper(currency),
		Status:         PurchaseStatusPending,
		Provider:       ProviderGumroad,
	}, nil
}

// Complete marks the purchase as paid
func (p *Purchase) Complete() error {
	if p.Status == PurchaseStatusRefunded {
		return shared.ErrInvalidState
	}
	p.Status = PurchaseStatusCompleted
	p.UpdatedAt = time.Now()
	return nil
}

// Refund marks the purchase as refunded. Only completed purchases can be
// refunded.
func (p *Purchase) Refund() error {
	if p.Status != PurchaseStatusCompleted {
		return shared.ErrInvalidState
	}
	p.Status = PurchaseStatusRefunded
	p.UpdatedAt = time.Now()
	return nil
}

// IsCompleted returns true for paid, non-refunded purchases
func (p *Purchase) IsCompleted() bool {
	return p.Status == PurchaseStatusCompleted
}
