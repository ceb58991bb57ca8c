package commerce

import (
	"context"

	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	// FindByID finds a purchase by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByOrderID finds a purchase by the provider's order ID
	FindByOrderID(ctx context.Context, orderID string) (*Purchase, error)

	// FindByUser returns a user's purchases, newest first
	FindByUser(ctx context.Context, userID string) ([]Purchase, error)

	// FindRecent returns purchases page by page, newest first, optionally
	// filtered by status
	FindRecent(ctx context.Context, status PurchaseStatus, filter shared.Filter) (shared.Paginated[Purchase], error)

	// Save creates or updates a purchase
	Save(ctx context.Context, purchase *Purchase) error
}

// RevenueReportRepository defines the interface for revenue report queries
type RevenueReportRepository interface {
	// RevenueSummary aggregates completed purchases in the period
	RevenueSummary(ctx context.Context, filter RevenueFilter) (*RevenueSummary, error)

	// DailyRevenue returns the per-day revenue trend in the period
	DailyRevenue(ctx context.Context, filter RevenueFilter) ([]DailyRevenue, error)

	// RefundAnalytics aggregates refunded purchases in the period
	RefundAnalytics(ctx context.Context, filter RevenueFilter) (*RefundAnalytics, error)

	// PurchaseFunnel relates total users to users with a completed purchase
	PurchaseFunnel(ctx context.Context) (*PurchaseFunnel, error)

	// TopBuyers ranks users by completed purchase volume per currency
	TopBuyers(ctx context.Context, filter RevenueFilter) ([]TopBuyer, error)
}
