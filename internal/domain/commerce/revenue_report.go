package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue figures are always bucketed per currency. Amounts in different
// currencies are never summed together.

// CurrencyRevenue aggregates completed purchases for one currency
type CurrencyRevenue struct {
	Currency      string          `json:"currency"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PurchaseCount int64           `json:"purchase_count"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// RevenueSummary aggregates revenue for a period
type RevenueSummary struct {
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	ByCurrency  []CurrencyRevenue `json:"by_currency"`
}

// DailyRevenue is one day of the revenue trend
type DailyRevenue struct {
	Date          time.Time       `json:"date"`
	Currency      string          `json:"currency"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PurchaseCount int64           `json:"purchase_count"`
}

// CurrencyRefunds aggregates refunded purchases for one currency
type CurrencyRefunds struct {
	Currency       string          `json:"currency"`
	RefundCount    int64           `json:"refund_count"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
}

// RefundAnalytics summarizes refunds for a period. RefundRate is refunds
// divided by completed-plus-refunded purchases, as a percentage.
type RefundAnalytics struct {
	PeriodStart time.Time         `json:"period_start"`
	PeriodEnd   time.Time         `json:"period_end"`
	ByCurrency  []CurrencyRefunds `json:"by_currency"`
	RefundRate  decimal.Decimal   `json:"refund_rate"`
}

// PurchaseFunnel relates the user base to paying customers
type PurchaseFunnel struct {
	TotalUsers     int64           `json:"total_users"`
	Purchasers     int64           `json:"purchasers"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

// TopBuyer is one row of the top-buyers ranking
type TopBuyer struct {
	Rank          int             `json:"rank"`
	UserID        string          `json:"user_id"`
	Email         string          `json:"email"`
	Currency      string          `json:"currency"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	PurchaseCount int64           `json:"purchase_count"`
}

// RevenueFilter bounds report queries. The date range is inclusive on both
// ends.
type RevenueFilter struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TopN      int       `json:"top_n,omitempty"`
}
