package persistence

import (
	"context"
	"time"

	"github.com/glossary/backend/internal/domain/commerce"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormRevenueReportRepository implements RevenueReportRepository using GORM.
// Aggregation happens in SQL; decimal division stays in Go to keep rounding
// behavior in one place.
type GormRevenueReportRepository struct {
	db *gorm.DB
}

// NewGormRevenueReportRepository creates a new GormRevenueReportRepository
func NewGormRevenueReportRepository(db *gorm.DB) *GormRevenueReportRepository {
	return &GormRevenueReportRepository{db: db}
}

// RevenueSummary aggregates completed purchases in the period, one bucket
// per currency
func (r *GormRevenueReportRepository) RevenueSummary(ctx context.Context, filter commerce.RevenueFilter) (*commerce.RevenueSummary, error) {
	type row struct {
		Currency      string
		TotalRevenue  decimal.Decimal
		PurchaseCount int64
	}
	var rows []row

	if err := r.db.WithContext(ctx).
		Table("purchases").
		Select("currency, COALESCE(SUM(amount), 0) as total_revenue, COUNT(*) as purchase_count").
		Where("status = ?", commerce.PurchaseStatusCompleted).
		Where("created_at >= ? AND created_at <= ?", filter.StartDate, endOfDay(filter.EndDate)).
		Group("currency").
		Order("currency ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := &commerce.RevenueSummary{
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
		ByCurrency:  make([]commerce.CurrencyRevenue, 0, len(rows)),
	}
	for _, row := range rows {
		avg := decimal.Zero
		if row.PurchaseCount > 0 {
			avg = row.TotalRevenue.Div(decimal.NewFromInt(row.PurchaseCount)).Round(2)
		}
		summary.ByCurrency = append(summary.ByCurrency, commerce.CurrencyRevenue{
			Currency:      row.Currency,
			TotalRevenue:  row.TotalRevenue,
			PurchaseCount: row.PurchaseCount,
			AvgOrderValue: avg,
		})
	}
	return summary, nil
}

// DailyRevenue returns the per-day revenue trend in the period
func (r *GormRevenueReportRepository) DailyRevenue(ctx context.Context, filter commerce.RevenueFilter) ([]commerce.DailyRevenue, error) {
	type row struct {
		Day           time.Time
		Currency      string
		TotalRevenue  decimal.Decimal
		PurchaseCount int64
	}
	var rows []row

	if err := r.db.WithContext(ctx).
		Table("purchases").
		Select("DATE(created_at) as day, currency, COALESCE(SUM(amount), 0) as total_revenue, COUNT(*) as purchase_count").
		Where("status = ?", commerce.PurchaseStatusCompleted).
		Where("created_at >= ? AND created_at <= ?", filter.StartDate, endOfDay(filter.EndDate)).
		Group("DATE(created_at), currency").
		Order("day ASC, currency ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	trend := make([]commerce.DailyRevenue, 0, len(rows))
	for _, row := range rows {
		trend = append(trend, commerce.DailyRevenue{
			Date:          row.Day,
			Currency:      row.Currency,
			TotalRevenue:  row.TotalRevenue,
			PurchaseCount: row.PurchaseCount,
		})
	}
	return trend, nil
}

// RefundAnalytics aggregates refunded purchases in the period
func (r *GormRevenueReportRepository) RefundAnalytics(ctx context.Context, filter commerce.RevenueFilter) (*commerce.RefundAnalytics, error) {
	type row struct {
		Currency       string
		RefundCount    int64
		RefundedAmount decimal.Decimal
	}
	var rows []row

	periodEnd := endOfDay(filter.EndDate)
	if err := r.db.WithContext(ctx).
		Table("purchases").
		Select("currency, COUNT(*) as refund_count, COALESCE(SUM(amount), 0) as refunded_amount").
		Where("status = ?", commerce.PurchaseStatusRefunded).
		Where("created_at >= ? AND created_at <= ?", filter.StartDate, periodEnd).
		Group("currency").
		Order("currency ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	analytics := &commerce.RefundAnalytics{
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
		ByCurrency:  make([]commerce.CurrencyRefunds, 0, len(rows)),
		RefundRate:  decimal.Zero,
	}
	var refunds int64
	for _, row := range rows {
		refunds += row.RefundCount
		analytics.ByCurrency = append(analytics.ByCurrency, commerce.CurrencyRefunds{
			Currency:       row.Currency,
			RefundCount:    row.RefundCount,
			RefundedAmount: row.RefundedAmount,
		})
	}

	var settled int64
	if err := r.db.WithContext(ctx).
		Table("purchases").
		Where("status IN ?", []commerce.PurchaseStatus{commerce.PurchaseStatusCompleted, commerce.PurchaseStatusRefunded}).
		Where("created_at >= ? AND created_at <= ?", filter.StartDate, periodEnd).
		Count(&settled).Error; err != nil {
		return nil, err
	}
	if settled > 0 {
		analytics.RefundRate = decimal.NewFromInt(refunds).
			Div(decimal.NewFromInt(settled)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return analytics, nil
}

// PurchaseFunnel relates total users to users with a completed purchase
func (r *GormRevenueReportRepository) PurchaseFunnel(ctx context.Context) (*commerce.PurchaseFunnel, error) {
	var totalUsers int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Count(&totalUsers).Error; err != nil {
		return nil, err
	}

	var purchasers int64
	if err := r.db.WithContext(ctx).
		Table("purchases").
		Where("status = ?", commerce.PurchaseStatusCompleted).
		Distinct("user_id").
		Count(&purchasers).Error; err != nil {
		return nil, err
	}

	funnel := &commerce.PurchaseFunnel{
		TotalUsers:     totalUsers,
		Purchasers:     purchasers,
		ConversionRate: decimal.Zero,
	}
	if totalUsers > 0 {
		funnel.ConversionRate = decimal.NewFromInt(purchasers).
			Div(decimal.NewFromInt(totalUsers)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return funnel, nil
}

// TopBuyers ranks users by completed purchase volume per currency
func (r *GormRevenueReportRepository) TopBuyers(ctx context.Context, filter commerce.RevenueFilter) ([]commerce.TopBuyer, error) {
	limit := filter.TopN
	if limit <= 0 {
		limit = 10
	}

	type row struct {
		UserID        string
		Email         string
		Currency      string
		TotalSpent    decimal.Decimal
		PurchaseCount int64
	}
	var rows []row

	if err := r.db.WithContext(ctx).
		Table("purchases p").
		Select(`p.user_id,
			COALESCE(u.email, '') as email,
			p.currency,
			COALESCE(SUM(p.amount), 0) as total_spent,
			COUNT(*) as purchase_count`).
		Joins("LEFT JOIN users u ON u.id = p.user_id").
		Where("p.status = ?", commerce.PurchaseStatusCompleted).
		Where("p.created_at >= ? AND p.created_at <= ?", filter.StartDate, endOfDay(filter.EndDate)).
		Group("p.user_id, u.email, p.currency").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	buyers := make([]commerce.TopBuyer, 0, len(rows))
	for i, row := range rows {
		buyers = append(buyers, commerce.TopBuyer{
			Rank:          i + 1,
			UserID:        row.UserID,
			Email:         row.Email,
			Currency:      row.Currency,
			TotalSpent:    row.TotalSpent,
			PurchaseCount: row.PurchaseCount,
		})
	}
	return buyers, nil
}

// endOfDay pushes an inclusive end date to the last instant of that day
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Ensure GormRevenueReportRepository implements RevenueReportRepository
var _ commerce.RevenueReportRepository = (*GormRevenueReportRepository)(nil)
