package commerce

import (
	"context"
	"time"

	"github.com/glossary/backend/internal/domain/commerce"
	"github.com/glossary/backend/internal/domain/shared"
)

// ReportService serves revenue analytics
type ReportService struct {
	reportRepo commerce.RevenueReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo commerce.RevenueReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// validateRange rejects inverted date ranges and fills open ends
func validateRange(filter *commerce.RevenueFilter) error {
	if filter.EndDate.IsZero() {
		filter.EndDate = time.Now()
	}
	if filter.StartDate.IsZero() {
		filter.StartDate = filter.EndDate.AddDate(0, -1, 0)
	}
	if filter.StartDate.After(filter.EndDate) {
		return shared.NewDomainError("INVALID_INPUT", "Start date must not be after end date")
	}
	return nil
}

// RevenueSummary aggregates completed purchases per currency in the period
func (s *ReportService) RevenueSummary(ctx context.Context, filter commerce.RevenueFilter) (*commerce.RevenueSummary, error) {
	if err := validateRange(&filter); err != nil {
		return nil, err
	}
	return s.reportRepo.RevenueSummary(ctx, filter)
}

// DailyRevenue returns the per-day revenue trend
func (s *ReportService) DailyRevenue(ctx context.Context, filter commerce.RevenueFilter) ([]commerce.DailyRevenue, error) {
	if err := validateRange(&filter); err != nil {
		return nil, err
	}
	return s.reportRepo.DailyRevenue(ctx, filter)
}

// RefundAnalytics summarizes refunds in the period
func (s *ReportService) RefundAnalytics(ctx context.Context, filter commerce.RevenueFilter) (*commerce.RefundAnalytics, error) {
	if err := validateRange(&filter); err != nil {
		return nil, err
	}
	return s.reportRepo.RefundAnalytics(ctx, filter)
}

// PurchaseFunnel relates the user base to paying customers
func (s *ReportService) PurchaseFunnel(ctx context.Context) (*commerce.PurchaseFunnel, error) {
	return s.reportRepo.PurchaseFunnel(ctx)
}

// TopBuyers ranks users by completed purchase volume per currency
func (s *ReportService) TopBuyers(ctx context.Context, filter commerce.RevenueFilter) ([]commerce.TopBuyer, error) {
	if err := validateRange(&filter); err != nil {
		return nil, err
	}
	return s.reportRepo.TopBuyers(ctx, filter)
}
