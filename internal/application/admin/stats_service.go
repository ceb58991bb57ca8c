package admin

import (
	"context"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/commerce"
	"github.com/glossary/backend/internal/domain/identity"
	"github.com/glossary/backend/internal/domain/shared"
)

// ContentStats is the admin dashboard headline view
type ContentStats struct {
	TotalTerms      int64                    `json:"total_terms"`
	TotalCategories int64                    `json:"total_categories"`
	TotalUsers      int64                    `json:"total_users"`
	Funnel          *commerce.PurchaseFunnel `json:"funnel"`
}

// StatsService aggregates counts for the admin dashboard
type StatsService struct {
	termRepo     catalog.TermRepository
	categoryRepo catalog.CategoryRepository
	userRepo     identity.UserRepository
	reportRepo   commerce.RevenueReportRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	termRepo catalog.TermRepository,
	categoryRepo catalog.CategoryRepository,
	userRepo identity.UserRepository,
	reportRepo commerce.RevenueReportRepository,
) *StatsService {
	return &StatsService{
		termRepo:     termRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		reportRepo:   reportRepo,
	}
}

// ContentStats returns headline content and conversion numbers
func (s *StatsService) ContentStats(ctx context.Context) (*ContentStats, error) {
	terms, err := s.termRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	funnel, err := s.reportRepo.PurchaseFunnel(ctx)
	if err != nil {
		return nil, err
	}

	return &ContentStats{
		TotalTerms:      terms,
		TotalCategories: categories,
		TotalUsers:      users,
		Funnel:          funnel,
	}, nil
}
