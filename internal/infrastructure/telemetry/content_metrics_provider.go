// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormContentMetricsProvider implements ContentMetricsProvider using GORM.
// It queries the terms and users tables directly for aggregated counts.
type GormContentMetricsProvider struct {
	db *gorm.DB
}

// NewGormContentMetricsProvider creates a new GormContentMetricsProvider.
func NewGormContentMetricsProvider(db *gorm.DB) *GormContentMetricsProvider {
	return &GormContentMetricsProvider{db: db}
}

// CountTerms returns the number of published terms.
func (p *GormContentMetricsProvider) CountTerms(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("terms").
		Count(&count).Error

	return count, err
}

// CountUsers returns the number of registered users.
func (p *GormContentMetricsProvider) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("users").
		Count(&count).Error

	return count, err
}

// CountLifetimeUsers returns the number of users with lifetime access.
func (p *GormContentMetricsProvider) CountLifetimeUsers(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("users").
		Where("lifetime_access = ?", true).
		Count(&count).Error

	return count, err
}

var _ ContentMetricsProvider = (*GormContentMetricsProvider)(nil)
