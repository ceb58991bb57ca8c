// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the glossary service.
// It tracks term reads, search activity, purchases and content growth.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	termViewTotal       *Counter
	searchTotal         *Counter
	purchaseTotal       *Counter
	purchaseAmountTotal *Counter

	// Gauge metrics (point-in-time values)
	termsTotal         *Gauge
	usersTotal         *Gauge
	lifetimeUsersTotal *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	contentProvider ContentMetricsProvider
}

// ContentMetricsProvider provides content counts for periodic metrics
// collection. The interface keeps the telemetry layer from depending on the
// catalog and identity domains directly.
type ContentMetricsProvider interface {
	// CountTerms returns the number of published terms
	CountTerms(ctx context.Context) (int64, error)

	// CountUsers returns the number of registered users
	CountUsers(ctx context.Context) (int64, error)

	// CountLifetimeUsers returns the number of users with lifetime access
	CountLifetimeUsers(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	ContentProvider ContentMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:           cfg.Meter,
		logger:          logger,
		stopChan:        make(chan struct{}),
		contentProvider: cfg.ContentProvider,
	}

	var err error

	bm.termViewTotal, err = NewCounter(
		cfg.Meter,
		"glossary_term_view_total",
		"Total number of term detail views",
		"{views}",
	)
	if err != nil {
		return nil, err
	}

	bm.searchTotal, err = NewCounter(
		cfg.Meter,
		"glossary_search_total",
		"Total number of term searches",
		"{searches}",
	)
	if err != nil {
		return nil, err
	}

	bm.purchaseTotal, err = NewCounter(
		cfg.Meter,
		"glossary_purchase_total",
		"Total number of purchase webhook events processed",
		"{purchases}",
	)
	if err != nil {
		return nil, err
	}

	bm.purchaseAmountTotal, err = NewCounter(
		cfg.Meter,
		"glossary_purchase_amount_total",
		"Total purchase amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	bm.termsTotal, err = NewGauge(
		cfg.Meter,
		"glossary_terms_total",
		"Current number of published terms",
		"{terms}",
	)
	if err != nil {
		return nil, err
	}

	bm.usersTotal, err = NewGauge(
		cfg.Meter,
		"glossary_users_total",
		"Current number of registered users",
		"{users}",
	)
	if err != nil {
		return nil, err
	}

	bm.lifetimeUsersTotal, err = NewGauge(
		cfg.Meter,
		"glossary_lifetime_users_total",
		"Current number of users with lifetime access",
		"{users}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Catalog Metrics
// =============================================================================

// SearchBackend identifies which backend served a search for metrics labeling.
type SearchBackend string

const (
	SearchBackendMeilisearch SearchBackend = "meilisearch"
	SearchBackendDatabase    SearchBackend = "database"
)

// RecordTermView records a term detail view. The category ID keeps cardinality
// bounded to the category count, unlike the term ID.
func (bm *BusinessMetrics) RecordTermView(ctx context.Context, categoryID string) {
	if categoryID == "" {
		categoryID = "uncategorized"
	}
	bm.termViewTotal.Inc(ctx,
		AttrCategoryID.String(categoryID),
	)
}

// RecordSearch records a term search and which backend served it.
func (bm *BusinessMetrics) RecordSearch(ctx context.Context, backend SearchBackend) {
	bm.searchTotal.Inc(ctx,
		AttrSearchBackend.String(string(backend)),
	)
}

// =============================================================================
// Purchase Metrics
// =============================================================================

// PurchaseOutcome represents the outcome of a purchase webhook for metrics labeling.
type PurchaseOutcome string

const (
	PurchaseOutcomeCompleted PurchaseOutcome = "completed"
	PurchaseOutcomeRefunded  PurchaseOutcome = "refunded"
	PurchaseOutcomeRejected  PurchaseOutcome = "rejected"
	PurchaseOutcomeDuplicate PurchaseOutcome = "duplicate"
)

// RecordPurchase records a processed purchase webhook event.
func (bm *BusinessMetrics) RecordPurchase(ctx context.Context, outcome PurchaseOutcome, currency string) {
	bm.purchaseTotal.Inc(ctx,
		AttrPurchaseStatus.String(string(outcome)),
		AttrCurrency.String(currency),
	)
}

// RecordPurchaseAmount records a completed purchase amount. The amount is
// converted to cents so the counter stays integral.
func (bm *BusinessMetrics) RecordPurchaseAmount(ctx context.Context, amount decimal.Decimal, currency string) {
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.purchaseAmountTotal.Add(ctx, cents,
		AttrCurrency.String(currency),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of content gauge metrics.
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectContentMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectContentMetrics(ctx)
		}
	}
}

// collectContentMetrics records the content gauges from the provider.
func (bm *BusinessMetrics) collectContentMetrics(ctx context.Context) {
	if bm.contentProvider == nil {
		bm.logger.Debug("No content provider configured, skipping content metrics collection")
		return
	}

	if count, err := bm.contentProvider.CountTerms(ctx); err != nil {
		bm.logger.Warn("Failed to count terms for metrics", zap.Error(err))
	} else {
		bm.termsTotal.Record(ctx, count)
	}

	if count, err := bm.contentProvider.CountUsers(ctx); err != nil {
		bm.logger.Warn("Failed to count users for metrics", zap.Error(err))
	} else {
		bm.usersTotal.Record(ctx, count)
	}

	if count, err := bm.contentProvider.CountLifetimeUsers(ctx); err != nil {
		bm.logger.Warn("Failed to count lifetime users for metrics", zap.Error(err))
	} else {
		bm.lifetimeUsersTotal.Record(ctx, count)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
