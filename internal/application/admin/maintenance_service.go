package admin

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// MaintenanceResult reports one maintenance run. Failures are folded into
// Details instead of being returned as errors, so a batch of operations
// always yields a full report.
type MaintenanceResult struct {
	Operation string                 `json:"operation"`
	Success   bool                   `json:"success"`
	Duration  time.Duration          `json:"duration_ms"`
	Details   map[string]interface{} `json:"details"`
}

// MaintenanceRepository is the database maintenance surface
type MaintenanceRepository interface {
	Reindex(ctx context.Context) (done []string, failures []string)
	CleanupOrphans(ctx context.Context) (removed map[string]int64, failures []string)
	Vacuum(ctx context.Context) (done []string, failures []string)
}

// MaintenanceService runs administrative database operations
type MaintenanceService struct {
	repo   MaintenanceRepository
	logger *zap.Logger
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(repo MaintenanceRepository, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaintenanceService{repo: repo, logger: logger}
}

// ReindexSearch rebuilds table indexes
func (s *MaintenanceService) ReindexSearch(ctx context.Context) MaintenanceResult {
	start := time.Now()
	done, failures := s.repo.Reindex(ctx)
	return s.finish("reindex", start, map[string]interface{}{
		"reindexed": done,
	}, failures)
}

// CleanupOrphans removes rows whose term, category or user no longer exists
func (s *MaintenanceService) CleanupOrphans(ctx context.Context) MaintenanceResult {
	start := time.Now()
	removed, failures := s.repo.CleanupOrphans(ctx)
	return s.finish("cleanup_orphans", start, map[string]interface{}{
		"removed": removed,
	}, failures)
}

// VacuumTables reclaims space and refreshes planner statistics
func (s *MaintenanceService) VacuumTables(ctx context.Context) MaintenanceResult {
	start := time.Now()
	done, failures := s.repo.Vacuum(ctx)
	return s.finish("vacuum", start, map[string]interface{}{
		"vacuumed": done,
	}, failures)
}

// RunAll executes every maintenance operation and returns all reports
func (s *MaintenanceService) RunAll(ctx context.Context) []MaintenanceResult {
	return []MaintenanceResult{
		s.CleanupOrphans(ctx),
		s.ReindexSearch(ctx),
		s.VacuumTables(ctx),
	}
}

func (s *MaintenanceService) finish(operation string, start time.Time, details map[string]interface{}, failures []string) MaintenanceResult {
	duration := time.Since(start)
	if len(failures) > 0 {
		details["errors"] = failures
		s.logger.Warn("maintenance finished with failures",
			zap.String("operation", operation),
			zap.Strings("errors", failures),
			zap.Duration("duration", duration))
	} else {
		s.logger.Info("maintenance finished",
			zap.String("operation", operation),
			zap.Duration("duration", duration))
	}

	return MaintenanceResult{
		Operation: operation,
		Success:   len(failures) == 0,
		Duration:  duration,
		Details:   details,
	}
}
