package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormMaintenanceRepository runs database maintenance statements. Each
// operation keeps going after individual statement failures and reports
// them all, so a partially successful run still does useful work.
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRepository creates a new GormMaintenanceRepository
func NewGormMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// maintenanceTables lists the tables covered by reindex and vacuum runs
var maintenanceTables = []string{
	"terms",
	"categories",
	"subcategories",
	"term_subcategories",
	"users",
	"user_settings",
	"favorites",
	"user_progress",
	"term_views",
	"purchases",
}

// orphanCleanupStatements removes rows whose term, category or user no
// longer exists. Activity tables have no foreign keys to keep writes cheap,
// so sweeps run here instead.
var orphanCleanupStatements = map[string]string{
	"favorites":          "DELETE FROM favorites WHERE term_id NOT IN (SELECT id FROM terms) OR user_id NOT IN (SELECT id FROM users)",
	"user_progress":      "DELETE FROM user_progress WHERE term_id NOT IN (SELECT id FROM terms) OR user_id NOT IN (SELECT id FROM users)",
	"term_views":         "DELETE FROM term_views WHERE term_id NOT IN (SELECT id FROM terms) OR user_id NOT IN (SELECT id FROM users)",
	"term_subcategories": "DELETE FROM term_subcategories WHERE term_id NOT IN (SELECT id FROM terms) OR subcategory_id NOT IN (SELECT id FROM subcategories)",
	"subcategories":      "DELETE FROM subcategories WHERE category_id NOT IN (SELECT id FROM categories)",
	"user_settings":      "DELETE FROM user_settings WHERE user_id NOT IN (SELECT id FROM users)",
}

// Reindex rebuilds the indexes of every maintenance table. Returns the
// tables that succeeded and the errors for those that did not.
func (r *GormMaintenanceRepository) Reindex(ctx context.Context) ([]string, []string) {
	var done []string
	var failures []string
	for _, table := range maintenanceTables {
		if err := r.db.WithContext(ctx).Exec("REINDEX TABLE " + table).Error; err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", table, err))
			continue
		}
		done = append(done, table)
	}
	return done, failures
}

// CleanupOrphans deletes rows referencing missing terms, categories or
// users. Returns rows removed per table and the errors encountered.
func (r *GormMaintenanceRepository) CleanupOrphans(ctx context.Context) (map[string]int64, []string) {
	removed := make(map[string]int64)
	var failures []string
	for table, stmt := range orphanCleanupStatements {
		result := r.db.WithContext(ctx).Exec(stmt)
		if result.Error != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", table, result.Error))
			continue
		}
		removed[table] = result.RowsAffected
	}
	return removed, failures
}

// Vacuum runs VACUUM ANALYZE on every maintenance table. VACUUM cannot run
// inside a transaction block, so each table gets its own statement.
func (r *GormMaintenanceRepository) Vacuum(ctx context.Context) ([]string, []string) {
	var done []string
	var failures []string
	for _, table := range maintenanceTables {
		if err := r.db.WithContext(ctx).Exec("VACUUM ANALYZE " + table).Error; err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", table, err))
			continue
		}
		done = append(done, table)
	}
	return done, failures
}
