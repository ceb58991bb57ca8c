package persistence

import (
	"context"
	"time"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/learning"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Add inserts a favorite; adding an existing pair is a no-op
func (r *GormFavoriteRepository) Add(ctx context.Context, userID string, termID uuid.UUID) error {
	favorite := learning.Favorite{
		UserID:    userID,
		TermID:    termID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&favorite).Error
}

// Remove deletes a favorite; removing a missing pair is a no-op
func (r *GormFavoriteRepository) Remove(ctx context.Context, userID string, termID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&learning.Favorite{}, "user_id = ? AND term_id = ?", userID, termID).Error
}

// Exists reports whether the user favorited the term
func (r *GormFavoriteRepository) Exists(ctx context.Context, userID string, termID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&learning.Favorite{}).
		Where("user_id = ? AND term_id = ?", userID, termID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindTermsByUser returns the favorited terms, newest favorite first
func (r *GormFavoriteRepository) FindTermsByUser(ctx context.Context, userID string) ([]catalog.Term, error) {
	var terms []catalog.Term
	if err := r.db.WithContext(ctx).
		Model(&catalog.Term{}).
		Joins("JOIN favorites f ON f.term_id = terms.id").
		Where("f.user_id = ?", userID).
		Order("f.created_at DESC").
		Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// DeleteByUser removes all favorites of a user
func (r *GormFavoriteRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Delete(&learning.Favorite{}, "user_id = ?", userID).Error
}

// Ensure GormFavoriteRepository implements FavoriteRepository
var _ learning.FavoriteRepository = (*GormFavoriteRepository)(nil)

// GormProgressRepository implements ProgressRepository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GormProgressRepository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// MarkLearned records a term as learned; repeat calls are no-ops
func (r *GormProgressRepository) MarkLearned(ctx context.Context, userID string, termID uuid.UUID) error {
	progress := learning.Progress{
		UserID:    userID,
		TermID:    termID,
		LearnedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&progress).Error
}

// UnmarkLearned removes a learned record; missing pairs are no-ops
func (r *GormProgressRepository) UnmarkLearned(ctx context.Context, userID string, termID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&learning.Progress{}, "user_id = ? AND term_id = ?", userID, termID).Error
}

// FindLearnedTerms returns the terms a user marked as learned
func (r *GormProgressRepository) FindLearnedTerms(ctx context.Context, userID string) ([]catalog.Term, error) {
	var terms []catalog.Term
	if err := r.db.WithContext(ctx).
		Model(&catalog.Term{}).
		Joins("JOIN user_progress p ON p.term_id = terms.id").
		Where("p.user_id = ?", userID).
		Order("p.learned_at DESC").
		Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// CountLearned counts the terms a user marked as learned
func (r *GormProgressRepository) CountLearned(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&learning.Progress{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CategoryProgress returns per-category completion for a user. The LEFT
// JOIN against user_progress keeps categories the user has not started.
func (r *GormProgressRepository) CategoryProgress(ctx context.Context, userID string) ([]learning.CategoryProgress, error) {
	type row struct {
		CategoryID     uuid.UUID
		CategoryName   string
		TotalTerms     int
		CompletedTerms int
	}
	var rows []row

	if err := r.db.WithContext(ctx).
		Table("categories c").
		Select(`c.id as category_id,
			c.name as category_name,
			COUNT(t.id) as total_terms,
			COUNT(p.term_id) as completed_terms`).
		Joins("JOIN terms t ON t.category_id = c.id").
		Joins("LEFT JOIN user_progress p ON p.term_id = t.id AND p.user_id = ?", userID).
		Group("c.id, c.name").
		Order("c.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]learning.CategoryProgress, 0, len(rows))
	for _, r := range rows {
		percent := 0
		if r.TotalTerms > 0 {
			percent = r.CompletedTerms * 100 / r.TotalTerms
		}
		result = append(result, learning.CategoryProgress{
			CategoryID:      r.CategoryID,
			CategoryName:    r.CategoryName,
			TotalTerms:      r.TotalTerms,
			CompletedTerms:  r.CompletedTerms,
			PercentComplete: percent,
		})
	}
	return result, nil
}

// DeleteByUser removes all progress rows of a user
func (r *GormProgressRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Delete(&learning.Progress{}, "user_id = ?", userID).Error
}

// Ensure GormProgressRepository implements ProgressRepository
var _ learning.ProgressRepository = (*GormProgressRepository)(nil)

// GormViewRepository implements ViewRepository using GORM
type GormViewRepository struct {
	db *gorm.DB
}

// NewGormViewRepository creates a new GormViewRepository
func NewGormViewRepository(db *gorm.DB) *GormViewRepository {
	return &GormViewRepository{db: db}
}

// Record upserts a view, keeping the latest timestamp per (user, term)
func (r *GormViewRepository) Record(ctx context.Context, userID string, termID uuid.UUID, viewedAt time.Time) error {
	view := learning.TermView{
		UserID:   userID,
		TermID:   termID,
		ViewedAt: viewedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "term_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
	}).Create(&view).Error
}

// ViewTimes returns the raw view timestamps of a user
func (r *GormViewRepository) ViewTimes(ctx context.Context, userID string) ([]time.Time, error) {
	var times []time.Time
	if err := r.db.WithContext(ctx).
		Model(&learning.TermView{}).
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Pluck("viewed_at", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// CountByUser counts distinct terms the user has viewed
func (r *GormViewRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&learning.TermView{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindRecommended returns unseen terms from the categories the user has been
// reading, most viewed first. When those run out the remainder is filled
// with globally popular unseen terms.
func (r *GormViewRepository) FindRecommended(ctx context.Context, userID string, limit int) ([]catalog.Term, error) {
	if limit <= 0 {
		return []catalog.Term{}, nil
	}

	var terms []catalog.Term
	if err := r.db.WithContext(ctx).
		Model(&catalog.Term{}).
		Where(`terms.category_id IN (
			SELECT DISTINCT t.category_id FROM term_views v
			JOIN terms t ON t.id = v.term_id
			WHERE v.user_id = ? AND t.category_id IS NOT NULL
		)`, userID).
		Where("terms.id NOT IN (SELECT term_id FROM term_views WHERE user_id = ?)", userID).
		Order("view_count DESC, name ASC").
		Limit(limit).
		Find(&terms).Error; err != nil {
		return nil, err
	}

	if len(terms) < limit {
		seen := make([]uuid.UUID, 0, len(terms))
		for _, t := range terms {
			seen = append(seen, t.ID)
		}

		backfill := r.db.WithContext(ctx).
			Model(&catalog.Term{}).
			Where("terms.id NOT IN (SELECT term_id FROM term_views WHERE user_id = ?)", userID).
			Order("view_count DESC, name ASC").
			Limit(limit - len(terms))
		if len(seen) > 0 {
			backfill = backfill.Where("terms.id NOT IN ?", seen)
		}

		var extra []catalog.Term
		if err := backfill.Find(&extra).Error; err != nil {
			return nil, err
		}
		terms = append(terms, extra...)
	}

	return terms, nil
}

// DeleteByUser removes all view rows of a user
func (r *GormViewRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Delete(&learning.TermView{}, "user_id = ?", userID).Error
}

// Ensure GormViewRepository implements ViewRepository
var _ learning.ViewRepository = (*GormViewRepository)(nil)
