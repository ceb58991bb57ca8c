package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTermRepository implements TermRepository using GORM
type GormTermRepository struct {
	db *gorm.DB
}

// NewGormTermRepository creates a new GormTermRepository
func NewGormTermRepository(db *gorm.DB) *GormTermRepository {
	return &GormTermRepository{db: db}
}

// FindByID finds a term by its ID
func (r *GormTermRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Term, error) {
	var term catalog.Term
	if err := r.db.WithContext(ctx).
		Preload("Subcategories").
		First(&term, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &term, nil
}

// FindByName finds a term by its exact name
func (r *GormTermRepository) FindByName(ctx context.Context, name string) (*catalog.Term, error) {
	var term catalog.Term
	if err := r.db.WithContext(ctx).
		Preload("Subcategories").
		First(&term, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &term, nil
}

// FindAll finds all terms matching the filter
func (r *GormTermRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Term, error) {
	var terms []catalog.Term
	query := applyTermFilter(r.db.WithContext(ctx).Model(&catalog.Term{}), filter, true)

	if err := query.Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// FindByCategory finds all terms in a category
func (r *GormTermRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Term, error) {
	var terms []catalog.Term
	query := applyTermFilter(r.db.WithContext(ctx).Model(&catalog.Term{}), filter, true).
		Where("category_id = ?", categoryID)

	if err := query.Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// FindBySubcategory finds all terms attached to a subcategory
func (r *GormTermRepository) FindBySubcategory(ctx context.Context, subcategoryID uuid.UUID, filter shared.Filter) ([]catalog.Term, error) {
	var terms []catalog.Term
	query := applyTermFilter(r.db.WithContext(ctx).Model(&catalog.Term{}), filter, true).
		Joins("JOIN term_subcategories ts ON ts.term_id = terms.id").
		Where("ts.subcategory_id = ?", subcategoryID)

	if err := query.Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// Search finds terms whose name or definition contains the query,
// case-insensitive. Postgres ILIKE covers both columns in one scan.
func (r *GormTermRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]catalog.Term, error) {
	var terms []catalog.Term
	pattern := "%" + query + "%"
	q := r.db.WithContext(ctx).
		Model(&catalog.Term{}).
		Where("name ILIKE ? OR short_definition ILIKE ? OR definition ILIKE ?", pattern, pattern, pattern)

	if filter.Page > 0 && filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := q.Order("name ASC").Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// FindMostViewed returns terms ordered by view count descending
func (r *GormTermRepository) FindMostViewed(ctx context.Context, limit int) ([]catalog.Term, error) {
	var terms []catalog.Term
	if limit <= 0 {
		limit = 10
	}
	if err := r.db.WithContext(ctx).
		Order("view_count DESC, name ASC").
		Limit(limit).
		Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// Save creates or updates a term. Associations are managed explicitly
// through SetSubcategories, not through Save.
func (r *GormTermRepository) Save(ctx context.Context, term *catalog.Term) error {
	return r.db.WithContext(ctx).
		Omit("Subcategories").
		Save(term).Error
}

// SetSubcategories replaces the term's subcategory associations
func (r *GormTermRepository) SetSubcategories(ctx context.Context, termID uuid.UUID, subcategoryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM term_subcategories WHERE term_id = ?", termID).Error; err != nil {
			return err
		}
		for _, subID := range subcategoryIDs {
			if err := tx.Exec(
				"INSERT INTO term_subcategories (term_id, subcategory_id) VALUES (?, ?)",
				termID, subID,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// IncrementViewCount bumps the denormalized view counter by one.
// The update is atomic at the database level.
func (r *GormTermRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Term{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the term along with its subcategory links, views,
// favorites and progress rows in a single transaction
func (r *GormTermRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range []string{
			"DELETE FROM term_subcategories WHERE term_id = ?",
			"DELETE FROM term_views WHERE term_id = ?",
			"DELETE FROM favorites WHERE term_id = ?",
			"DELETE FROM user_progress WHERE term_id = ?",
		} {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&catalog.Term{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts terms matching the filter
func (r *GormTermRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyTermFilter(r.db.WithContext(ctx).Model(&catalog.Term{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyTermFilter applies filter options to the query
func applyTermFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TermSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "name" && filter.OrderDir == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormTermRepository implements TermRepository
var _ catalog.TermRepository = (*GormTermRepository)(nil)
