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

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its exact name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categories []catalog.Category
	query := applyCategoryFilter(r.db.WithContext(ctx).Model(&catalog.Category{}), filter, true)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete deletes a category
func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyCategoryFilter(r.db.WithContext(ctx).Model(&catalog.Category{}), filter, false)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a category with the given name exists
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyCategoryFilter applies filter options to the query
func applyCategoryFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CategorySortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "name" && filter.OrderDir == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)

// GormSubcategoryRepository implements SubcategoryRepository using GORM
type GormSubcategoryRepository struct {
	db *gorm.DB
}

// NewGormSubcategoryRepository creates a new GormSubcategoryRepository
func NewGormSubcategoryRepository(db *gorm.DB) *GormSubcategoryRepository {
	return &GormSubcategoryRepository{db: db}
}

// FindByID finds a subcategory by its ID
func (r *GormSubcategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Subcategory, error) {
	var subcategory catalog.Subcategory
	if err := r.db.WithContext(ctx).First(&subcategory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &subcategory, nil
}

// FindByCategory finds all subcategories of a category
func (r *GormSubcategoryRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Subcategory, error) {
	var subcategories []catalog.Subcategory
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// FindAll finds all subcategories matching the filter
func (r *GormSubcategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Subcategory, error) {
	var subcategories []catalog.Subcategory
	query := r.db.WithContext(ctx).Model(&catalog.Subcategory{})

	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Order("name ASC").Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// Save creates or updates a subcategory
func (r *GormSubcategoryRepository) Save(ctx context.Context, subcategory *catalog.Subcategory) error {
	return r.db.WithContext(ctx).Save(subcategory).Error
}

// Delete deletes a subcategory and its term links
func (r *GormSubcategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM term_subcategories WHERE subcategory_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&catalog.Subcategory{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormSubcategoryRepository implements SubcategoryRepository
var _ catalog.SubcategoryRepository = (*GormSubcategoryRepository)(nil)
