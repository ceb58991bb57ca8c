package catalog

import (
	"context"

	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName finds a category by its exact name
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a category with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// SubcategoryRepository defines the interface for subcategory persistence
type SubcategoryRepository interface {
	// FindByID finds a subcategory by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subcategory, error)

	// FindByCategory finds all subcategories of a category
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]Subcategory, error)

	// FindAll finds all subcategories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Subcategory, error)

	// Save creates or updates a subcategory
	Save(ctx context.Context, subcategory *Subcategory) error

	// Delete deletes a subcategory
	Delete(ctx context.Context, id uuid.UUID) error
}
