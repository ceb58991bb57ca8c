package catalog

import (
	"time"

	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Subcategory is a finer-grained grouping inside a category.
// Terms attach to subcategories through a join table.
type Subcategory struct {
	shared.BaseEntity
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_subcategory_category_name,priority:2"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subcategory_category_name,priority:1"`
}

// TableName returns the table name for GORM
func (Subcategory) TableName() string {
	return "subcategories"
}

// NewSubcategory creates a new subcategory under a category
func NewSubcategory(categoryID uuid.UUID, name string) (*Subcategory, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Subcategory requires a category")
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Subcategory{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
	}, nil
}

// Rename changes the subcategory name
func (s *Subcategory) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	s.Name = name
	s.UpdatedAt = time.Now()
	return nil
}
