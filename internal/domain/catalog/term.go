package catalog

import (
	"time"

	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Term is a single glossary entry. Only name and definition are required;
// the remaining sections are optional and rendered when present.
type Term struct {
	shared.BaseEntity
	Name            string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	ShortDefinition string     `gorm:"type:text"`
	Definition      string     `gorm:"type:text;not null"`
	Characteristics string     `gorm:"type:text"`
	VisualURL       string     `gorm:"type:varchar(500)"`
	MathFormulation string     `gorm:"type:text"`
	Applications    string     `gorm:"type:text"`
	References      string     `gorm:"type:text"`
	CategoryID      *uuid.UUID `gorm:"type:uuid;index"`
	// ViewCount is a denormalized counter bumped on every recorded view.
	// Increments are not serialized against concurrent readers.
	ViewCount     int64         `gorm:"not null;default:0"`
	Subcategories []Subcategory `gorm:"many2many:term_subcategories"`
}

// TableName returns the table name for GORM
func (Term) TableName() string {
	return "terms"
}

// TermUpdate carries the mutable fields of a term. Nil pointers leave the
// stored value untouched.
type TermUpdate struct {
	Name            *string
	ShortDefinition *string
	Definition      *string
	Characteristics *string
	VisualURL       *string
	MathFormulation *string
	Applications    *string
	References      *string
	CategoryID      *uuid.UUID
}

// NewTerm creates a new glossary term
func NewTerm(name, definition string) (*Term, error) {
	if err := validateTermName(name); err != nil {
		return nil, err
	}
	if definition == "" {
		return nil, shared.NewDomainError("INVALID_DEFINITION", "Term definition cannot be empty")
	}

	return &Term{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Definition: definition,
	}, nil
}

// Apply merges an update into the term
func (t *Term) Apply(update TermUpdate) error {
	if update.Name != nil {
		if err := validateTermName(*update.Name); err != nil {
			return err
		}
		t.Name = *update.Name
	}
	if update.Definition != nil {
		if *update.Definition == "" {
			return shared.NewDomainError("INVALID_DEFINITION", "Term definition cannot be empty")
		}
		t.Definition = *update.Definition
	}
	if update.ShortDefinition != nil {
		t.ShortDefinition = *update.ShortDefinition
	}
	if update.Characteristics != nil {
		t.Characteristics = *update.Characteristics
	}
	if update.VisualURL != nil {
		t.VisualURL = *update.VisualURL
	}
	if update.MathFormulation != nil {
		t.MathFormulation = *update.MathFormulation
	}
	if update.Applications != nil {
		t.Applications = *update.Applications
	}
	if update.References != nil {
		t.References = *update.References
	}
	if update.CategoryID != nil {
		t.CategoryID = update.CategoryID
	}

	t.UpdatedAt = time.Now()
	return nil
}

// validateTermName validates the term name
func validateTermName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Term name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Term name cannot exceed 200 characters")
	}
	return nil
}
