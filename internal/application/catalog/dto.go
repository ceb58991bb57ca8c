package catalog

import (
	"time"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateTermRequest is the payload for creating a term
type CreateTermRequest struct {
	Name            string      `json:"name" binding:"required,max=200"`
	ShortDefinition string      `json:"short_definition"`
	Definition      string      `json:"definition" binding:"required"`
	Characteristics string      `json:"characteristics"`
	VisualURL       string      `json:"visual_url"`
	MathFormulation string      `json:"math_formulation"`
	Applications    string      `json:"applications"`
	References      string      `json:"references"`
	CategoryID      *uuid.UUID  `json:"category_id"`
	SubcategoryIDs  []uuid.UUID `json:"subcategory_ids"`
}

// UpdateTermRequest is the payload for updating a term. Absent fields leave
// the stored value untouched.
type UpdateTermRequest struct {
	Name            *string      `json:"name"`
	ShortDefinition *string      `json:"short_definition"`
	Definition      *string      `json:"definition"`
	Characteristics *string      `json:"characteristics"`
	VisualURL       *string      `json:"visual_url"`
	MathFormulation *string      `json:"math_formulation"`
	Applications    *string      `json:"applications"`
	References      *string      `json:"references"`
	CategoryID      *uuid.UUID   `json:"category_id"`
	SubcategoryIDs  *[]uuid.UUID `json:"subcategory_ids"`
}

// TermListFilter is the query surface of term listings
type TermListFilter struct {
	Search     string
	CategoryID *uuid.UUID
	Page       int
	PageSize   int
	SortBy     string
	SortDesc   bool
}

// TermResponse is the full term representation
type TermResponse struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	ShortDefinition string                `json:"short_definition,omitempty"`
	Definition      string                `json:"definition"`
	Characteristics string                `json:"characteristics,omitempty"`
	VisualURL       string                `json:"visual_url,omitempty"`
	MathFormulation string                `json:"math_formulation,omitempty"`
	Applications    string                `json:"applications,omitempty"`
	References      string                `json:"references,omitempty"`
	CategoryID      *uuid.UUID            `json:"category_id,omitempty"`
	ViewCount       int64                 `json:"view_count"`
	Subcategories   []SubcategoryResponse `json:"subcategories,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// TermListResponse is the trimmed representation used in listings
type TermListResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	ShortDefinition string     `json:"short_definition,omitempty"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	ViewCount       int64      `json:"view_count"`
}

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is the payload for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

// CreateSubcategoryRequest is the payload for creating a subcategory
type CreateSubcategoryRequest struct {
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
	Name       string    `json:"name" binding:"required,max=100"`
}

// CategoryResponse is the category representation
type CategoryResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	Subcategories []SubcategoryResponse `json:"subcategories,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// SubcategoryResponse is the subcategory representation
type SubcategoryResponse struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
}

// ToTermResponse converts a domain term to its full response
func ToTermResponse(term *catalog.Term) *TermResponse {
	resp := &TermResponse{
		ID:              term.ID,
		Name:            term.Name,
		ShortDefinition: term.ShortDefinition,
		Definition:      term.Definition,
		Characteristics: term.Characteristics,
		VisualURL:       term.VisualURL,
		MathFormulation: term.MathFormulation,
		Applications:    term.Applications,
		References:      term.References,
		CategoryID:      term.CategoryID,
		ViewCount:       term.ViewCount,
		CreatedAt:       term.CreatedAt,
		UpdatedAt:       term.UpdatedAt,
	}
	for _, sub := range term.Subcategories {
		resp.Subcategories = append(resp.Subcategories, ToSubcategoryResponse(&sub))
	}
	return resp
}

// ToTermListResponse converts a domain term to its listing row
func ToTermListResponse(term *catalog.Term) TermListResponse {
	return TermListResponse{
		ID:              term.ID,
		Name:            term.Name,
		ShortDefinition: term.ShortDefinition,
		CategoryID:      term.CategoryID,
		ViewCount:       term.ViewCount,
	}
}

// ToCategoryResponse converts a domain category to its response
func ToCategoryResponse(category *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToSubcategoryResponse converts a domain subcategory to its response
func ToSubcategoryResponse(sub *catalog.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         sub.ID,
		CategoryID: sub.CategoryID,
		Name:       sub.Name,
	}
}
