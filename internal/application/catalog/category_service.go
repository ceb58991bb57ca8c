package catalog

import (
	"context"
	"errors"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category and subcategory operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	subRepo      catalog.SubcategoryRepository
	termRepo     catalog.TermRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	subRepo catalog.SubcategoryRepository,
	termRepo catalog.TermRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		subRepo:      subRepo,
		termRepo:     termRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// GetByID retrieves a category with its subcategories
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	subs, err := s.subRepo.FindByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		resp.Subcategories = append(resp.Subcategories, ToSubcategoryResponse(&subs[i]))
	}
	return resp, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, int64, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, *ToCategoryResponse(&categories[i]))
	}
	return responses, total, nil
}

// Update renames a category or changes its description
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return ToCategoryResponse(category), nil
}

// Delete removes an empty category. Categories still holding terms cannot
// be deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.termRepo.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{"category_id": id},
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("INVALID_STATE", "Category still contains terms")
	}

	subs, err := s.subRepo.FindByCategory(ctx, id)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		if err := s.subRepo.Delete(ctx, sub.ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}

	return s.categoryRepo.Delete(ctx, id)
}

// CreateSubcategory creates a subcategory under a category
func (s *CategoryService) CreateSubcategory(ctx context.Context, req CreateSubcategoryRequest) (*SubcategoryResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}

	existing, err := s.subRepo.FindByCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	for _, sub := range existing {
		if sub.Name == req.Name {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Subcategory with this name already exists in the category")
		}
	}

	sub, err := catalog.NewSubcategory(req.CategoryID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.subRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	resp := ToSubcategoryResponse(sub)
	return &resp, nil
}

// ListSubcategories lists the subcategories of a category
func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]SubcategoryResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	subs, err := s.subRepo.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	responses := make([]SubcategoryResponse, 0, len(subs))
	for i := range subs {
		responses = append(responses, ToSubcategoryResponse(&subs[i]))
	}
	return responses, nil
}

// DeleteSubcategory removes a subcategory and its term links
func (s *CategoryService) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	return s.subRepo.Delete(ctx, id)
}
