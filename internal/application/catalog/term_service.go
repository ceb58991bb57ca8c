package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/learning"
	"github.com/glossary/backend/internal/domain/shared"
	"github.com/glossary/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TermService handles glossary term operations
type TermService struct {
	termRepo     catalog.TermRepository
	categoryRepo catalog.CategoryRepository
	subRepo      catalog.SubcategoryRepository
	viewRepo     learning.ViewRepository
	searchIndex  TermSearchIndex
	popularCache PopularTermsCache
	logger       *zap.Logger

	businessMetrics *telemetry.BusinessMetrics
}

// SetBusinessMetrics sets the business metrics collector
func (s *TermService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// SetPopularTermsCache enables caching of the most-viewed listing
func (s *TermService) SetPopularTermsCache(cache PopularTermsCache) {
	s.popularCache = cache
}

func (s *TermService) recordSearch(ctx context.Context, backend telemetry.SearchBackend) {
	if s.businessMetrics != nil {
		s.businessMetrics.RecordSearch(ctx, backend)
	}
}

// NewTermService creates a new TermService. searchIndex may be nil, in which
// case search goes straight to the database.
func NewTermService(
	termRepo catalog.TermRepository,
	categoryRepo catalog.CategoryRepository,
	subRepo catalog.SubcategoryRepository,
	viewRepo learning.ViewRepository,
	searchIndex TermSearchIndex,
	logger *zap.Logger,
) *TermService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{
		termRepo:     termRepo,
		categoryRepo: categoryRepo,
		subRepo:      subRepo,
		viewRepo:     viewRepo,
		searchIndex:  searchIndex,
		logger:       logger,
	}
}

// Create creates a new term
func (s *TermService) Create(ctx context.Context, req CreateTermRequest) (*TermResponse, error) {
	if _, err := s.termRepo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Term with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	term, err := catalog.NewTerm(req.Name, req.Definition)
	if err != nil {
		return nil, err
	}
	term.ShortDefinition = req.ShortDefinition
	term.Characteristics = req.Characteristics
	term.VisualURL = req.VisualURL
	term.MathFormulation = req.MathFormulation
	term.Applications = req.Applications
	term.References = req.References
	term.CategoryID = req.CategoryID

	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}

	if len(req.SubcategoryIDs) > 0 {
		if err := s.setSubcategories(ctx, term, req.SubcategoryIDs); err != nil {
			return nil, err
		}
	}

	s.indexTerm(ctx, term)
	return ToTermResponse(term), nil
}

// GetByID retrieves a term by ID
func (s *TermService) GetByID(ctx context.Context, id uuid.UUID) (*TermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTermResponse(term), nil
}

// GetByName retrieves a term by its exact name
func (s *TermService) GetByName(ctx context.Context, name string) (*TermResponse, error) {
	term, err := s.termRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return ToTermResponse(term), nil
}

// List retrieves terms matching the filter
func (s *TermService) List(ctx context.Context, filter TermListFilter) ([]TermListResponse, int64, error) {
	domainFilter := shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.SortBy,
		Filters:  make(map[string]interface{}),
	}
	if filter.SortDesc {
		domainFilter.OrderDir = "desc"
	} else if filter.SortBy != "" {
		domainFilter.OrderDir = "asc"
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	terms, err := s.termRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.termRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TermListResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, ToTermListResponse(&terms[i]))
	}
	return responses, total, nil
}

// ListByCategory retrieves terms in a category
func (s *TermService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter TermListFilter) ([]TermListResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	terms, err := s.termRepo.FindByCategory(ctx, categoryID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]TermListResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, ToTermListResponse(&terms[i]))
	}
	return responses, nil
}

// Search finds terms matching the query. The search index is consulted
// first; on error or when unconfigured the database fallback answers.
func (s *TermService) Search(ctx context.Context, query string, filter TermListFilter) ([]TermListResponse, error) {
	if query == "" {
		return []TermListResponse{}, nil
	}

	limit := filter.PageSize
	if limit <= 0 {
		limit = 20
	}

	if s.searchIndex != nil {
		ids, err := s.searchIndex.SearchTerms(ctx, query, limit)
		if err == nil {
			s.recordSearch(ctx, telemetry.SearchBackendMeilisearch)
			return s.termsByIDs(ctx, ids)
		}
		s.logger.Warn("search index query failed, falling back to database",
			zap.String("query", query),
			zap.Error(err))
	}

	terms, err := s.termRepo.Search(ctx, query, shared.Filter{
		Page:     filter.Page,
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	s.recordSearch(ctx, telemetry.SearchBackendDatabase)

	responses := make([]TermListResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, ToTermListResponse(&terms[i]))
	}
	return responses, nil
}

// MostViewed returns the most viewed terms. Results are served from the
// popular terms cache when one is configured; cache failures fall through
// to the database.
func (s *TermService) MostViewed(ctx context.Context, limit int) ([]TermListResponse, error) {
	if s.popularCache != nil {
		cached, ok, err := s.popularCache.Get(ctx, limit)
		if err != nil {
			s.logger.Warn("popular terms cache read failed",
				zap.Int("limit", limit),
				zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	terms, err := s.termRepo.FindMostViewed(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]TermListResponse, 0, len(terms))
	for i := range terms {
		responses = append(responses, ToTermListResponse(&terms[i]))
	}

	if s.popularCache != nil {
		if err := s.popularCache.Set(ctx, limit, responses); err != nil {
			s.logger.Warn("popular terms cache write failed",
				zap.Int("limit", limit),
				zap.Error(err))
		}
	}
	return responses, nil
}

// Update applies a partial update to a term
func (s *TermService) Update(ctx context.Context, id uuid.UUID, req UpdateTermRequest) (*TermResponse, error) {
	term, err := s.termRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != term.Name {
		if _, err := s.termRepo.FindByName(ctx, *req.Name); err == nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Term with this name already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	if err := term.Apply(catalog.TermUpdate{
		Name:            req.Name,
		ShortDefinition: req.ShortDefinition,
		Definition:      req.Definition,
		Characteristics: req.Characteristics,
		VisualURL:       req.VisualURL,
		MathFormulation: req.MathFormulation,
		Applications:    req.Applications,
		References:      req.References,
		CategoryID:      req.CategoryID,
	}); err != nil {
		return nil, err
	}

	if err := s.termRepo.Save(ctx, term); err != nil {
		return nil, err
	}

	if req.SubcategoryIDs != nil {
		if err := s.setSubcategories(ctx, term, *req.SubcategoryIDs); err != nil {
			return nil, err
		}
		refreshed, err := s.termRepo.FindByID(ctx, term.ID)
		if err != nil {
			return nil, err
		}
		term = refreshed
	}

	s.indexTerm(ctx, term)
	return ToTermResponse(term), nil
}

// Delete removes a term and all rows referencing it
func (s *TermService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.termRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if s.searchIndex != nil {
		if err := s.searchIndex.RemoveTerm(ctx, id); err != nil {
			s.logger.Warn("failed to remove term from search index",
				zap.String("term_id", id.String()),
				zap.Error(err))
		}
	}
	if s.popularCache != nil {
		if err := s.popularCache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate popular terms cache",
				zap.Error(err))
		}
	}
	return nil
}

// RecordView logs that a user viewed a term and bumps its view counter.
// Anonymous reads pass an empty userID: they still count toward popularity
// but leave no per-user activity row behind.
func (s *TermService) RecordView(ctx context.Context, userID string, termID uuid.UUID) error {
	term, err := s.termRepo.FindByID(ctx, termID)
	if err != nil {
		return err
	}

	if userID != "" {
		if err := s.viewRepo.Record(ctx, userID, termID, time.Now()); err != nil {
			return err
		}
	}
	if err := s.termRepo.IncrementViewCount(ctx, termID); err != nil {
		return err
	}

	if s.businessMetrics != nil {
		categoryID := ""
		if term.CategoryID != nil {
			categoryID = term.CategoryID.String()
		}
		s.businessMetrics.RecordTermView(ctx, categoryID)
	}
	return nil
}

// setSubcategories validates subcategory IDs and replaces the associations
func (s *TermService) setSubcategories(ctx context.Context, term *catalog.Term, ids []uuid.UUID) error {
	for _, subID := range ids {
		sub, err := s.subRepo.FindByID(ctx, subID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_SUBCATEGORY", "Subcategory not found")
			}
			return err
		}
		if term.CategoryID == nil || sub.CategoryID != *term.CategoryID {
			return shared.NewDomainError("INVALID_SUBCATEGORY", "Subcategory belongs to a different category")
		}
	}
	return s.termRepo.SetSubcategories(ctx, term.ID, ids)
}

// indexTerm pushes the term to the search index, logging failures instead
// of failing the write
func (s *TermService) indexTerm(ctx context.Context, term *catalog.Term) {
	if s.searchIndex == nil {
		return
	}
	if err := s.searchIndex.IndexTerm(ctx, term); err != nil {
		s.logger.Warn("failed to index term",
			zap.String("term_id", term.ID.String()),
			zap.Error(err))
	}
}

// termsByIDs loads terms preserving the given ID order
func (s *TermService) termsByIDs(ctx context.Context, ids []uuid.UUID) ([]TermListResponse, error) {
	responses := make([]TermListResponse, 0, len(ids))
	for _, id := range ids {
		term, err := s.termRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// index can lag behind deletes
				continue
			}
			return nil, err
		}
		responses = append(responses, ToTermListResponse(term))
	}
	return responses, nil
}
