package handler

import (
	"strconv"

	catalogapp "github.com/glossary/backend/internal/application/catalog"
	"github.com/glossary/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TermHandler handles glossary term API endpoints
type TermHandler struct {
	BaseHandler
	termService *catalogapp.TermService
}

// NewTermHandler creates a new TermHandler
func NewTermHandler(termService *catalogapp.TermService) *TermHandler {
	return &TermHandler{
		termService: termService,
	}
}

// termQuery is the common query surface of term listings
type termQuery struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	SortBy     string `form:"sort_by"`
	SortDesc   bool   `form:"sort_desc"`
}

// toFilter converts the bound query to the application filter
func (q termQuery) toFilter() (catalogapp.TermListFilter, error) {
	filter := catalogapp.TermListFilter{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: q.PageSize,
		SortBy:   q.SortBy,
		SortDesc: q.SortDesc,
	}
	if q.CategoryID != "" {
		categoryID, err := uuid.Parse(q.CategoryID)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &categoryID
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	return filter, nil
}

// Create godoc
// @Summary      Create a new term
// @Description  Create a new glossary term
// @Tags         terms
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateTermRequest true "Term creation request"
// @Success      201 {object} dto.Response{data=catalogapp.TermResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /terms [post]
func (h *TermHandler) Create(c *gin.Context) {
	var req catalogapp.CreateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	term, err := h.termService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, term)
}

// GetByID godoc
// @Summary      Get term by ID
// @Description  Retrieve a term. The view is recorded and attributed to the
// @Description  authenticated user when a valid token accompanies the request.
// @Tags         terms
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Success      200 {object} dto.Response{data=catalogapp.TermResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /terms/{id} [get]
func (h *TermHandler) GetByID(c *gin.Context) {
	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	term, err := h.termService.GetByID(c.Request.Context(), termID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	// View tracking is best-effort and never fails the read
	userID := middleware.GetAuthUserID(c)
	_ = h.termService.RecordView(c.Request.Context(), userID, termID)

	h.Success(c, term)
}

// GetByName godoc
// @Summary      Get term by name
// @Description  Retrieve a term by its exact name
// @Tags         terms
// @Produce      json
// @Param        name path string true "Term name"
// @Success      200 {object} dto.Response{data=catalogapp.TermResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /terms/name/{name} [get]
func (h *TermHandler) GetByName(c *gin.Context) {
	name := c.Param("name")

	term, err := h.termService.GetByName(c.Request.Context(), name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, term)
}

// List godoc
// @Summary      List terms
// @Description  Retrieve a paginated list of terms, optionally filtered by category
// @Tags         terms
// @Produce      json
// @Param        search query string false "Search keyword"
// @Param        category_id query string false "Category filter" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Param        sort_by query string false "Sort by field"
// @Param        sort_desc query bool false "Sort descending"
// @Success      200 {object} dto.Response{data=[]catalogapp.TermListResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /terms [get]
func (h *TermHandler) List(c *gin.Context) {
	var query termQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	terms, total, err := h.termService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, terms, total, filter.Page, filter.PageSize)
}

// ListByCategory godoc
// @Summary      List terms in a category
// @Description  Retrieve the terms belonging to a category
// @Tags         terms
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]catalogapp.TermListResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/{id}/terms [get]
func (h *TermHandler) ListByCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	var query termQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	terms, err := h.termService.ListByCategory(c.Request.Context(), categoryID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, terms)
}

// Search godoc
// @Summary      Search terms
// @Description  Full-text term search, served by the search index when
// @Description  configured and by the database otherwise
// @Tags         terms
// @Produce      json
// @Param        q query string true "Search query"
// @Param        category_id query string false "Category filter" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.TermListResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /terms/search [get]
func (h *TermHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		h.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	var query termQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, "Invalid category ID format")
		return
	}

	terms, err := h.termService.Search(c.Request.Context(), q, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, terms)
}

// MostViewed godoc
// @Summary      Most viewed terms
// @Description  Retrieve the terms with the highest view counts
// @Tags         terms
// @Produce      json
// @Param        limit query int false "Maximum number of terms" default(10)
// @Success      200 {object} dto.Response{data=[]catalogapp.TermListResponse}
// @Router       /terms/popular [get]
func (h *TermHandler) MostViewed(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	terms, err := h.termService.MostViewed(c.Request.Context(), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, terms)
}

// Update godoc
// @Summary      Update a term
// @Description  Update an existing term. Absent fields are left untouched.
// @Tags         terms
// @Accept       json
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Param        request body catalogapp.UpdateTermRequest true "Term update request"
// @Success      200 {object} dto.Response{data=catalogapp.TermResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /terms/{id} [put]
func (h *TermHandler) Update(c *gin.Context) {
	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	var req catalogapp.UpdateTermRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	term, err := h.termService.Update(c.Request.Context(), termID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, term)
}

// Delete godoc
// @Summary      Delete a term
// @Description  Delete a term together with its favorites, progress and views
// @Tags         terms
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /terms/{id} [delete]
func (h *TermHandler) Delete(c *gin.Context) {
	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	if err := h.termService.Delete(c.Request.Context(), termID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
