package handler

import (
	identityapp "github.com/glossary/backend/internal/application/identity"
	"github.com/glossary/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile and settings API endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// syncRequest carries the optional profile fields the token does not
type syncRequest struct {
	ProfileImageURL string `json:"profile_image_url"`
}

// Sync godoc
// @Summary      Sync user from auth provider
// @Description  Upsert the authenticated user's profile from their token
// @Description  claims. Called by the frontend after sign-in.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body syncRequest false "Optional profile fields"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/sync [post]
func (h *UserHandler) Sync(c *gin.Context) {
	claims := middleware.GetAuthClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req syncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	profile := identityapp.AuthProfile{
		ID:              claims.Subject,
		Email:           claims.Email,
		FirstName:       claims.FirstName,
		LastName:        claims.LastName,
		ProfileImageURL: req.ProfileImageURL,
	}

	user, err := h.userService.SyncFromAuth(c.Request.Context(), profile)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// GetProfile godoc
// @Summary      Get own profile
// @Description  Retrieve the authenticated user's profile
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// GetSettings godoc
// @Summary      Get own settings
// @Description  Retrieve the authenticated user's settings document.
// @Description  Defaults are created on first access.
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=map[string]interface{}}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/settings [get]
func (h *UserHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	settings, err := h.userService.GetSettings(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}

// UpdateSettings godoc
// @Summary      Update own settings
// @Description  Merge the supplied keys into the authenticated user's
// @Description  settings document
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body map[string]interface{} true "Settings updates"
// @Success      200 {object} dto.Response{data=map[string]interface{}}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/settings [put]
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if len(updates) == 0 {
		h.BadRequest(c, "No settings provided")
		return
	}

	settings, err := h.userService.UpdateSettings(c.Request.Context(), userID, updates)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}

// ExportData godoc
// @Summary      Export own data
// @Description  Download the authenticated user's stored data as one JSON
// @Description  document
// @Tags         users
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.UserDataExport}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/export [get]
func (h *UserHandler) ExportData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	export, err := h.userService.ExportData(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, export)
}

// DeleteData godoc
// @Summary      Delete own activity data
// @Description  Delete the authenticated user's favorites, progress, views
// @Description  and settings. The account itself remains.
// @Tags         users
// @Produce      json
// @Success      204 "No Content"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/me/data [delete]
func (h *UserHandler) DeleteData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.userService.DeleteData(c.Request.Context(), userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
