package handler

import (
	"io"
	"net/http"
	"strings"

	adminapp "github.com/glossary/backend/internal/application/admin"
	catalogapp "github.com/glossary/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// assetKey extracts the object key from a wildcard route parameter, which
// gin delivers with a leading slash.
func assetKey(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}

// AdminHandler handles maintenance, stats and asset endpoints
type AdminHandler struct {
	BaseHandler
	maintenanceService *adminapp.MaintenanceService
	statsService       *adminapp.StatsService
	assetStorage       catalogapp.AssetStorage
	moderationQueue    adminapp.ModerationQueue
	feedbackStore      adminapp.FeedbackStore
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	maintenanceService *adminapp.MaintenanceService,
	statsService *adminapp.StatsService,
	assetStorage catalogapp.AssetStorage,
	moderationQueue adminapp.ModerationQueue,
	feedbackStore adminapp.FeedbackStore,
) *AdminHandler {
	return &AdminHandler{
		maintenanceService: maintenanceService,
		statsService:       statsService,
		assetStorage:       assetStorage,
		moderationQueue:    moderationQueue,
		feedbackStore:      feedbackStore,
	}
}

// ReindexSearch godoc
// @Summary      Rebuild the search index
// @Description  Re-push every term into the search index. Failures are
// @Description  reported in the result, not as an error status.
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=adminapp.MaintenanceResult}
// @Security     BearerAuth
// @Router       /admin/maintenance/reindex [post]
func (h *AdminHandler) ReindexSearch(c *gin.Context) {
	h.Success(c, h.maintenanceService.ReindexSearch(c.Request.Context()))
}

// CleanupOrphans godoc
// @Summary      Remove orphaned rows
// @Description  Delete favorites, progress and views that reference deleted
// @Description  terms or users
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=adminapp.MaintenanceResult}
// @Security     BearerAuth
// @Router       /admin/maintenance/cleanup [post]
func (h *AdminHandler) CleanupOrphans(c *gin.Context) {
	h.Success(c, h.maintenanceService.CleanupOrphans(c.Request.Context()))
}

// VacuumTables godoc
// @Summary      Vacuum database tables
// @Description  Run VACUUM ANALYZE over the application tables
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=adminapp.MaintenanceResult}
// @Security     BearerAuth
// @Router       /admin/maintenance/vacuum [post]
func (h *AdminHandler) VacuumTables(c *gin.Context) {
	h.Success(c, h.maintenanceService.VacuumTables(c.Request.Context()))
}

// RunAllMaintenance godoc
// @Summary      Run all maintenance operations
// @Description  Run reindex, orphan cleanup and vacuum in sequence and
// @Description  report each result
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=[]adminapp.MaintenanceResult}
// @Security     BearerAuth
// @Router       /admin/maintenance/run-all [post]
func (h *AdminHandler) RunAllMaintenance(c *gin.Context) {
	h.Success(c, h.maintenanceService.RunAll(c.Request.Context()))
}

// ContentStats godoc
// @Summary      Content statistics
// @Description  Headline term, category, user and conversion numbers
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=adminapp.ContentStats}
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *AdminHandler) ContentStats(c *gin.Context) {
	stats, err := h.statsService.ContentStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// ListAssets godoc
// @Summary      List stored assets
// @Description  List objects in the asset bucket under an optional prefix
// @Tags         admin
// @Produce      json
// @Param        prefix query string false "Key prefix filter"
// @Success      200 {object} dto.Response{data=[]catalogapp.AssetFile}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/assets [get]
func (h *AdminHandler) ListAssets(c *gin.Context) {
	files, err := h.assetStorage.ListFiles(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, files)
}

// UploadAsset godoc
// @Summary      Upload an asset
// @Description  Store an object in the asset bucket under the given key
// @Tags         admin
// @Accept       octet-stream
// @Produce      json
// @Param        key path string true "Object key"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/assets/{key} [put]
func (h *AdminHandler) UploadAsset(c *gin.Context) {
	key := assetKey(c)
	if key == "" {
		h.BadRequest(c, "Asset key is required")
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		h.BadRequest(c, "Asset body is required")
		return
	}

	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := h.assetStorage.Upload(c.Request.Context(), key, data, contentType); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, gin.H{"key": key, "size": len(data)})
}

// DownloadAsset godoc
// @Summary      Download an asset
// @Description  Fetch an object's content from the asset bucket
// @Tags         admin
// @Produce      octet-stream
// @Param        key path string true "Object key"
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/assets/{key} [get]
func (h *AdminHandler) DownloadAsset(c *gin.Context) {
	key := assetKey(c)

	data, err := h.assetStorage.Download(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}

// DeleteAsset godoc
// @Summary      Delete an asset
// @Description  Remove an object from the asset bucket
// @Tags         admin
// @Produce      json
// @Param        key path string true "Object key"
// @Success      204 "No Content"
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/assets/{key} [delete]
func (h *AdminHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetStorage.Delete(c.Request.Context(), assetKey(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListModerationQueue godoc
// @Summary      List pending submissions
// @Description  Content moderation is part of the API contract but not yet
// @Description  implemented; the endpoint answers 501.
// @Tags         admin
// @Produce      json
// @Failure      501 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/moderation [get]
func (h *AdminHandler) ListModerationQueue(c *gin.Context) {
	pending, err := h.moderationQueue.ListPending(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, pending)
}

// ListFeedback godoc
// @Summary      List user feedback
// @Description  Feedback collection is part of the API contract but not yet
// @Description  implemented; the endpoint answers 501.
// @Tags         admin
// @Produce      json
// @Failure      501 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/feedback [get]
func (h *AdminHandler) ListFeedback(c *gin.Context) {
	feedback, err := h.feedbackStore.List(c.Request.Context(), bindFilter(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, feedback)
}
