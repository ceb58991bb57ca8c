package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	catalogapp "github.com/glossary/backend/internal/application/catalog"
	"github.com/glossary/backend/internal/domain/catalog"
	"github.com/glossary/backend/internal/domain/learning"
	"github.com/glossary/backend/internal/infrastructure/persistence"
	"github.com/glossary/backend/internal/interfaces/http/dto"
	"github.com/glossary/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTermHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Category{}, &catalog.Subcategory{}, &catalog.Term{},
		&learning.TermView{},
	))

	service := catalogapp.NewTermService(
		persistence.NewGormTermRepository(db),
		persistence.NewGormCategoryRepository(db),
		persistence.NewGormSubcategoryRepository(db),
		persistence.NewGormViewRepository(db),
		nil,
		nil,
	)
	h := NewTermHandler(service)

	router := gin.New()
	router.POST("/api/v1/terms", h.Create)
	router.GET("/api/v1/terms", h.List)
	router.GET("/api/v1/terms/search", h.Search)
	router.GET("/api/v1/terms/popular", h.MostViewed)
	router.GET("/api/v1/terms/name/:name", h.GetByName)
	router.GET("/api/v1/terms/:id", func(c *gin.Context) {
		// Simulates the auth middleware attaching claims on public reads
		if userID := c.GetHeader("X-Test-User"); userID != "" {
			c.Set(middleware.AuthUserIDKey, userID)
		}
		h.GetByID(c)
	})
	router.PUT("/api/v1/terms/:id", h.Update)
	router.DELETE("/api/v1/terms/:id", h.Delete)

	return router, db
}

func createTerm(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/terms", gin.H{
		"name":       name,
		"definition": "A definition of " + name,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.(map[string]interface{})["id"].(string)
}

func TestTermHandler_CreateAndGet(t *testing.T) {
	router, _ := setupTermHandlerTest(t)

	id := createTerm(t, router, "Gradient Descent")

	w := doJSON(t, router, http.MethodGet, "/api/v1/terms/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Gradient Descent", data["name"])
}

func TestTermHandler_Create_DuplicateName(t *testing.T) {
	router, _ := setupTermHandlerTest(t)

	createTerm(t, router, "Attention")

	w := doJSON(t, router, http.MethodPost, "/api/v1/terms", gin.H{
		"name":       "Attention",
		"definition": "Weighting mechanism",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTermHandler_GetByID_RecordsView(t *testing.T) {
	router, db := setupTermHandlerTest(t)

	id := createTerm(t, router, "Backpropagation")

	req := doJSON(t, router, http.MethodGet, "/api/v1/terms/"+id, nil)
	require.Equal(t, http.StatusOK, req.Code)

	var count int64
	require.NoError(t, db.Model(&learning.TermView{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var term catalog.Term
	require.NoError(t, db.First(&term, "id = ?", id).Error)
	assert.Equal(t, int64(1), term.ViewCount)
}

func TestTermHandler_GetByName(t *testing.T) {
	router, _ := setupTermHandlerTest(t)

	createTerm(t, router, "Transformer")

	w := doJSON(t, router, http.MethodGet, "/api/v1/terms/name/Transformer", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/terms/name/Unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTermHandler_Search_FallsBackToDatabase(t *testing.T) {
	router, _ := setupTermHandlerTest(t)

	createTerm(t, router, "Overfitting")
	createTerm(t, router, "Underfitting")

	w := doJSON(t, router, http.MethodGet, "/api/v1/terms/search?q=overfit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	results := resp.Data.([]interface{})
	require.Len(t, results, 1)
	assert.Equal(t, "Overfitting", results[0].(map[string]interface{})["name"])
}

func TestTermHandler_Search_RequiresQuery(t *testing.T) {
	router, _ := setupTermHandlerTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/terms/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTermHandler_Update_Partial(t *testing.T) {
	router, _ := setupTermHandlerTest(t)

	id := createTerm(t, router, "Embedding")

	w := doJSON(t, router, http.MethodPut, "/api/v1/terms/"+id, gin.H{
		"short_definition": "Dense vector representation",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Embedding", data["name"])
	assert.Equal(t, "Dense vector representation", data["short_definition"])
}

func TestTermHandler_Delete(t *testing.T) {
	router, _ := setupTermHandlerTest(t)

	id := createTerm(t, router, "Dropout")

	w := doJSON(t, router, http.MethodDelete, "/api/v1/terms/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/terms/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
