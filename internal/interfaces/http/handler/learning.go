package handler

import (
	adminapp "github.com/glossary/backend/internal/application/admin"
	learningapp "github.com/glossary/backend/internal/application/learning"
	"github.com/gin-gonic/gin"
)

// LearningHandler handles favorites, progress and recommendation endpoints
type LearningHandler struct {
	BaseHandler
	learningService    *learningapp.LearningService
	achievementTracker adminapp.AchievementTracker
	quizEngine         adminapp.QuizEngine
}

// NewLearningHandler creates a new LearningHandler
func NewLearningHandler(
	learningService *learningapp.LearningService,
	achievementTracker adminapp.AchievementTracker,
	quizEngine adminapp.QuizEngine,
) *LearningHandler {
	return &LearningHandler{
		learningService:    learningService,
		achievementTracker: achievementTracker,
		quizEngine:         quizEngine,
	}
}

// AddFavorite godoc
// @Summary      Favorite a term
// @Description  Mark a term as a favorite. Repeating the call is a no-op.
// @Tags         learning
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/favorites/{id} [post]
func (h *LearningHandler) AddFavorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	if err := h.learningService.AddFavorite(c.Request.Context(), userID, termID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveFavorite godoc
// @Summary      Unfavorite a term
// @Description  Remove a term from favorites. Removing a missing favorite is
// @Description  a no-op.
// @Tags         learning
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/favorites/{id} [delete]
func (h *LearningHandler) RemoveFavorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	if err := h.learningService.RemoveFavorite(c.Request.Context(), userID, termID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// IsFavorite godoc
// @Summary      Check favorite status
// @Description  Report whether a term is in the user's favorites
// @Tags         learning
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Success      200 {object} dto.Response{data=map[string]bool}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/favorites/{id} [get]
func (h *LearningHandler) IsFavorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	favorite, err := h.learningService.IsFavorite(c.Request.Context(), userID, termID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"favorite": favorite})
}

// ListFavorites godoc
// @Summary      List favorites
// @Description  Retrieve the user's favorite terms
// @Tags         learning
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.TermListResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/favorites [get]
func (h *LearningHandler) ListFavorites(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	terms, err := h.learningService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, terms)
}

// MarkLearned godoc
// @Summary      Mark a term learned
// @Description  Record that the user has learned a term
// @Tags         learning
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/learned/{id} [post]
func (h *LearningHandler) MarkLearned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	if err := h.learningService.MarkLearned(c.Request.Context(), userID, termID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// UnmarkLearned godoc
// @Summary      Unmark a learned term
// @Description  Remove the learned mark from a term
// @Tags         learning
// @Produce      json
// @Param        id path string true "Term ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/learned/{id} [delete]
func (h *LearningHandler) UnmarkLearned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	termID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid term ID format")
		return
	}

	if err := h.learningService.UnmarkLearned(c.Request.Context(), userID, termID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListLearned godoc
// @Summary      List learned terms
// @Description  Retrieve the terms the user has marked as learned
// @Tags         learning
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.TermListResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/learned [get]
func (h *LearningHandler) ListLearned(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	terms, err := h.learningService.ListLearned(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, terms)
}

// CategoryProgress godoc
// @Summary      Per-category progress
// @Description  Report learned-term completion per category. Categories
// @Description  without terms are omitted.
// @Tags         learning
// @Produce      json
// @Success      200 {object} dto.Response{data=[]learning.CategoryProgress}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/progress [get]
func (h *LearningHandler) CategoryProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	progress, err := h.learningService.CategoryProgress(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, progress)
}

// Streak godoc
// @Summary      Activity streak
// @Description  Report the user's current and longest daily activity streaks
// @Tags         learning
// @Produce      json
// @Success      200 {object} dto.Response{data=learning.Streak}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/streak [get]
func (h *LearningHandler) Streak(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	streak, err := h.learningService.Streak(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, streak)
}

// Recommendations godoc
// @Summary      Recommended terms
// @Description  Suggest unseen terms from the user's viewed categories,
// @Description  backfilled with globally popular terms
// @Tags         learning
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalogapp.TermListResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/recommendations [get]
func (h *LearningHandler) Recommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	terms, err := h.learningService.Recommendations(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, terms)
}

// Stats godoc
// @Summary      Learning statistics
// @Description  Summarize the user's viewing, learning and streak numbers
// @Tags         learning
// @Produce      json
// @Success      200 {object} dto.Response{data=learningapp.LearningStats}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/stats [get]
func (h *LearningHandler) Stats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.learningService.Stats(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// Achievements godoc
// @Summary      List achievements
// @Description  Achievement tracking is part of the API contract but not yet
// @Description  implemented; the endpoint answers 501.
// @Tags         learning
// @Produce      json
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      501 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/achievements [get]
func (h *LearningHandler) Achievements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	achievements, err := h.achievementTracker.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, achievements)
}

// GenerateQuiz godoc
// @Summary      Generate a quiz
// @Description  Quiz generation is part of the API contract but not yet
// @Description  implemented; the endpoint answers 501.
// @Tags         learning
// @Produce      json
// @Param        category_id query string false "Limit questions to a category"
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      501 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/quiz [post]
func (h *LearningHandler) GenerateQuiz(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	quiz, err := h.quizEngine.Generate(c.Request.Context(), userID, c.Query("category_id"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quiz)
}

// GradeQuiz godoc
// @Summary      Grade a quiz
// @Description  Quiz grading is part of the API contract but not yet
// @Description  implemented; the endpoint answers 501.
// @Tags         learning
// @Accept       json
// @Produce      json
// @Param        id path string true "Quiz ID"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      501 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /learning/quiz/{id}/grade [post]
func (h *LearningHandler) GradeQuiz(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var body struct {
		Answers map[string]string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Quiz answers are required")
		return
	}

	result, err := h.quizEngine.Grade(c.Request.Context(), userID, c.Param("id"), body.Answers)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
