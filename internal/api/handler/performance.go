package handler

import (
	"net/http"

	"prepgogo/backend/internal/api/middleware"
	"prepgogo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type performanceRequest struct {
	QuestionID       string `json:"questionId" binding:"required"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
	Completed        bool   `json:"completed"`
}

// CreatePerformance records one practice attempt for the authenticated user.
func (h *Handler) CreatePerformance(c *gin.Context) {
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionId is required"})
		return
	}

	rec := &models.PerformanceRecord{
		UserID:           c.GetString(middleware.ContextUserID),
		QuestionID:       req.QuestionID,
		TimeTakenSeconds: req.TimeTakenSeconds,
		Completed:        req.Completed,
	}

	if err := h.Storage.SavePerformance(rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// ListPerformance returns the authenticated user's attempts, newest first.
func (h *Handler) ListPerformance(c *gin.Context) {
	records, err := h.Storage.GetPerformanceForUser(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}
