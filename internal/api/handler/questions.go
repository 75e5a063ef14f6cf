package handler

import (
	"math"
	"net/http"
	"strconv"

	"prepgogo/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// GetRandomQuestion returns one question picked at random.
func (h *Handler) GetRandomQuestion(c *gin.Context) {
	q, err := h.Storage.GetRandomQuestion()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No questions found"})
		return
	}
	c.JSON(http.StatusOK, q)
}

// GetQuestionsByTopic lists questions for a topic with optional difficulty
// filtering and pagination.
func (h *Handler) GetQuestionsByTopic(c *gin.Context) {
	topic := c.Param("topic")
	difficulty := c.Query("difficulty")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	questions, total, err := h.Storage.GetQuestionsByTopic(topic, difficulty, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":  questions,
		"total":      total,
		"page":       page,
		"totalPages": int(math.Ceil(float64(total) / float64(limit))),
	})
}

type generateQuestionRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty"`
}

// GenerateQuestion asks the generation API for a new question and stores it.
func (h *Handler) GenerateQuestion(c *gin.Context) {
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Question generation is disabled"})
		return
	}

	var req generateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	if req.Difficulty == "" {
		req.Difficulty = "Medium"
	}

	generated, err := h.AI.GenerateQuestion(c.Request.Context(), req.Topic, req.Difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate question"})
		return
	}

	question := &models.Question{
		Title:       generated.Title,
		Description: generated.Description,
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Examples:    generated.Examples,
	}
	if err := h.Storage.SaveQuestion(question); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate question"})
		return
	}

	c.JSON(http.StatusOK, question)
}

type hintRequest struct {
	CurrentCode string `json:"currentCode"`
}

// GetHint returns an AI hint for a question given the candidate's current code.
func (h *Handler) GetHint(c *gin.Context) {
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Question generation is disabled"})
		return
	}

	question, err := h.Storage.GetQuestionByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if question == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var req hintRequest
	_ = c.ShouldBindJSON(&req) // currentCode is optional

	hint, err := h.AI.GenerateHint(c.Request.Context(), question.Description, req.CurrentCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate hint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hint": hint})
}

// GetSolution returns an AI-generated solution for a question.
func (h *Handler) GetSolution(c *gin.Context) {
	if h.AI == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Question generation is disabled"})
		return
	}

	question, err := h.Storage.GetQuestionByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if question == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	solution, err := h.AI.GenerateSolution(c.Request.Context(), question.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate solution"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"solution": solution})
}
