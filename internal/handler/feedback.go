package handler

import (
	"net/http"

	"retail-insight/internal/model"
	"retail-insight/internal/repository"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles feedback-related HTTP requests. The repo is
// nil when PostgreSQL is not configured; requests then get a 503.
type FeedbackHandler struct {
	repo *repository.PostgresRepository
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(repo *repository.PostgresRepository) *FeedbackHandler {
	return &FeedbackHandler{repo: repo}
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Feedback logging is not configured"})
		return
	}

	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	found, err := h.repo.LogFeedback(c.Request.Context(), req.QueryID, *req.Helpful, req.Comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log feedback: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Query not found"})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback logged successfully",
	})
}
