package handler

import (
	"net/http"

	"retail-insight/internal/model"
	"retail-insight/internal/repository"
	"retail-insight/internal/service"

	"github.com/gin-gonic/gin"
)

// QueryHandler handles question-answering HTTP requests
type QueryHandler struct {
	engine *service.InsightEngine
	store  *repository.DatasetStore
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(engine *service.InsightEngine, store *repository.DatasetStore) *QueryHandler {
	return &QueryHandler{
		engine: engine,
		store:  store,
	}
}

// Query handles POST /api/v1/query
func (h *QueryHandler) Query(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ds, err := h.store.Get(req.DatasetID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	if req.Filter != nil {
		filtered, err := service.FilterEquals(ds, req.Filter.Column, req.Filter.Value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
			return
		}
		ds = filtered
	}

	c.JSON(http.StatusOK, h.engine.Answer(c.Request.Context(), req.Query, ds))
}
