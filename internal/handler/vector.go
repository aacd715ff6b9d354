package handler

import (
	"net/http"

	"retail-insight/internal/model"
	"retail-insight/internal/repository"
	"retail-insight/internal/service"

	"github.com/gin-gonic/gin"
)

// VectorHandler handles row-index and similarity HTTP requests. The
// indexer is nil when PostgreSQL or the embedding API is not
// configured; requests then get a 503.
type VectorHandler struct {
	indexer *service.Indexer
	store   *repository.DatasetStore
}

// NewVectorHandler creates a new vector handler
func NewVectorHandler(indexer *service.Indexer, store *repository.DatasetStore) *VectorHandler {
	return &VectorHandler{
		indexer: indexer,
		store:   store,
	}
}

// Index handles POST /api/v1/datasets/:id/index
func (h *VectorHandler) Index(c *gin.Context) {
	if h.indexer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Vector indexing is not configured"})
		return
	}

	ds, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	var req model.IndexRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.indexer.IndexDataset(c.Request.Context(), ds, req.Rebuild)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Indexing failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Similar handles POST /api/v1/datasets/:id/similar
func (h *VectorHandler) Similar(c *gin.Context) {
	if h.indexer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Vector search is not configured"})
		return
	}

	ds, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}

	var req model.SimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.indexer.SimilarRows(c.Request.Context(), ds.ID, req.Query, req.TopK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Similarity search failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
