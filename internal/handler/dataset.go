package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"retail-insight/internal/model"
	"retail-insight/internal/parser"
	"retail-insight/internal/repository"

	"github.com/gin-gonic/gin"
)

// DatasetHandler handles dataset upload and lifecycle requests
type DatasetHandler struct {
	store       *repository.DatasetStore
	previewRows int
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(store *repository.DatasetStore, previewRows int) *DatasetHandler {
	if previewRows <= 0 {
		previewRows = 5
	}
	return &DatasetHandler{
		store:       store,
		previewRows: previewRows,
	}
}

// Upload handles POST /api/v1/datasets - multipart file upload
func (h *DatasetHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file: " + err.Error()})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".tsv" && ext != ".xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file format. Must be .csv, .tsv or .xlsx"})
		return
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload: " + err.Error()})
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store upload: " + err.Error()})
		return
	}

	ds, err := parser.ParseFile(tmpPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse file: " + err.Error()})
		return
	}
	ds.Name = file.Filename
	h.store.Save(ds)

	c.JSON(http.StatusCreated, model.UploadResponse{
		Dataset: ds.Info(),
		Preview: ds.Preview(h.previewRows),
	})
}

// List handles GET /api/v1/datasets
func (h *DatasetHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"datasets": h.store.List()})
}

// Get handles GET /api/v1/datasets/:id
func (h *DatasetHandler) Get(c *gin.Context) {
	ds, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}
	c.JSON(http.StatusOK, model.UploadResponse{
		Dataset: ds.Info(),
		Preview: ds.Preview(h.previewRows),
	})
}

// Delete handles DELETE /api/v1/datasets/:id
func (h *DatasetHandler) Delete(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
