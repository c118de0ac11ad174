// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/upload"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// UploadHandler handles menu image upload endpoints
type UploadHandler struct {
	uploadService *upload.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(db *gorm.DB, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService: upload.NewService(db, cfg),
	}
}

// UploadImage handles POST /admin/uploads
func (h *UploadHandler) UploadImage(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file required",
		})
		return
	}

	record, err := h.uploadService.UploadImage(header, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"data":    record,
	})
}

// ListImages handles GET /admin/uploads
func (h *UploadHandler) ListImages(c *gin.Context) {
	records, err := h.uploadService.ListImages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Uploads retrieved successfully",
		"data":    records,
	})
}

// DeleteImage handles DELETE /admin/uploads/:id
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.uploadService.DeleteImage(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Upload deleted successfully",
	})
}
