// internal/interfaces/http/handlers/favorite.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/domain/favorite"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// FavoriteHandler handles favorite endpoints
type FavoriteHandler struct {
	favoriteService *favorite.Service
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favorite.NewService(db),
	}
}

// List handles GET /favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	items, err := h.favoriteService.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites retrieved successfully",
		"data":    items,
	})
}

// Add handles POST /favorites/:id
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	menuItemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Add(userID, menuItemID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite added successfully",
	})
}

// Remove handles DELETE /favorites/:id
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	menuItemID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(userID, menuItemID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorite removed successfully",
	})
}
