// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/menu"
	"gorm.io/gorm"
)

// MenuHandler handles menu endpoints
type MenuHandler struct {
	menuService *menu.Service
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(db *gorm.DB, cfg *config.Config) *MenuHandler {
	return &MenuHandler{
		menuService: menu.NewService(db, cfg),
	}
}

// ListItems handles GET /menu
func (h *MenuHandler) ListItems(c *gin.Context) {
	filter := menu.ListFilter{
		Category:    c.Query("category"),
		PopularOnly: c.Query("popular") == "true",
	}

	items, err := h.menuService.ListItems(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve menu",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu retrieved successfully",
		"data":    items,
	})
}

// GetItem handles GET /menu/:id
func (h *MenuHandler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	item, err := h.menuService.GetItem(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}

// GetCategories handles GET /menu/categories
func (h *MenuHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve categories",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// GetOptions handles GET /menu/options. The size and topping catalogs drive
// the modifier pickers on the storefront.
func (h *MenuHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Options retrieved successfully",
		"data": gin.H{
			"sizes":    h.menuService.SizeOptions(),
			"toppings": h.menuService.ToppingOptions(),
		},
	})
}

// CreateItem handles POST /admin/menu
func (h *MenuHandler) CreateItem(c *gin.Context) {
	var req menu.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.menuService.CreateItem(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// UpdateItem handles PUT /admin/menu/:id
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req menu.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.menuService.UpdateItem(id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteItem handles DELETE /admin/menu/:id
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.menuService.DeleteItem(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item deleted successfully",
	})
}
