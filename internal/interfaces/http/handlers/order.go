// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/middleware"
	"github.com/your-org/foodorder-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *OrderHandler {
	cartService := cart.NewService(db, redisClient, cfg)
	return &OrderHandler{
		orderService: order.NewService(db, cfg, cartService),
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// Submit handles POST /orders
func (h *OrderHandler) Submit(c *gin.Context) {
	var req order.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	identity := h.resolveIdentity(c)
	placed, err := h.orderService.Submit(c.Request.Context(), identity, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    placed,
	})
}

// ListMine handles GET /orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.orderService.ListForUser(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// GetMine handles GET /orders/:id
func (h *OrderHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	placed, err := h.orderService.GetForUser(orderID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    placed,
	})
}

// Cancel handles PUT /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	placed, err := h.orderService.Cancel(orderID, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"data":    placed,
	})
}

// Receipt handles GET /orders/:id/receipt
func (h *OrderHandler) Receipt(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	placed, err := h.orderService.GetForUser(orderID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	buf, err := h.pdfService.GenerateReceipt(placed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", placed.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// List handles GET /admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	response, err := h.orderService.List(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    response,
	})
}

// UpdateStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status order.Status `json:"status" binding:"required,oneof=pending confirmed preparing delivering completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.orderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    placed,
	})
}

// resolveIdentity picks the cart identity for this request
func (h *OrderHandler) resolveIdentity(c *gin.Context) cart.Identity {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return cart.UserIdentity(userID)
	}

	deviceID, err := c.Cookie("device_id")
	if err != nil || deviceID == "" {
		deviceID = uuid.New().String()
		c.SetCookie("device_id", deviceID, h.config.Cart.DeviceCookieAge, "/", "", false, true)
	}
	return cart.GuestIdentity(deviceID)
}
