// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints. Every request resolves its identity
// fresh: an authenticated user id when present, otherwise the device id from
// the cart cookie.
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, redisClient, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	identity := h.resolveIdentity(c)

	state, err := h.cartService.Get(c.Request.Context(), identity)
	if err != nil {
		h.respond(c, state, err, "Cart retrieved successfully")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    state,
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	identity := h.resolveIdentity(c)

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.cartService.AddItem(c.Request.Context(), identity, &req)
	h.respond(c, state, err, "Item added to cart successfully")
}

// UpdateQuantity handles PUT /cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	identity := h.resolveIdentity(c)

	menuItemID, ok := h.parseItemID(c)
	if !ok {
		return
	}

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.cartService.UpdateQuantity(c.Request.Context(), identity, menuItemID, req.Quantity)
	h.respond(c, state, err, "Cart updated successfully")
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	identity := h.resolveIdentity(c)

	menuItemID, ok := h.parseItemID(c)
	if !ok {
		return
	}

	state, err := h.cartService.RemoveItem(c.Request.Context(), identity, menuItemID)
	h.respond(c, state, err, "Item removed from cart")
}

// SetSize handles PUT /cart/items/:id/size
func (h *CartHandler) SetSize(c *gin.Context) {
	identity := h.resolveIdentity(c)

	menuItemID, ok := h.parseItemID(c)
	if !ok {
		return
	}

	var req cart.SetSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.cartService.SetSize(c.Request.Context(), identity, menuItemID, req.SizeID)
	h.respond(c, state, err, "Size updated successfully")
}

// ToggleTopping handles PUT /cart/items/:id/toppings
func (h *CartHandler) ToggleTopping(c *gin.Context) {
	identity := h.resolveIdentity(c)

	menuItemID, ok := h.parseItemID(c)
	if !ok {
		return
	}

	var req cart.ToggleToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state, err := h.cartService.ToggleTopping(c.Request.Context(), identity, menuItemID, req.ToppingID)
	h.respond(c, state, err, "Topping updated successfully")
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	identity := h.resolveIdentity(c)

	if err := h.cartService.Clear(c.Request.Context(), identity); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Cart cleared",
			"data":    cart.EmptyState(),
			"warning": "Cart changes may not survive a refresh",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    cart.EmptyState(),
	})
}

// MergeCart handles POST /cart/merge. It folds the device's guest cart into
// the authenticated user's cart after login.
func (h *CartHandler) MergeCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	deviceID := h.deviceID(c)
	state, err := h.cartService.Merge(c.Request.Context(), userID, deviceID)
	h.respond(c, state, err, "Cart merged successfully")
}

// respond maps cart error kinds to the API contract: a load failure returns
// an empty cart with a retryable error, a persist failure returns the usable
// state with a warning, anything else is a plain error.
func (h *CartHandler) respond(c *gin.Context, state cart.State, err error, message string) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"data":    state,
		})
	case cart.IsLoadError(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Failed to load cart",
			"data":      cart.EmptyState(),
			"retryable": true,
		})
	case cart.IsPersistError(err):
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"data":    state,
			"warning": "Cart changes may not survive a refresh",
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	}
}

// resolveIdentity picks the cart identity for this request
func (h *CartHandler) resolveIdentity(c *gin.Context) cart.Identity {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return cart.UserIdentity(userID)
	}
	return cart.GuestIdentity(h.deviceID(c))
}

// deviceID reads the device cookie, minting one for new devices
func (h *CartHandler) deviceID(c *gin.Context) string {
	deviceID, err := c.Cookie("device_id")
	if err != nil || deviceID == "" {
		deviceID = uuid.New().String()
		c.SetCookie("device_id", deviceID, h.config.Cart.DeviceCookieAge, "/", "", false, true)
	}
	return deviceID
}

func (h *CartHandler) parseItemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid menu item ID",
		})
		return 0, false
	}
	return uint(id), true
}
