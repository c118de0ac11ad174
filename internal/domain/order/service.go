// internal/domain/order/service.go
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/cart"
	"github.com/your-org/foodorder-backend/internal/domain/menu"
	"github.com/your-org/foodorder-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db           *gorm.DB
	config       *config.Config
	cartService  *cart.Service
	emailService *email.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service) *Service {
	return &Service{
		db:           db,
		config:       cfg,
		cartService:  cartService,
		emailService: email.NewService(cfg),
	}
}

// SubmitRequest represents order submission data
type SubmitRequest struct {
	CustomerName  string        `json:"customer_name" binding:"required"`
	CustomerPhone string        `json:"customer_phone" binding:"required"`
	Address       string        `json:"address" binding:"required"`
	Note          string        `json:"note"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=cod bank_transfer"`
	Email         string        `json:"email" binding:"omitempty,email"`
}

// ListRequest represents order list query parameters
type ListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Status    Status `form:"status"`
	UserID    uint   `form:"user_id"`
	SortOrder string `form:"sort_order,default=desc"`
}

// ListResponse represents an order page with pagination
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// toppingSnapshot is the frozen topping selection stored on an order item
type toppingSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
}

// Submit turns the identity's cart into an order. Every line is repriced from
// the live menu before it is written, the whole order is created in one
// transaction, and the cart is cleared only after the transaction commits.
func (s *Service) Submit(ctx context.Context, id cart.Identity, req *SubmitRequest) (*Order, error) {
	state, err := s.cartService.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if state.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	items, totalQuantity, totalAmount, err := s.repriceLines(state.Items)
	if err != nil {
		return nil, err
	}

	o := Order{
		UserID:        id.UserID,
		DeviceID:      id.DeviceID,
		Status:        StatusPending,
		Payment:       req.PaymentMethod,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		Note:          req.Note,
		TotalQuantity: totalQuantity,
		TotalAmount:   totalAmount,
		Currency:      s.config.Store.Currency,
		Items:         items,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		// The order number embeds the database id, so it is set in a
		// second step inside the same transaction.
		o.OrderNumber = o.GenerateOrderNumber()
		if err := tx.Model(&o).Update("order_number", o.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to assign order number: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartService.Clear(ctx, id); err != nil {
		// The order exists; an unreachable cart store must not fail it.
		logrus.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to clear cart after order submission")
	}

	if req.Email != "" {
		s.sendConfirmation(&o, req.Email)
	}

	logrus.WithFields(logrus.Fields{
		"order_number": o.OrderNumber,
		"total_amount": o.TotalAmount,
		"items":        len(o.Items),
	}).Info("Order submitted")

	return &o, nil
}

// repriceLines rebuilds each cart line against the live menu so a stale cart
// snapshot can never fix prices.
func (s *Service) repriceLines(lines []cart.LineItem) ([]OrderItem, int, int64, error) {
	sizeNames := make(map[string]string)
	for _, size := range menu.DefaultSizeOptions() {
		sizeNames[size.ID] = size.Name
	}
	toppingsByID := make(map[string]menu.ToppingOption)
	for _, topping := range menu.DefaultToppingOptions() {
		toppingsByID[topping.ID] = topping
	}

	engine := s.cartService.Engine()

	items := make([]OrderItem, 0, len(lines))
	totalQuantity := 0
	var totalAmount int64

	for _, line := range lines {
		var menuItem menu.Item
		result := s.db.Where("id = ? AND is_active = ?", line.MenuItemID, true).First(&menuItem)
		if result.Error != nil {
			return nil, 0, 0, fmt.Errorf("menu item %q is no longer available", line.Name)
		}

		unitPrice := engine.UnitPrice(menuItem.BasePrice, line.SizeID, line.ToppingIDs)
		lineTotal := unitPrice * int64(line.Quantity)

		snapshots := make([]toppingSnapshot, 0, len(line.ToppingIDs))
		for _, toppingID := range line.ToppingIDs {
			if topping, ok := toppingsByID[toppingID]; ok {
				snapshots = append(snapshots, toppingSnapshot{
					ID:         topping.ID,
					Name:       topping.Name,
					PriceDelta: topping.PriceDelta,
				})
			}
		}
		toppingsJSON, err := json.Marshal(snapshots)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to encode topping snapshot: %w", err)
		}

		items = append(items, OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Image:      menuItem.Image,
			SizeID:     line.SizeID,
			SizeName:   sizeNames[line.SizeID],
			Toppings:   string(toppingsJSON),
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
		})
		totalQuantity += line.Quantity
		totalAmount += lineTotal
	}

	return items, totalQuantity, totalAmount, nil
}

// sendConfirmation sends the order confirmation email best-effort
func (s *Service) sendConfirmation(o *Order, to string) {
	lines := make([]email.OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, email.OrderLine{
			Name:      item.Name,
			SizeName:  item.SizeName,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}

	err := s.emailService.SendOrderConfirmation(to, email.OrderConfirmation{
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		Lines:        lines,
	})
	if err != nil {
		logrus.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("Failed to send order confirmation email")
	}
}

// Get retrieves an order with its items
func (s *Service) Get(orderID uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Where("id = ?", orderID).First(&o)
	if result.Error != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &o, nil
}

// GetForUser retrieves an order only if it belongs to the given user
func (s *Service) GetForUser(orderID, userID uint) (*Order, error) {
	var o Order
	result := s.db.Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&o)
	if result.Error != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &o, nil
}

// ListForUser lists a user's orders, newest first
func (s *Service) ListForUser(userID uint, req *ListRequest) (*ListResponse, error) {
	req.UserID = userID
	return s.list(req)
}

// List lists orders for the admin surface with optional filters
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	return s.list(req)
}

func (s *Service) list(req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{})
	if req.UserID != 0 {
		query = query.Where("user_id = ?", req.UserID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	sortOrder := "DESC"
	if req.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	var orders []Order
	err := query.Preload("Items").
		Order("created_at " + sortOrder).
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ListResponse{
		Orders: orders,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// Cancel cancels an order on behalf of its owner while it is still pending
// or confirmed
func (s *Service) Cancel(orderID, userID uint) (*Order, error) {
	o, err := s.GetForUser(orderID, userID)
	if err != nil {
		return nil, err
	}

	if !o.CanBeCancelled() {
		return nil, fmt.Errorf("order %s can no longer be cancelled", o.OrderNumber)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       StatusCancelled,
		"cancelled_at": now,
	}
	if err := s.db.Model(o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	o.Status = StatusCancelled
	o.CancelledAt = &now
	return o, nil
}

// UpdateStatus moves an order along its lifecycle; invalid transitions are
// rejected
func (s *Service) UpdateStatus(orderID uint, next Status) (*Order, error) {
	o, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	if !o.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot move order %s from %s to %s", o.OrderNumber, o.Status, next)
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"status": next}
	switch next {
	case StatusConfirmed:
		updates["confirmed_at"] = now
		o.ConfirmedAt = &now
	case StatusCompleted:
		updates["completed_at"] = now
		o.CompletedAt = &now
	case StatusCancelled:
		updates["cancelled_at"] = now
		o.CancelledAt = &now
	}

	if err := s.db.Model(o).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	o.Status = next
	return o, nil
}
