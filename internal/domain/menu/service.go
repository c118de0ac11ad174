// internal/domain/menu/service.go
package menu

import (
	"fmt"

	"github.com/your-org/foodorder-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles menu business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new menu service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ListFilter narrows down menu listings
type ListFilter struct {
	Category    string
	PopularOnly bool
}

// CreateItemRequest represents admin menu item creation
type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	BasePrice   int64   `json:"base_price" binding:"required,min=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category" binding:"required"`
	IsPopular   bool    `json:"is_popular"`
	Rating      float64 `json:"rating" binding:"min=0,max=5"`
}

// UpdateItemRequest represents admin menu item update; nil fields are left unchanged
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	BasePrice   *int64   `json:"base_price" binding:"omitempty,min=0"`
	Image       *string  `json:"image"`
	Category    *string  `json:"category"`
	IsPopular   *bool    `json:"is_popular"`
	Rating      *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	IsActive    *bool    `json:"is_active"`
}

// ListItems returns active menu items matching the filter
func (s *Service) ListItems(filter ListFilter) ([]Item, error) {
	query := s.db.Where("is_active = ?", true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PopularOnly {
		query = query.Where("is_popular = ?", true)
	}

	var items []Item
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// GetItem returns a single active menu item
func (s *Service) GetItem(id uint) (*Item, error) {
	var item Item
	if err := s.db.Where("id = ? AND is_active = ?", id, true).First(&item).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}
	return &item, nil
}

// GetCategories returns the distinct categories of active items
func (s *Service) GetCategories() ([]string, error) {
	var categories []string
	err := s.db.Model(&Item{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// SizeOptions returns the size modifier catalog
func (s *Service) SizeOptions() []SizeOption {
	return DefaultSizeOptions()
}

// ToppingOptions returns the topping modifier catalog
func (s *Service) ToppingOptions() []ToppingOption {
	return DefaultToppingOptions()
}

// Admin operations

// CreateItem creates a new menu item
func (s *Service) CreateItem(req *CreateItemRequest) (*Item, error) {
	item := Item{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Image:       req.Image,
		Category:    req.Category,
		IsPopular:   req.IsPopular,
		Rating:      req.Rating,
		IsActive:    true,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

// UpdateItem applies a partial update to a menu item
func (s *Service) UpdateItem(id uint, req *UpdateItemRequest) (*Item, error) {
	var item Item
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, fmt.Errorf("menu item not found")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.IsPopular != nil {
		updates["is_popular"] = *req.IsPopular
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update menu item: %w", err)
		}
	}
	return &item, nil
}

// DeleteItem soft-deletes a menu item
func (s *Service) DeleteItem(id uint) error {
	result := s.db.Where("id = ?", id).Delete(&Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("menu item not found")
	}
	return nil
}
