// internal/domain/favorite/service.go
package favorite

import (
	"fmt"

	"github.com/your-org/foodorder-backend/internal/domain/menu"
	"gorm.io/gorm"
)

// Service handles favorite menu items
type Service struct {
	db *gorm.DB
}

// NewService creates a new favorite service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Add marks a menu item as a favorite; adding twice is a no-op
func (s *Service) Add(userID, menuItemID uint) error {
	var item menu.Item
	if err := s.db.Where("id = ? AND is_active = ?", menuItemID, true).First(&item).Error; err != nil {
		return fmt.Errorf("menu item not found")
	}

	var existing Favorite
	result := s.db.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&existing)
	if result.Error == nil {
		return nil
	}

	favorite := Favorite{
		UserID:     userID,
		MenuItemID: menuItemID,
	}
	if err := s.db.Create(&favorite).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove unmarks a favorite; removing an absent favorite is a no-op
func (s *Service) Remove(userID, menuItemID uint) error {
	err := s.db.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// List returns the user's favorite menu items hydrated from the menu,
// newest first. Items that were deactivated since being favorited are
// filtered out.
func (s *Service) List(userID uint) ([]menu.Item, error) {
	var favorites []Favorite
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	if len(favorites) == 0 {
		return []menu.Item{}, nil
	}

	ids := make([]uint, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.MenuItemID)
	}

	var items []menu.Item
	err = s.db.Where("id IN ? AND is_active = ?", ids, true).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite items: %w", err)
	}

	// Preserve favorite ordering
	byID := make(map[uint]menu.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	ordered := make([]menu.Item, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

// IsFavorite reports whether the user has favorited the menu item
func (s *Service) IsFavorite(userID, menuItemID uint) (bool, error) {
	var count int64
	err := s.db.Model(&Favorite{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
