// internal/domain/favorite/entity.go
package favorite

import (
	"time"
)

// Favorite marks one menu item as a favorite of one user
type Favorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_favorites_user_item" json:"user_id"`
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_item" json:"menu_item_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Favorite) TableName() string {
	return "favorites"
}
