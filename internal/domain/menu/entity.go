// internal/domain/menu/entity.go
package menu

import (
	"time"

	"gorm.io/gorm"
)

// Item represents a sellable menu item
type Item struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	BasePrice   int64          `gorm:"not null" json:"base_price"` // VND, no subunits
	Image       string         `gorm:"size:500" json:"image"`
	Category    string         `gorm:"not null;size:100;index" json:"category"`
	IsPopular   bool           `gorm:"default:false" json:"is_popular"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "menu_items"
}

// SizeOption is a mutually exclusive size modifier. Exactly one size is
// selected per cart line; the first option is the default.
type SizeOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
}

// ToppingOption is an independently toggleable topping modifier.
type ToppingOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
}
