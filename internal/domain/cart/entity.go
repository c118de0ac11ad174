// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"
)

// LineItem represents one menu item's cart entry. UnitPrice and LineTotal are
// derived fields, recomputed from the base price and modifiers on every
// mutation and again when a snapshot is loaded from a store.
type LineItem struct {
	MenuItemID uint      `json:"menu_item_id"`
	Name       string    `json:"name"`
	Image      string    `json:"image,omitempty"`
	BasePrice  int64     `json:"base_price"`
	SizeID     string    `json:"size_id"`
	ToppingIDs []string  `json:"topping_ids,omitempty"`
	Quantity   int       `json:"quantity"`
	UnitPrice  int64     `json:"unit_price"`
	LineTotal  int64     `json:"line_total"`
	AddedAt    time.Time `json:"added_at"`
}

// State is the full cart aggregate. Items keep insertion order; at most one
// line exists per menu item id. TotalQuantity and TotalAmount are always kept
// consistent with Items by full aggregation.
type State struct {
	Items         []LineItem `json:"items"`
	TotalQuantity int        `json:"total_quantity"`
	TotalAmount   int64      `json:"total_amount"`
}

// EmptyState returns a cart with no items and zeroed totals
func EmptyState() State {
	return State{Items: []LineItem{}}
}

// IsEmpty reports whether the cart holds no items
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// find returns the index of the line for a menu item, or -1
func (s State) find(menuItemID uint) int {
	for i := range s.Items {
		if s.Items[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

// Identity distinguishes guest sessions (device-scoped Redis cart) from
// authenticated users (Postgres cart keyed by user id).
type Identity struct {
	UserID   *uint
	DeviceID string
}

// GuestIdentity returns an identity for a device-scoped guest session
func GuestIdentity(deviceID string) Identity {
	return Identity{DeviceID: deviceID}
}

// UserIdentity returns an identity for an authenticated user
func UserIdentity(userID uint) Identity {
	return Identity{UserID: &userID}
}

// IsGuest reports whether the identity is a guest session
func (id Identity) IsGuest() bool {
	return id.UserID == nil
}

// Key returns the stable session key used for per-cart serialization
func (id Identity) Key() string {
	if id.UserID != nil {
		return fmt.Sprintf("user:%d", *id.UserID)
	}
	return fmt.Sprintf("guest:%s", id.DeviceID)
}
