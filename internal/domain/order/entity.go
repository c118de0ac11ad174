// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status represents the order status
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusPreparing  Status = "preparing"
	StatusDelivering Status = "delivering"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// PaymentMethod represents how the customer pays on delivery or transfer
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

// Order represents a placed order. Line items are snapshots: later menu or
// price changes never alter an existing order.
type Order struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	OrderNumber string        `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      *uint         `gorm:"index" json:"user_id"` // Nullable for guest orders
	DeviceID    string        `gorm:"size:64;index" json:"-"`
	Status      Status        `gorm:"not null;default:'pending'" json:"status"`
	Payment     PaymentMethod `gorm:"not null;size:30;default:'cod'" json:"payment_method"`

	// Customer information
	CustomerName  string `gorm:"not null;size:100" json:"customer_name"`
	CustomerPhone string `gorm:"not null;size:20" json:"customer_phone"`
	Address       string `gorm:"not null;size:500" json:"address"`
	Note          string `gorm:"type:text" json:"note"`

	// Totals in VND; repriced from the menu at submission
	TotalQuantity int    `gorm:"not null" json:"total_quantity"`
	TotalAmount   int64  `gorm:"not null" json:"total_amount"`
	Currency      string `gorm:"size:3;default:'VND'" json:"currency"`

	ConfirmedAt *time.Time     `json:"confirmed_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	CancelledAt *time.Time     `json:"cancelled_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one line of a placed order, with the size and topping
// selections frozen as display snapshots.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	OrderID    uint   `gorm:"not null;index" json:"order_id"`
	MenuItemID uint   `gorm:"not null;index" json:"menu_item_id"`
	Name       string `gorm:"not null;size:255" json:"name"`
	Image      string `gorm:"size:500" json:"image"`
	SizeID     string `gorm:"size:30" json:"size_id"`
	SizeName   string `gorm:"size:50" json:"size_name"`
	Toppings   string `gorm:"type:jsonb;default:'[]'" json:"toppings"` // [{id,name,price_delta}]
	Quantity   int    `gorm:"not null" json:"quantity"`
	UnitPrice  int64  `gorm:"not null" json:"unit_price"`
	LineTotal  int64  `gorm:"not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GenerateOrderNumber generates a unique order number
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// CanBeCancelled checks if the order can still be cancelled by the customer
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusConfirmed
}

// IsFinal checks if the order has reached a terminal status
func (o *Order) IsFinal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// validTransitions maps each status to the statuses it may move to
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusPreparing, StatusCancelled},
	StatusPreparing:  {StatusDelivering, StatusCancelled},
	StatusDelivering: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransitionTo checks whether a status change is allowed
func (o *Order) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}
