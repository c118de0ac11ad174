// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Store persists cart line items wholesale for one kind of identity. Totals
// are never trusted from storage; the service reconciles them through the
// engine on every load.
type Store interface {
	// Load returns the stored line items and whether a snapshot existed
	Load(ctx context.Context, id Identity) ([]LineItem, bool, error)
	// Save replaces the stored snapshot with the given line items
	Save(ctx context.Context, id Identity, items []LineItem) error
	// Clear removes the stored snapshot
	Clear(ctx context.Context, id Identity) error
}

// RedisStore keeps guest carts as JSON documents keyed by device id, with a
// TTL so abandoned guest carts expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a guest cart store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func guestCartKey(deviceID string) string {
	return fmt.Sprintf("cart:guest:%s", deviceID)
}

// Load retrieves a guest cart snapshot
func (s *RedisStore) Load(ctx context.Context, id Identity) ([]LineItem, bool, error) {
	if id.DeviceID == "" {
		return nil, false, fmt.Errorf("device id required for guest cart")
	}

	data, err := s.client.Get(ctx, guestCartKey(id.DeviceID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false, fmt.Errorf("malformed guest cart snapshot: %w", err)
	}
	return items, true, nil
}

// Save writes a guest cart snapshot and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, id Identity, items []LineItem) error {
	if id.DeviceID == "" {
		return fmt.Errorf("device id required for guest cart")
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, guestCartKey(id.DeviceID), data, s.ttl).Err()
}

// Clear deletes a guest cart snapshot
func (s *RedisStore) Clear(ctx context.Context, id Identity) error {
	if id.DeviceID == "" {
		return fmt.Errorf("device id required for guest cart")
	}
	return s.client.Del(ctx, guestCartKey(id.DeviceID)).Err()
}

// Record is the durable cart document for an authenticated user. The line
// items are written wholesale as one JSON column, mirroring the guest
// snapshot shape.
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Items     string    `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Record) TableName() string {
	return "cart_records"
}

// GormStore keeps authenticated users' carts in the database, one record per
// user id.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a user cart store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load retrieves a user's cart snapshot
func (s *GormStore) Load(ctx context.Context, id Identity) ([]LineItem, bool, error) {
	if id.UserID == nil {
		return nil, false, fmt.Errorf("user id required for user cart")
	}

	var record Record
	err := s.db.WithContext(ctx).Where("user_id = ?", *id.UserID).First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(record.Items), &items); err != nil {
		return nil, false, fmt.Errorf("malformed user cart snapshot: %w", err)
	}
	return items, true, nil
}

// Save writes a user's cart snapshot wholesale, creating the record on first use
func (s *GormStore) Save(ctx context.Context, id Identity, items []LineItem) error {
	if id.UserID == nil {
		return fmt.Errorf("user id required for user cart")
	}

	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	var record Record
	result := s.db.WithContext(ctx).Where("user_id = ?", *id.UserID).First(&record)
	if result.Error == gorm.ErrRecordNotFound {
		record = Record{
			UserID: *id.UserID,
			Items:  string(data),
		}
		return s.db.WithContext(ctx).Create(&record).Error
	} else if result.Error != nil {
		return result.Error
	}

	record.Items = string(data)
	return s.db.WithContext(ctx).Save(&record).Error
}

// Clear deletes a user's cart snapshot
func (s *GormStore) Clear(ctx context.Context, id Identity) error {
	if id.UserID == nil {
		return fmt.Errorf("user id required for user cart")
	}
	return s.db.WithContext(ctx).Where("user_id = ?", *id.UserID).Delete(&Record{}).Error
}
