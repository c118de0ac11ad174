// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/menu"
	"gorm.io/gorm"
)

// Service owns cart mutations for both guest and authenticated sessions. The
// store is selected once per call from the identity; mutation logic never
// branches on it. All operations on one cart are serialized through a per-key
// mutex, so a load can never be overwritten by a persist that started against
// an older snapshot, and concurrent mutations coalesce instead of clobbering
// each other.
type Service struct {
	db         *gorm.DB
	config     *config.Config
	engine     *Engine
	userStore  Store
	guestStore Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:         db,
		config:     cfg,
		engine:     NewEngine(menu.DefaultSizeOptions(), menu.DefaultToppingOptions()),
		userStore:  NewGormStore(db),
		guestStore: NewRedisStore(redisClient, cfg.Cart.GuestCartTTL),
		locks:      make(map[string]*sync.Mutex),
	}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	MenuItemID uint     `json:"menu_item_id" binding:"required"`
	Quantity   int      `json:"quantity" binding:"required,min=1,max=10"`
	SizeID     string   `json:"size_id"`
	ToppingIDs []string `json:"topping_ids"`
}

// UpdateQuantityRequest represents a quantity update; zero removes the line
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0,max=10"`
}

// SetSizeRequest replaces a line's size selection
type SetSizeRequest struct {
	SizeID string `json:"size_id" binding:"required"`
}

// ToggleToppingRequest flips one topping on a line
type ToggleToppingRequest struct {
	ToppingID string `json:"topping_id" binding:"required"`
}

// Get loads the cart for an identity. A missing snapshot yields an empty
// cart; a store failure yields an empty cart plus a LoadError so the caller
// can offer a retry.
func (s *Service) Get(ctx context.Context, id Identity) (State, error) {
	unlock := s.lock(id.Key())
	defer unlock()

	return s.load(ctx, id)
}

// AddItem adds a menu item to the identity's cart. An existing line for the
// same item only has its quantity incremented; its modifiers stay as first
// chosen.
func (s *Service) AddItem(ctx context.Context, id Identity, req *AddItemRequest) (State, error) {
	item, err := s.lookupItem(req.MenuItemID)
	if err != nil {
		return EmptyState(), err
	}
	return s.addItem(ctx, id, item, req.Quantity, req.SizeID, req.ToppingIDs)
}

func (s *Service) addItem(ctx context.Context, id Identity, item *menu.Item, quantity int, sizeID string, toppingIDs []string) (State, error) {
	unlock := s.lock(id.Key())
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return state, err
	}

	state = s.engine.AddItem(state, item, quantity, sizeID, toppingIDs)
	return state, s.persist(ctx, id, state)
}

// UpdateQuantity sets a line's quantity; below 1 removes the line. Absent
// lines are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, id Identity, menuItemID uint, quantity int) (State, error) {
	unlock := s.lock(id.Key())
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return state, err
	}

	state = s.engine.SetQuantity(state, menuItemID, quantity)
	return state, s.persist(ctx, id, state)
}

// RemoveItem removes a line. Removing an absent line is a no-op.
func (s *Service) RemoveItem(ctx context.Context, id Identity, menuItemID uint) (State, error) {
	unlock := s.lock(id.Key())
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return state, err
	}

	state = s.engine.RemoveItem(state, menuItemID)
	return state, s.persist(ctx, id, state)
}

// SetSize replaces a line's size selection
func (s *Service) SetSize(ctx context.Context, id Identity, menuItemID uint, sizeID string) (State, error) {
	unlock := s.lock(id.Key())
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return state, err
	}

	state = s.engine.SetSize(state, menuItemID, sizeID)
	return state, s.persist(ctx, id, state)
}

// ToggleTopping flips one topping's membership on a line
func (s *Service) ToggleTopping(ctx context.Context, id Identity, menuItemID uint, toppingID string) (State, error) {
	unlock := s.lock(id.Key())
	defer unlock()

	state, err := s.load(ctx, id)
	if err != nil {
		return state, err
	}

	state = s.engine.ToggleTopping(state, menuItemID, toppingID)
	return state, s.persist(ctx, id, state)
}

// Clear empties the identity's cart in memory and in its store
func (s *Service) Clear(ctx context.Context, id Identity) error {
	unlock := s.lock(id.Key())
	defer unlock()

	if err := s.storeFor(id).Clear(ctx, id); err != nil {
		return &PersistError{Key: id.Key(), Err: err}
	}
	return nil
}

// Merge folds a guest cart into a user cart after login. Quantities are
// summed per menu item id; on conflict the user cart's modifiers win, in line
// with add-increments-only semantics. The guest cart is cleared afterwards.
// Identity switches never merge implicitly; callers invoke this explicitly.
func (s *Service) Merge(ctx context.Context, userID uint, deviceID string) (State, error) {
	userIdentity := UserIdentity(userID)
	guestIdentity := GuestIdentity(deviceID)

	unlock := s.lockAll(userIdentity.Key(), guestIdentity.Key())
	defer unlock()

	guestItems, found, err := s.guestStore.Load(ctx, guestIdentity)
	if err != nil {
		return EmptyState(), &LoadError{Key: guestIdentity.Key(), Err: err}
	}

	state, err := s.load(ctx, userIdentity)
	if err != nil {
		return state, err
	}

	if !found || len(guestItems) == 0 {
		return state, nil
	}

	for _, guestLine := range guestItems {
		if i := state.find(guestLine.MenuItemID); i >= 0 {
			state.Items[i].Quantity += guestLine.Quantity
		} else {
			state.Items = append(state.Items, guestLine)
		}
	}
	state = s.engine.Recompute(state)

	if err := s.persist(ctx, userIdentity, state); err != nil {
		return state, err
	}

	if err := s.guestStore.Clear(ctx, guestIdentity); err != nil {
		logrus.WithError(err).WithField("cart_key", guestIdentity.Key()).
			Warn("Failed to clear guest cart after merge")
	}
	return state, nil
}

// Engine exposes the pricing engine for collaborators that reprice cart
// lines at their own boundaries (checkout)
func (s *Service) Engine() *Engine {
	return s.engine
}

// load fetches and reconciles a snapshot; failures surface as LoadError with
// an empty state so the caller never sees stale or partial carts
func (s *Service) load(ctx context.Context, id Identity) (State, error) {
	items, found, err := s.storeFor(id).Load(ctx, id)
	if err != nil {
		return EmptyState(), &LoadError{Key: id.Key(), Err: err}
	}
	if !found {
		return EmptyState(), nil
	}

	state := State{Items: items}
	if state.Items == nil {
		state.Items = []LineItem{}
	}
	return s.engine.Recompute(state), nil
}

// persist writes the snapshot wholesale; a failure is reported as a non-fatal
// PersistError while the in-memory state stays usable
func (s *Service) persist(ctx context.Context, id Identity, state State) error {
	if err := s.storeFor(id).Save(ctx, id, state.Items); err != nil {
		logrus.WithError(err).WithField("cart_key", id.Key()).
			Warn("Failed to persist cart snapshot")
		return &PersistError{Key: id.Key(), Err: err}
	}
	return nil
}

// storeFor selects the backend once per operation from the identity
func (s *Service) storeFor(id Identity) Store {
	if id.IsGuest() {
		return s.guestStore
	}
	return s.userStore
}

// lookupItem validates that a menu item exists and is active
func (s *Service) lookupItem(menuItemID uint) (*menu.Item, error) {
	var item menu.Item
	result := s.db.Where("id = ? AND is_active = ?", menuItemID, true).First(&item)
	if result.Error != nil {
		return nil, fmt.Errorf("menu item not found or inactive")
	}
	return &item, nil
}

// lock serializes all operations on one cart key. Holding the key's mutex
// across load, mutate and persist is what keeps a stale persist from ever
// crossing a fresh load.
func (s *Service) lock(key string) func() {
	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// lockAll acquires multiple cart keys in sorted order to avoid deadlocks
func (s *Service) lockAll(keys ...string) func() {
	sort.Strings(keys)
	unlocks := make([]func(), 0, len(keys))
	for _, key := range keys {
		unlocks = append(unlocks, s.lock(key))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}
