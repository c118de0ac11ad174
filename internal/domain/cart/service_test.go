package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/your-org/foodorder-backend/internal/domain/menu"
)

// memStore is an in-memory Store that persists snapshots through the same
// JSON marshalling the real stores use.
type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	failLoad bool
	failSave bool
	saves    int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Load(ctx context.Context, id Identity) ([]LineItem, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failLoad {
		return nil, false, fmt.Errorf("store unreachable")
	}
	data, ok := m.data[id.Key()]
	if !ok {
		return nil, false, nil
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (m *memStore) Save(ctx context.Context, id Identity, items []LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSave {
		return fmt.Errorf("store unreachable")
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.data[id.Key()] = data
	m.saves++
	return nil
}

func (m *memStore) Clear(ctx context.Context, id Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, id.Key())
	return nil
}

func newTestService(userStore, guestStore Store) *Service {
	return &Service{
		engine:     NewEngine(menu.DefaultSizeOptions(), menu.DefaultToppingOptions()),
		userStore:  userStore,
		guestStore: guestStore,
		locks:      make(map[string]*sync.Mutex),
	}
}

func TestConcurrentAddsCoalesce(t *testing.T) {
	store := newMemStore()
	service := newTestService(newMemStore(), store)
	identity := GuestIdentity("device-1")
	item := testItem(1, 40000)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := service.addItem(context.Background(), identity, item, 1, "", nil); err != nil {
				t.Errorf("addItem: %v", err)
			}
		}()
	}
	wg.Wait()

	state, err := service.Get(context.Background(), identity)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("expected a single coalesced line, got %d", len(state.Items))
	}
	if state.Items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", state.Items[0].Quantity)
	}
	checkTotals(t, state)
}

func TestLoadFailureYieldsEmptyCartAndError(t *testing.T) {
	store := newMemStore()
	store.failLoad = true
	service := newTestService(newMemStore(), store)

	state, err := service.Get(context.Background(), GuestIdentity("device-1"))
	if !IsLoadError(err) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !state.IsEmpty() || state.TotalQuantity != 0 || state.TotalAmount != 0 {
		t.Errorf("expected empty state on load failure, got %+v", state)
	}
}

func TestPersistFailureKeepsStateUsable(t *testing.T) {
	store := newMemStore()
	store.failSave = true
	service := newTestService(newMemStore(), store)

	state, err := service.addItem(context.Background(), GuestIdentity("device-1"), testItem(1, 40000), 1, "", nil)
	if !IsPersistError(err) {
		t.Fatalf("expected PersistError, got %v", err)
	}
	if len(state.Items) != 1 || state.TotalAmount != 40000 {
		t.Errorf("in-memory state must stay usable on persist failure, got %+v", state)
	}
}

func TestMutationOnAbsentLineIsNoOp(t *testing.T) {
	service := newTestService(newMemStore(), newMemStore())
	identity := GuestIdentity("device-1")
	ctx := context.Background()

	if _, err := service.addItem(ctx, identity, testItem(1, 40000), 1, "", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}

	for name, mutate := range map[string]func() (State, error){
		"remove":   func() (State, error) { return service.RemoveItem(ctx, identity, 99) },
		"quantity": func() (State, error) { return service.UpdateQuantity(ctx, identity, 99, 5) },
		"size":     func() (State, error) { return service.SetSize(ctx, identity, 99, "large") },
		"topping":  func() (State, error) { return service.ToggleTopping(ctx, identity, 99, "ot") },
	} {
		state, err := mutate()
		if err != nil {
			t.Errorf("%s on absent line returned error: %v", name, err)
		}
		if len(state.Items) != 1 || state.Items[0].MenuItemID != 1 {
			t.Errorf("%s on absent line changed the cart: %+v", name, state)
		}
	}
}

func TestIdentityIsolation(t *testing.T) {
	userStore := newMemStore()
	guestStore := newMemStore()
	service := newTestService(userStore, guestStore)
	ctx := context.Background()

	// User U's cart contains item A.
	user := UserIdentity(7)
	if _, err := service.addItem(ctx, user, testItem(1, 40000), 1, "", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}

	// After logout the guest store is read instead; U's item must not leak.
	guest := GuestIdentity("device-1")
	state, err := service.Get(ctx, guest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !state.IsEmpty() {
		t.Errorf("guest cart leaked user items: %+v", state.Items)
	}

	// Logging back in restores the user's own cart.
	state, err = service.Get(ctx, user)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].MenuItemID != 1 {
		t.Errorf("user cart lost its item: %+v", state.Items)
	}
}

func TestMergeGuestCartIntoUserCart(t *testing.T) {
	userStore := newMemStore()
	guestStore := newMemStore()
	service := newTestService(userStore, guestStore)
	ctx := context.Background()

	user := UserIdentity(7)
	guest := GuestIdentity("device-1")

	// User already has item 1 (medium) and item 2; the guest picked item 1
	// again (large) plus item 3.
	if _, err := service.addItem(ctx, user, testItem(1, 40000), 1, "medium", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}
	if _, err := service.addItem(ctx, user, testItem(2, 60000), 2, "", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}
	if _, err := service.addItem(ctx, guest, testItem(1, 40000), 2, "large", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}
	if _, err := service.addItem(ctx, guest, testItem(3, 50000), 1, "", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}

	state, err := service.Merge(ctx, 7, "device-1")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if len(state.Items) != 3 {
		t.Fatalf("expected 3 lines after merge, got %d", len(state.Items))
	}

	byID := map[uint]LineItem{}
	for _, line := range state.Items {
		byID[line.MenuItemID] = line
	}

	// Quantities are summed; the user cart's modifiers win on conflict.
	if byID[1].Quantity != 3 {
		t.Errorf("item 1 quantity = %d, want 3", byID[1].Quantity)
	}
	if byID[1].SizeID != "medium" {
		t.Errorf("item 1 size = %q, want user's %q", byID[1].SizeID, "medium")
	}
	if byID[2].Quantity != 2 || byID[3].Quantity != 1 {
		t.Errorf("unexpected quantities after merge: %+v", byID)
	}
	checkTotals(t, state)

	// The guest cart is cleared after a successful merge.
	guestState, err := service.Get(ctx, guest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !guestState.IsEmpty() {
		t.Errorf("guest cart not cleared after merge: %+v", guestState.Items)
	}
}

func TestMergeWithEmptyGuestCartIsNoOp(t *testing.T) {
	service := newTestService(newMemStore(), newMemStore())
	ctx := context.Background()

	if _, err := service.addItem(ctx, UserIdentity(7), testItem(1, 40000), 1, "", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}

	state, err := service.Merge(ctx, 7, "device-1")
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].Quantity != 1 {
		t.Errorf("merge with empty guest cart changed user cart: %+v", state.Items)
	}
}

func TestClearEmptiesStore(t *testing.T) {
	service := newTestService(newMemStore(), newMemStore())
	identity := GuestIdentity("device-1")
	ctx := context.Background()

	if _, err := service.addItem(ctx, identity, testItem(1, 40000), 2, "", nil); err != nil {
		t.Fatalf("addItem: %v", err)
	}
	if err := service.Clear(ctx, identity); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	state, err := service.Get(ctx, identity)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !state.IsEmpty() || state.TotalQuantity != 0 || state.TotalAmount != 0 {
		t.Errorf("cart not empty after clear: %+v", state)
	}
}
