package cart

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/your-org/foodorder-backend/internal/domain/menu"
)

func newTestEngine() *Engine {
	return NewEngine(menu.DefaultSizeOptions(), menu.DefaultToppingOptions())
}

func testItem(id uint, basePrice int64) *menu.Item {
	return &menu.Item{
		ID:        id,
		Name:      "Chả Nem Hà Nội",
		BasePrice: basePrice,
		Category:  "cha-nem",
		IsActive:  true,
	}
}

// checkTotals verifies the aggregate invariant: totals always equal the full
// sum over the line items.
func checkTotals(t *testing.T, state State) {
	t.Helper()

	wantQuantity := 0
	var wantAmount int64
	for _, line := range state.Items {
		wantQuantity += line.Quantity
		wantAmount += line.UnitPrice * int64(line.Quantity)
	}

	if state.TotalQuantity != wantQuantity {
		t.Errorf("total quantity = %d, want %d", state.TotalQuantity, wantQuantity)
	}
	if state.TotalAmount != wantAmount {
		t.Errorf("total amount = %d, want %d", state.TotalAmount, wantAmount)
	}
}

func TestPricingScenario(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 3, "medium", []string{"rau-thom", "hanh-kho"})

	if len(state.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(state.Items))
	}

	line := state.Items[0]
	if line.UnitPrice != 60000 {
		t.Errorf("unit price = %d, want 60000", line.UnitPrice)
	}
	if line.LineTotal != 180000 {
		t.Errorf("line total = %d, want 180000", line.LineTotal)
	}
	if state.TotalQuantity != 3 {
		t.Errorf("total quantity = %d, want 3", state.TotalQuantity)
	}
	if state.TotalAmount != 180000 {
		t.Errorf("total amount = %d, want 180000", state.TotalAmount)
	}
	checkTotals(t, state)
}

func TestAddItemDefaults(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 1, "", nil)

	line := state.Items[0]
	if line.SizeID != "small" {
		t.Errorf("size = %q, want default %q", line.SizeID, "small")
	}
	if line.UnitPrice != 40000 {
		t.Errorf("unit price = %d, want base price 40000", line.UnitPrice)
	}
}

func TestAddExistingItemIncrementsQuantityOnly(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 1, "medium", []string{"ot"})
	// Second add with different modifiers must not touch the existing line's
	// size or toppings; only the quantity grows.
	state = engine.AddItem(state, testItem(1, 40000), 2, "large", []string{"chanh", "gia-vi"})

	if len(state.Items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(state.Items))
	}

	line := state.Items[0]
	if line.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", line.Quantity)
	}
	if line.SizeID != "medium" {
		t.Errorf("size = %q, want original %q", line.SizeID, "medium")
	}
	if !reflect.DeepEqual(line.ToppingIDs, []string{"ot"}) {
		t.Errorf("toppings = %v, want original [ot]", line.ToppingIDs)
	}
	if line.UnitPrice != 55000 {
		t.Errorf("unit price = %d, want 55000", line.UnitPrice)
	}
	checkTotals(t, state)
}

func TestAddItemClampsNonPositiveQuantity(t *testing.T) {
	engine := newTestEngine()

	for _, quantity := range []int{0, -5} {
		state := engine.AddItem(EmptyState(), testItem(1, 40000), quantity, "", nil)
		if state.Items[0].Quantity != 1 {
			t.Errorf("AddItem with quantity %d: got %d, want clamp to 1", quantity, state.Items[0].Quantity)
		}
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 2, "", nil)
	state = engine.AddItem(state, testItem(2, 60000), 1, "", nil)

	once := engine.RemoveItem(state, 1)
	twice := engine.RemoveItem(once, 1)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second remove changed state: %+v vs %+v", once, twice)
	}
	if len(once.Items) != 1 || once.Items[0].MenuItemID != 2 {
		t.Errorf("unexpected items after removal: %+v", once.Items)
	}
	checkTotals(t, once)
}

func TestAddThenRemoveRestoresEmptyCart(t *testing.T) {
	engine := newTestEngine()

	before := EmptyState()
	state := engine.AddItem(before, testItem(1, 40000), 1, "medium", []string{"ot"})
	after := engine.RemoveItem(state, 1)

	if !reflect.DeepEqual(before, after) {
		t.Errorf("add-then-remove did not restore empty cart: %+v", after)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 2, "", nil)

	viaSetQuantity := engine.SetQuantity(state, 1, 0)
	viaRemove := engine.RemoveItem(state, 1)

	if !reflect.DeepEqual(viaSetQuantity, viaRemove) {
		t.Errorf("SetQuantity(0) != RemoveItem: %+v vs %+v", viaSetQuantity, viaRemove)
	}
}

func TestSetQuantityAbsentItemIsNoOp(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 1, "", nil)
	next := engine.SetQuantity(state, 99, 5)

	if !reflect.DeepEqual(state, next) {
		t.Errorf("SetQuantity on absent item changed state")
	}
}

func TestSetQuantityRepricesLine(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 1, "medium", nil)
	state = engine.SetQuantity(state, 1, 4)

	if state.Items[0].LineTotal != 200000 {
		t.Errorf("line total = %d, want 200000", state.Items[0].LineTotal)
	}
	checkTotals(t, state)
}

func TestSetSize(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 2, "small", nil)
	state = engine.SetSize(state, 1, "large")

	if state.Items[0].SizeID != "large" {
		t.Errorf("size = %q, want large", state.Items[0].SizeID)
	}
	if state.Items[0].UnitPrice != 60000 {
		t.Errorf("unit price = %d, want 60000", state.Items[0].UnitPrice)
	}
	checkTotals(t, state)

	// Unknown size id is ignored
	next := engine.SetSize(state, 1, "jumbo")
	if !reflect.DeepEqual(state, next) {
		t.Errorf("unknown size id changed state")
	}
}

func TestToggleTopping(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 1, "", nil)

	state = engine.ToggleTopping(state, 1, "ot")
	if state.Items[0].UnitPrice != 45000 {
		t.Errorf("unit price after toggle on = %d, want 45000", state.Items[0].UnitPrice)
	}

	state = engine.ToggleTopping(state, 1, "ot")
	if state.Items[0].UnitPrice != 40000 {
		t.Errorf("unit price after toggle off = %d, want 40000", state.Items[0].UnitPrice)
	}
	if len(state.Items[0].ToppingIDs) != 0 {
		t.Errorf("toppings = %v, want empty", state.Items[0].ToppingIDs)
	}

	// Unknown topping id is ignored
	next := engine.ToggleTopping(state, 1, "caviar")
	if !reflect.DeepEqual(state, next) {
		t.Errorf("unknown topping id changed state")
	}
	checkTotals(t, state)
}

func TestUniquenessInvariant(t *testing.T) {
	engine := newTestEngine()

	state := EmptyState()
	for i := 0; i < 5; i++ {
		state = engine.AddItem(state, testItem(1, 40000), 1, "", nil)
		state = engine.AddItem(state, testItem(2, 60000), 1, "", nil)
	}

	seen := map[uint]bool{}
	for _, line := range state.Items {
		if seen[line.MenuItemID] {
			t.Fatalf("duplicate line for menu item %d", line.MenuItemID)
		}
		seen[line.MenuItemID] = true
	}
	checkTotals(t, state)
}

func TestTransitionsArePure(t *testing.T) {
	engine := newTestEngine()

	original := engine.AddItem(EmptyState(), testItem(1, 40000), 2, "medium", []string{"ot"})
	snapshot := cloneState(original)

	engine.AddItem(original, testItem(1, 40000), 1, "", nil)
	engine.SetQuantity(original, 1, 9)
	engine.SetSize(original, 1, "large")
	engine.ToggleTopping(original, 1, "chanh")
	engine.RemoveItem(original, 1)

	if !reflect.DeepEqual(original, snapshot) {
		t.Errorf("transition mutated its input state: %+v vs %+v", original, snapshot)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 3, "medium", []string{"rau-thom", "hanh-kho"})
	state = engine.AddItem(state, testItem(2, 60000), 1, "large", nil)
	state = engine.ToggleTopping(state, 2, "nuoc-mam")

	// Stores persist line items wholesale; totals are reconciled on load.
	data, err := json.Marshal(state.Items)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := engine.Recompute(State{Items: items})
	if !reflect.DeepEqual(state, restored) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", restored, state)
	}
}

func TestRecomputeReconcilesTamperedTotals(t *testing.T) {
	engine := newTestEngine()

	state := engine.AddItem(EmptyState(), testItem(1, 40000), 2, "medium", nil)
	state.TotalAmount = 1
	state.TotalQuantity = 99
	state.Items[0].UnitPrice = 7

	state = engine.Recompute(state)
	if state.Items[0].UnitPrice != 50000 {
		t.Errorf("unit price = %d, want 50000", state.Items[0].UnitPrice)
	}
	checkTotals(t, state)
}
