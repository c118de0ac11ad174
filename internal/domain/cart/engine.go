// internal/domain/cart/engine.go
package cart

import (
	"time"

	"github.com/your-org/foodorder-backend/internal/domain/menu"
)

// Engine applies cart state transitions. Every transition is a pure function:
// the input State is never mutated, and the returned State has unit prices,
// line totals and both aggregate totals recomputed from scratch. Full
// recomputation instead of incremental deltas keeps the totals exact across
// arbitrarily long add/remove cycles.
type Engine struct {
	sizes       map[string]menu.SizeOption
	toppings    map[string]menu.ToppingOption
	defaultSize menu.SizeOption
}

// NewEngine creates an engine pricing against the given modifier catalogs.
// The first size option is the default.
func NewEngine(sizes []menu.SizeOption, toppings []menu.ToppingOption) *Engine {
	e := &Engine{
		sizes:    make(map[string]menu.SizeOption, len(sizes)),
		toppings: make(map[string]menu.ToppingOption, len(toppings)),
	}
	for i, size := range sizes {
		e.sizes[size.ID] = size
		if i == 0 {
			e.defaultSize = size
		}
	}
	for _, topping := range toppings {
		e.toppings[topping.ID] = topping
	}
	return e
}

// AddItem adds a menu item to the cart. If a line for the item already exists
// its quantity is incremented and its modifiers are left untouched; otherwise
// a new line is appended with the given size and toppings. Quantity is
// clamped to at least 1.
func (e *Engine) AddItem(state State, item *menu.Item, quantity int, sizeID string, toppingIDs []string) State {
	if quantity < 1 {
		quantity = 1
	}

	next := cloneState(state)
	if i := next.find(item.ID); i >= 0 {
		next.Items[i].Quantity += quantity
		return e.Recompute(next)
	}

	next.Items = append(next.Items, LineItem{
		MenuItemID: item.ID,
		Name:       item.Name,
		Image:      item.Image,
		BasePrice:  item.BasePrice,
		SizeID:     e.normalizeSize(sizeID),
		ToppingIDs: e.normalizeToppings(toppingIDs),
		Quantity:   quantity,
		AddedAt:    time.Now().UTC(),
	})
	return e.Recompute(next)
}

// RemoveItem deletes the line for a menu item. Removing an absent item is a
// no-op, not an error.
func (e *Engine) RemoveItem(state State, menuItemID uint) State {
	i := state.find(menuItemID)
	if i < 0 {
		return cloneState(state)
	}

	next := cloneState(state)
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	return e.Recompute(next)
}

// SetQuantity sets a line's quantity. A quantity below 1 removes the line;
// an absent item is a no-op.
func (e *Engine) SetQuantity(state State, menuItemID uint, quantity int) State {
	if quantity < 1 {
		return e.RemoveItem(state, menuItemID)
	}

	i := state.find(menuItemID)
	if i < 0 {
		return cloneState(state)
	}

	next := cloneState(state)
	next.Items[i].Quantity = quantity
	return e.Recompute(next)
}

// SetSize replaces a line's size selection. Sizes are mutually exclusive.
// An absent item or unknown size id is a no-op.
func (e *Engine) SetSize(state State, menuItemID uint, sizeID string) State {
	i := state.find(menuItemID)
	if i < 0 {
		return cloneState(state)
	}
	if _, ok := e.sizes[sizeID]; !ok {
		return cloneState(state)
	}

	next := cloneState(state)
	next.Items[i].SizeID = sizeID
	return e.Recompute(next)
}

// ToggleTopping flips one topping's membership on a line. An absent item or
// unknown topping id is a no-op.
func (e *Engine) ToggleTopping(state State, menuItemID uint, toppingID string) State {
	i := state.find(menuItemID)
	if i < 0 {
		return cloneState(state)
	}
	if _, ok := e.toppings[toppingID]; !ok {
		return cloneState(state)
	}

	next := cloneState(state)
	line := &next.Items[i]

	removed := false
	for j, id := range line.ToppingIDs {
		if id == toppingID {
			line.ToppingIDs = append(line.ToppingIDs[:j], line.ToppingIDs[j+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		line.ToppingIDs = append(line.ToppingIDs, toppingID)
	}
	return e.Recompute(next)
}

// Clear empties the cart
func (e *Engine) Clear() State {
	return EmptyState()
}

// Recompute rebuilds every derived field from the line items: per-line unit
// price and line total, then both aggregate totals by full summation. It runs
// after every transition and at every persistence boundary, so a loaded
// snapshot is always reconciled against the current modifier catalogs.
func (e *Engine) Recompute(state State) State {
	state.TotalQuantity = 0
	state.TotalAmount = 0

	for i := range state.Items {
		line := &state.Items[i]
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		line.SizeID = e.normalizeSize(line.SizeID)
		line.UnitPrice = e.UnitPrice(line.BasePrice, line.SizeID, line.ToppingIDs)
		line.LineTotal = line.UnitPrice * int64(line.Quantity)

		state.TotalQuantity += line.Quantity
		state.TotalAmount += line.LineTotal
	}
	return state
}

// UnitPrice prices one unit: base price plus the size delta plus the sum of
// topping deltas. Unknown topping ids contribute nothing.
func (e *Engine) UnitPrice(basePrice int64, sizeID string, toppingIDs []string) int64 {
	price := basePrice
	if size, ok := e.sizes[sizeID]; ok {
		price += size.PriceDelta
	} else {
		price += e.defaultSize.PriceDelta
	}
	for _, id := range toppingIDs {
		if topping, ok := e.toppings[id]; ok {
			price += topping.PriceDelta
		}
	}
	return price
}

// normalizeSize maps an empty or unknown size id to the default size
func (e *Engine) normalizeSize(sizeID string) string {
	if _, ok := e.sizes[sizeID]; ok {
		return sizeID
	}
	return e.defaultSize.ID
}

// normalizeToppings deduplicates topping ids and drops unknown ones,
// preserving first-seen order
func (e *Engine) normalizeToppings(toppingIDs []string) []string {
	if len(toppingIDs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(toppingIDs))
	normalized := make([]string, 0, len(toppingIDs))
	for _, id := range toppingIDs {
		if _, ok := e.toppings[id]; !ok || seen[id] {
			continue
		}
		seen[id] = true
		normalized = append(normalized, id)
	}
	return normalized
}

// cloneState deep-copies a State so transitions never alias the caller's slices
func cloneState(state State) State {
	items := make([]LineItem, len(state.Items))
	copy(items, state.Items)
	for i := range items {
		if len(items[i].ToppingIDs) > 0 {
			toppings := make([]string, len(items[i].ToppingIDs))
			copy(toppings, items[i].ToppingIDs)
			items[i].ToppingIDs = toppings
		}
	}
	state.Items = items
	return state
}
