package menu

import "testing"

func TestDefaultSizeOptions(t *testing.T) {
	sizes := DefaultSizeOptions()
	if len(sizes) == 0 {
		t.Fatal("no size options")
	}

	// The first size is the default selection and costs nothing extra.
	if sizes[0].ID != "small" || sizes[0].PriceDelta != 0 {
		t.Errorf("default size = %+v, want small with zero delta", sizes[0])
	}

	seen := map[string]bool{}
	for _, size := range sizes {
		if size.ID == "" || size.Name == "" {
			t.Errorf("incomplete size option: %+v", size)
		}
		if seen[size.ID] {
			t.Errorf("duplicate size id %q", size.ID)
		}
		seen[size.ID] = true
		if size.PriceDelta < 0 {
			t.Errorf("size %q has negative delta %d", size.ID, size.PriceDelta)
		}
	}
}

func TestDefaultToppingOptions(t *testing.T) {
	toppings := DefaultToppingOptions()
	if len(toppings) == 0 {
		t.Fatal("no topping options")
	}

	seen := map[string]bool{}
	for _, topping := range toppings {
		if topping.ID == "" || topping.Name == "" {
			t.Errorf("incomplete topping option: %+v", topping)
		}
		if seen[topping.ID] {
			t.Errorf("duplicate topping id %q", topping.ID)
		}
		seen[topping.ID] = true
		if topping.PriceDelta < 0 {
			t.Errorf("topping %q has negative delta %d", topping.ID, topping.PriceDelta)
		}
	}
}
