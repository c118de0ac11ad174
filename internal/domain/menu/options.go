// internal/domain/menu/options.go
package menu

// Modifier catalogs are static configuration. Sizes are mutually exclusive
// (the first entry is the default), toppings form an independent set.

// DefaultSizeOptions returns the size modifier catalog
func DefaultSizeOptions() []SizeOption {
	return []SizeOption{
		{ID: "small", Name: "Nhỏ", PriceDelta: 0},
		{ID: "medium", Name: "Vừa", PriceDelta: 10000},
		{ID: "large", Name: "Lớn", PriceDelta: 20000},
	}
}

// DefaultToppingOptions returns the topping modifier catalog
func DefaultToppingOptions() []ToppingOption {
	return []ToppingOption{
		{ID: "rau-thom", Name: "Rau thơm", PriceDelta: 5000},
		{ID: "hanh-kho", Name: "Hành khô", PriceDelta: 5000},
		{ID: "ot", Name: "Ớt", PriceDelta: 5000},
		{ID: "chanh", Name: "Chanh", PriceDelta: 5000},
		{ID: "tuong-ot", Name: "Tương ớt", PriceDelta: 5000},
		{ID: "tuong-dau", Name: "Tương đậu", PriceDelta: 5000},
		{ID: "nuoc-mam", Name: "Nước mắm", PriceDelta: 5000},
		{ID: "gia-vi", Name: "Gia vị", PriceDelta: 5000},
	}
}
