package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port == "" {
		t.Error("expected a default server port")
	}
	if cfg.Cart.MaxQuantity < 1 {
		t.Errorf("cart max quantity = %d, want >= 1", cfg.Cart.MaxQuantity)
	}
	if cfg.Cart.GuestCartTTL <= 0 {
		t.Errorf("guest cart TTL = %v, want positive", cfg.Cart.GuestCartTTL)
	}
	if cfg.Store.Currency != "VND" {
		t.Errorf("default currency = %q, want VND", cfg.Store.Currency)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("CART_GUEST_TTL", "48h")
	t.Setenv("CART_MAX_QUANTITY", "5")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Cart.GuestCartTTL != 48*time.Hour {
		t.Errorf("guest cart TTL = %v, want 48h", cfg.Cart.GuestCartTTL)
	}
	if cfg.Cart.MaxQuantity != 5 {
		t.Errorf("cart max quantity = %d, want 5", cfg.Cart.MaxQuantity)
	}
	if !cfg.IsProduction() || cfg.IsDevelopment() {
		t.Error("expected production mode")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"short jwt secret":  func(c *Config) { c.JWT.Secret = "short" },
		"missing db host":   func(c *Config) { c.Database.Host = "" },
		"missing db name":   func(c *Config) { c.Database.Name = "" },
		"zero max quantity": func(c *Config) { c.Cart.MaxQuantity = 0 },
		"zero guest ttl":    func(c *Config) { c.Cart.GuestCartTTL = 0 },
	}

	for name, corrupt := range cases {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		corrupt(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", name)
		}
	}
}
