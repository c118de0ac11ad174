package auth

import (
	"strings"
	"testing"

	"github.com/your-org/foodorder-backend/internal/config"
)

func passwordManager() *PasswordManager {
	return NewPasswordManager(&config.Config{
		Security: config.SecurityConfig{BcryptCost: 4}, // minimum cost keeps tests fast
	})
}

func TestHashAndVerifyPassword(t *testing.T) {
	manager := passwordManager()

	hash, err := manager.HashPassword("banhmi2024")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "banhmi2024" {
		t.Fatal("hash equals plaintext")
	}

	if err := manager.VerifyPassword("banhmi2024", hash); err != nil {
		t.Errorf("VerifyPassword with correct password: %v", err)
	}
	if err := manager.VerifyPassword("wrong", hash); err == nil {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	manager := passwordManager()

	valid := []string{"banhmi2024", "Pho45000vnd", "a1b2c3d4"}
	for _, password := range valid {
		if err := manager.ValidatePassword(password); err != nil {
			t.Errorf("ValidatePassword(%q) = %v, want nil", password, err)
		}
	}

	invalid := []string{
		"short1",                        // too short
		"onlyletters",                   // no number
		"12345678",                      // no letter
		strings.Repeat("a", 129) + "1",  // too long
	}
	for _, password := range invalid {
		if err := manager.ValidatePassword(password); err == nil {
			t.Errorf("ValidatePassword(%q) = nil, want error", password)
		}
	}
}
