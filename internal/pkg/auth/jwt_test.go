package auth

import (
	"testing"
	"time"

	"github.com/your-org/foodorder-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test-api"},
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(7, "user@example.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("user id = %d, want 7", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim to survive the round trip")
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateRefreshToken(7, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := manager.ValidateRefreshToken(token); err != nil {
		t.Errorf("ValidateRefreshToken: %v", err)
	}
}

func TestRefreshTokenNeverCarriesAdmin(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateRefreshToken(7, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := manager.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.IsAdmin {
		t.Error("refresh token must not carry admin status")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(7, "user@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := testConfig()
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def.ghi": "abc.def.ghi",
		"bearer abc.def.ghi": "",
		"abc.def.ghi":        "",
		"":                   "",
	}
	for header, want := range cases {
		if got := ExtractTokenFromHeader(header); got != want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", header, got, want)
		}
	}
}
