package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/obitflow/obitflow-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "obitflow-auth"}
}

func mintToken(t *testing.T, cfg config.JWTConfig, claims AccessTokenClaims, method jwt.SigningMethod) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func baseClaims(issuer string) AccessTokenClaims {
	homeID := uuid.New()
	return AccessTokenClaims{
		UserID: uuid.New(),
		HomeID: &homeID,
		Role:   "owner",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	want := baseClaims(cfg.Issuer)
	signed := mintToken(t, cfg, want, jwt.SigningMethodHS256)

	got, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if got.UserID != want.UserID {
		t.Fatalf("user id mismatch: got %s want %s", got.UserID, want.UserID)
	}
	if got.HomeID == nil || *got.HomeID != *want.HomeID {
		t.Fatalf("home id mismatch: got %v want %v", got.HomeID, want.HomeID)
	}
	if got.Role != "owner" {
		t.Fatalf("unexpected role %q", got.Role)
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	signed := mintToken(t, cfg, baseClaims("someone-else"), jwt.SigningMethodHS256)

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	claims := baseClaims(cfg.Issuer)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	signed := mintToken(t, cfg, claims, jwt.SigningMethodHS256)

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseAccessTokenRejectsTamperedSecret(t *testing.T) {
	other := config.JWTConfig{Secret: "different", Issuer: "obitflow-auth"}
	signed := mintToken(t, other, baseClaims(other.Issuer), jwt.SigningMethodHS256)

	if _, err := ParseAccessToken(testJWTConfig(), signed); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}
