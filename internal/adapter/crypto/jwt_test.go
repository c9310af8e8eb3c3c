package crypto

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/hirecode-2025.net/internal/config"
	"gitlab.com/hirecode-2025.net/internal/domain"
)

const (
	testSecret  = "0123456789abcdef0123456789abcdef"
	otherSecret = "fedcba9876543210fedcba9876543210"
)

func testService(t *testing.T, secret string) *JWTServiceImpl {
	t.Helper()
	svc, err := NewJWTService(&config.JwtConfig{Secret: secret, TokenTTL: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	svc.BcryptCost = bcrypt.MinCost
	return svc
}

func TestNewJWTServiceRejectsWeakSecret(t *testing.T) {
	for name, secret := range map[string]string{
		"empty":    "",
		"short":    "s3cret",
		"one less": testSecret[:MinSecretLength-1],
	} {
		if _, err := NewJWTService(&config.JwtConfig{Secret: secret}); !errors.Is(err, ErrWeakSecret) {
			t.Errorf("%s: err = %v, want %v", name, err, ErrWeakSecret)
		}
	}

	svc, err := NewJWTService(&config.JwtConfig{Secret: testSecret})
	if err != nil {
		t.Fatal(err)
	}
	if svc.TokenTTL != time.Hour {
		t.Fatalf("default ttl = %v", svc.TokenTTL)
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	svc := testService(t, testSecret)
	ctx := context.Background()

	token, err := svc.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, map[string]interface{}{
		"sub":         domain.SubjectCandidate,
		"permission":  []string{domain.PermissionExecute, domain.PermissionSubmit},
		"access_code": "HIRE2024",
	})
	if err != nil {
		t.Fatal(err)
	}

	payload, err := svc.ParseTokenHMAC(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if payload.Subject != domain.SubjectCandidate || payload.AccessCode != "HIRE2024" {
		t.Errorf("payload = %+v", payload)
	}
	if !payload.HasPermission(domain.PermissionExecute) || payload.HasPermission(domain.PermissionReview) {
		t.Errorf("permissions = %v", payload.Permission)
	}
}

func TestParseTokenRejects(t *testing.T) {
	svc := testService(t, testSecret)
	ctx := context.Background()

	other, _ := testService(t, otherSecret).GenerateTokenHMAC(ctx, "HS256", map[string]interface{}{"sub": "x"})
	expired, _ := svc.GenerateTokenHMAC(ctx, "HS256", map[string]interface{}{
		"sub": "x",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte(testSecret))

	for name, token := range map[string]string{
		"wrong secret": other,
		"expired":      expired,
		"no expiry":    noExp,
		"garbage":      "a.b.c",
		"empty":        "",
	} {
		if _, err := svc.ParseTokenHMAC(ctx, token); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestGenerateTokenRejectsNonHMAC(t *testing.T) {
	svc := testService(t, testSecret)
	if _, err := svc.GenerateTokenHMAC(context.Background(), "RS256", map[string]interface{}{}); err == nil {
		t.Fatal("expected error for RS256")
	}
	if _, err := svc.GenerateTokenHMAC(context.Background(), "nope", map[string]interface{}{}); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestPasswordHashing(t *testing.T) {
	svc := testService(t, testSecret)
	ctx := context.Background()

	hash, err := svc.EncryptPassword(ctx, "HIRE2024")
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := svc.VerifyPassword(ctx, hash, "HIRE2024"); !ok || err != nil {
		t.Fatalf("VerifyPassword(right) = %v, %v", ok, err)
	}
	if ok, _ := svc.VerifyPassword(ctx, hash, "WRONG"); ok {
		t.Fatal("VerifyPassword(wrong) = true")
	}
}
