package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domerr "github.com/hireloop/interview-api/internal/errors"
)

func TestJWTServiceIssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 30*time.Minute)

	tokenString, err := svc.IssueToken("alice", 0)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	if tokenString == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := svc.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("expected subject alice, got %q", claims.Subject)
	}

	remaining := time.Until(claims.ExpiresAt)
	if remaining <= 25*time.Minute || remaining > 30*time.Minute {
		t.Errorf("unexpected expiry window: %v remaining", remaining)
	}
}

func TestJWTServiceCustomTTL(t *testing.T) {
	svc := NewJWTService("test-secret", 30*time.Minute)

	tokenString, err := svc.IssueToken("bob", 2*time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	claims, err := svc.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}

	remaining := time.Until(claims.ExpiresAt)
	if remaining <= 90*time.Minute {
		t.Errorf("expected roughly two hour expiry, got %v remaining", remaining)
	}
}

func TestJWTServiceExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", 30*time.Minute)

	tokenString, err := svc.IssueToken("carol", -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	_, err = svc.VerifyToken(tokenString)
	if !errors.Is(err, domerr.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTServiceWrongKey(t *testing.T) {
	issuer := NewJWTService("issuer-secret", 30*time.Minute)
	verifier := NewJWTService("other-secret", 30*time.Minute)

	tokenString, err := issuer.IssueToken("dave", 0)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	_, err = verifier.VerifyToken(tokenString)
	if !errors.Is(err, domerr.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestJWTServiceMalformedToken(t *testing.T) {
	svc := NewJWTService("test-secret", 30*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.VerifyToken(tt.token); !errors.Is(err, domerr.ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTServiceRejectsUnsignedToken(t *testing.T) {
	svc := NewJWTService("test-secret", 30*time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "eve",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := svc.VerifyToken(tokenString); !errors.Is(err, domerr.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg none, got %v", err)
	}
}
