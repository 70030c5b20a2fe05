package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	domerr "github.com/hireloop/interview-api/internal/errors"
)

// TokenClaims is the verified content of an access token. Subject carries
// the username so the auth guard re-resolves the live user row on every
// request.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

type JWTService struct {
	secretKey  []byte
	expiration time.Duration
}

func NewJWTService(secretKey string, expiration time.Duration) *JWTService {
	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
	}
}

// Expiration returns the configured token lifetime.
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// IssueToken signs an HS256 access token for the subject. A zero ttl uses
// the configured expiration.
func (s *JWTService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.expiration
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", domerr.WrapError(domerr.ErrInternal, err)
	}

	return tokenString, nil
}

// VerifyToken parses and validates an access token. Every failure mode,
// bad signature, wrong algorithm, expiry, missing subject, collapses into
// ErrInvalidToken so callers cannot leak the distinction.
func (s *JWTService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domerr.ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, domerr.WrapError(domerr.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, domerr.ErrInvalidToken
	}

	verified := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}

	return verified, nil
}
