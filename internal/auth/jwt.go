package auth

import (
	"errors"
	"time"

	"ewaste_backend/internal/config"
	"ewaste_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSecret = errors.New("jwt secret is not configured")

// Claims are the session token claims: the subject is the account
// email (the principal) and Role is the single role tag picked at
// login. Tokens are stateless; there is no revocation list, a token
// stays valid until its natural expiry.
type Claims struct {
	jwt.RegisteredClaims
	Role models.UserRole `json:"role"`
}

func signingKey() ([]byte, error) {
	secret := config.GetConfig().JWT.Secret
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return []byte(secret), nil
}

// GenerateToken issues a signed HS256 token for the principal with the
// configured TTL (24h by default).
func GenerateToken(principal string, role models.UserRole) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}

	ttl := time.Duration(config.GetConfig().JWT.TTL) * time.Hour
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(raw string) (*Claims, error) {
	key, err := signingKey()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ValidateToken is the best-effort check: false on any parse,
// signature or expiry failure.
func ValidateToken(raw string) bool {
	_, err := ParseToken(raw)
	return err == nil
}

// ExtractPrincipal returns the token subject. Callers are expected to
// have validated the token first.
func ExtractPrincipal(raw string) string {
	claims, err := ParseToken(raw)
	if err != nil {
		return ""
	}
	return claims.Subject
}
