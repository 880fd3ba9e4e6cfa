package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/TioMeko/Property-Management/internal/domain"
	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
)

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed, stateless session tokens. There is
// no server-side record and no revocation list: a token stays valid until its
// embedded expiry passes.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenManager creates a token manager with the given signing secret and
// validity window.
func NewTokenManager(secret string, validity time.Duration) *TokenManager {
	return &TokenManager{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
}

// Issue creates a signed token embedding the user's id, role, and name, with
// an expiry exactly one validity window from issuance.
func (m *TokenManager) Issue(user *domain.User) (string, error) {
	now := m.now().UTC()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
			Issuer:    "property-management",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a session token, returning the embedded claims.
// Every failure mode (bad signature, malformed token, wrong signing method,
// expired) collapses into ErrInvalidToken; no payload field is trusted before
// the signature check.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apperrors.InvalidToken(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.InvalidToken(fmt.Errorf("unexpected claims type"))
	}

	return claims, nil
}
