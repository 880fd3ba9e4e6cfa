package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/TioMeko/Property-Management/pkg/errors"
	"github.com/TioMeko/Property-Management/pkg/logger"
)

type contextKeyType string

const identityKey contextKeyType = "identity"

// Identity is the minimal authenticated-user view attached to the request
// context by the Authenticate middleware.
type Identity struct {
	ID    string
	Role  string
	Name  string
	Email string
}

// Claims are the fields extracted from a verified session token.
type Claims struct {
	UserID string
	Role   string
	Name   string
}

// TokenVerifier validates a signed session token and returns its claims.
type TokenVerifier func(token string) (*Claims, error)

// IdentityLookup resolves a verified user ID against the identity store.
// It must return apperrors.ErrNotFound (possibly wrapped) when the identity
// no longer exists, and any other error for store failures.
type IdentityLookup func(ctx context.Context, userID string) (*Identity, error)

// Authenticate rejects requests without a valid bearer token. The credential
// must be exactly "Bearer <token>"; the scheme is case-sensitive and extra
// segments are rejected without partial parsing. Verified claims are then
// resolved against the identity store so that a deleted user's still-valid
// token stops working.
func Authenticate(verify TokenVerifier, lookup IdentityLookup, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w)
				return
			}

			claims, err := verify(parts[1])
			if err != nil {
				writeUnauthorized(w)
				return
			}

			identity, err := lookup(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					writeUnauthorized(w)
					return
				}
				l := logger.FromContext(r.Context())
				if l == slog.Default() && log != nil {
					l = log
				}
				l.ErrorContext(r.Context(), "identity lookup failed",
					slog.String("user_id", claims.UserID),
					slog.String("error", err.Error()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Server error"})
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			ctx = logger.WithUserID(ctx, identity.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole restricts a route to the given allow-list of roles. It must be
// mounted after Authenticate; a request that never authenticated carries no
// identity and is rejected here as well.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				writeUnauthorized(w)
				return
			}
			if _, ok := roleSet[identity.Role]; !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the authenticated identity, or nil if the
// request did not pass through Authenticate.
func IdentityFromContext(ctx context.Context) *Identity {
	if id, ok := ctx.Value(identityKey).(*Identity); ok {
		return id
	}
	return nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}
