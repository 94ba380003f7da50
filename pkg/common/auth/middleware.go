package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/envelope"
)

type contextKey int

const (
	claimsKey contextKey = iota
	tokenKey
)

// Middleware rejects requests without a valid bearer token and stores the
// parsed claims plus the raw token in the request context. The raw token is
// kept so it can be forwarded unchanged on outgoing calls.
func (m *TokenManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := BearerToken(r)
		if raw == "" {
			envelope.WriteFailure(w, http.StatusUnauthorized, "Authentication failed", []string{"Authorization header missing"})
			return
		}

		claims, err := m.Parse(raw)
		if err != nil {
			envelope.WriteFailure(w, http.StatusUnauthorized, "Authentication failed", []string{err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = context.WithValue(ctx, tokenKey, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token from the Authorization header, with or
// without the "Bearer " prefix.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
