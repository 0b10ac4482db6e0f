// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mwsociety/memberhub/internal/app/system/httpx"
)

type contextKey string

const claimsKey contextKey = "auth.claims"

// RequireAdmin rejects requests that do not carry a valid admin bearer
// token. On success the claims are stored on the request context for
// handlers that need the approver identity.
func (tm *TokenManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := tm.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the authenticated admin's claims from the request
// context, or nil outside RequireAdmin.
func ClaimsFrom(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}
