package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/backend/internal/auth"
)

// TokenVerifier checks an Authorization header. *auth.Tokens implements it.
type TokenVerifier interface {
	Verify(header string) (auth.Claims, bool)
}

type claimsKey struct{}

// RequireAuth rejects requests without a valid bearer token with
// 401 {"error":"Unauthorized"}. On success the claims are stored in the
// request context; read them with ClaimsFrom or UserID.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := tokens.Verify(r.Header.Get("Authorization"))
			if !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFrom returns the claims stored by RequireAuth.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return c, ok
}

// UserID returns the authenticated user's id, or uuid.Nil outside RequireAuth.
func UserID(ctx context.Context) uuid.UUID {
	c, _ := ClaimsFrom(ctx)
	return c.UserID
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
