package jwt

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

var claimsContextKey = &contextKey{name: "jwt_claims"}

// Subject returns the token subject stored in the context by Middleware.
// The second return value is false for requests that did not pass through it.
func Subject(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(claimsContextKey).(AccessClaims)
	if !ok {
		return "", false
	}
	return claims.Subject, true
}

// Middleware rejects requests without a valid "Authorization: Bearer <token>"
// header (RFC 6750) and stores the verified claims in the request context for
// downstream handlers.
func Middleware(service *Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				unauthorized(w)
				return
			}

			claims, err := service.Parse(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", ErrInvalidToken
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

// unauthorized writes a fixed 401 body; token parse errors are never
// forwarded to the client.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing token"})
}
