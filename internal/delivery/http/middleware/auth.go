// Package middleware holds the HTTP middleware: auth, logging, CORS, metrics.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "evently/internal/delivery/http/helpers"
	"evently/internal/domain"
)

type contextKey string

const externalKeyKey contextKey = "externalKey"

// SetExternalKey returns a context carrying the identity-provider key of the
// authenticated caller. Used by the auth middleware.
func SetExternalKey(ctx context.Context, externalKey string) context.Context {
	return context.WithValue(ctx, externalKeyKey, externalKey)
}

// ExternalKeyFromContext returns the authenticated caller's identity-provider
// key from the context, if present.
func ExternalKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(externalKeyKey).(string)
	return key, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// caller's external identity key in the request context. If the token is
// missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			externalKey, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetExternalKey(r.Context(), externalKey))
			next(w, r)
		}
	}
}
