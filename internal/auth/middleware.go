package auth

import (
	"context"
	"errors"
	"net/http"

	"prepwise/server/internal/models"
	"prepwise/server/internal/utils"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const principalKey contextKey = "principal"

// RequireSession gates a handler behind session verification. On
// failure it short-circuits with 401 and the wrapped handler is never
// invoked; on success the resolved principal travels in the request
// context, never in a global.
func RequireSession(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := v.VerifyRequest(r)
			if err != nil {
				if errors.Is(err, ErrNoSession) {
					utils.Fail(w, http.StatusUnauthorized, "no_session", "No session found")
				} else {
					utils.Fail(w, http.StatusUnauthorized, "invalid_session", "Invalid or expired session")
				}
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom returns the principal RequireSession attached, or nil
// on an ungated route.
func PrincipalFrom(r *http.Request) *models.Principal {
	p, _ := r.Context().Value(principalKey).(*models.Principal)
	return p
}
