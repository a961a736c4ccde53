// Package auth provides bearer-token authentication for Planta.
//
// Clients present the access token issued at registration as the raw
// value of the Authorization header (no scheme prefix). Every request to
// a gated endpoint re-resolves the token against the credential store;
// there is no session state in the middleware itself.
package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/planta-io/planta/internal/domain"
)

// TokenResolver resolves an opaque access token to the user holding it.
type TokenResolver interface {
	// ResolveToken returns the user whose access token equals token.
	// Returns ErrUnknownToken if no user holds the token and
	// ErrBackendUnavailable if the store could not be queried.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// contextKey is a private type for request context keys.
type contextKey struct{}

// userContextKey is the key under which the resolved user is attached.
var userContextKey = contextKey{}

// Middleware creates the authentication gate. Requests with a token that
// resolves to a user proceed with that user attached to the request
// context; everything else is terminated with 401. The downstream
// handler never runs for a rejected request.
//
// The Authorization header value is compared against stored tokens as-is:
// no "Bearer " prefix is parsed, matching the existing client contract.
func Middleware(resolver TokenResolver, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "auth").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				writeUnauthorized(w)
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				// An unreachable store is reported with the same external
				// shape as an unknown token so backend state never leaks.
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("token resolution failed")
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the resolved user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the resolved user from a request context.
// The second return value is false when the request did not pass through
// the auth middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// writeUnauthorized writes the fixed 401 rejection envelope.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"response":"Please log in"}`))
}
