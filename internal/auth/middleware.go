package auth

import (
	"context"
	"net/http"

	"github.com/tahmid/fintrack/internal/model"
)

// contextKey is an unexported type for context keys in this package, so
// no other package can read or shadow the authenticated user.
type contextKey string

const userKey contextKey = "user"

// PrincipalResolver maps an authenticated principal email to the full
// user record. Implemented by service.AccountService.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, email string) (*model.User, error)
}

// RequireUser gates authenticated routes. It reads the session cookie,
// validates the token, resolves the principal email to a user row and
// stores the user in the request context. Anything short of that —
// missing cookie, bad or expired token, account gone — is a 401.
//
// This is the only place a request acquires a user id. Handlers read it
// via UserFromContext and never trust ids found in payloads.
func RequireUser(sessions *SessionService, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			email, err := sessions.Validate(cookie.Value)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := resolver.ResolvePrincipal(r.Context(), email)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed in the context
// by RequireUser. ok is false on routes outside the gate.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
}
