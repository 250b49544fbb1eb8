package middleware

import (
	"net/http"

	"github.com/taskvault/auth-service/internal/application/auth"
	"github.com/taskvault/auth-service/internal/domain"
	"github.com/taskvault/auth-service/internal/infrastructure/security"
)

// SessionVerifier re-derives the client-facing identity from a raw
// session token.
type SessionVerifier interface {
	CurrentSession(token string) (auth.SessionView, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Session reads the session cookie and, when it verifies, injects the
// identity into the request context. Requests without a valid session
// pass through untouched; rejection is RequireUser's job.
func Session(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := security.ReadSessionCookie(r)
			if err != nil || raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			view, err := verifier.CurrentSession(raw)
			if err != nil {
				// Expired or tampered token: treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), view)))
		})
	}
}

// RequireUser rejects requests whose context carries no verified
// identity. Handlers behind it always see a non-empty identity.
func RequireUser(writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := IdentityFromContext(r.Context()); !ok {
				writeErr(w, r, domain.ErrUnauthenticated())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
