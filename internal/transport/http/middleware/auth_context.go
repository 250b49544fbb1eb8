package middleware

import (
	"context"

	"github.com/taskvault/auth-service/internal/application/auth"
)

type ctxKey int

const ctxIdentity ctxKey = iota

// WithIdentity stores the verified session identity on the context.
func WithIdentity(ctx context.Context, v auth.SessionView) context.Context {
	return context.WithValue(ctx, ctxIdentity, v)
}

// IdentityFromContext returns the identity placed by the auth
// middleware. Handlers mounted behind RequireUser can rely on ok being
// true and never null-check the identity themselves.
func IdentityFromContext(ctx context.Context) (auth.SessionView, bool) {
	v, ok := ctx.Value(ctxIdentity).(auth.SessionView)
	return v, ok && v.ID != ""
}
