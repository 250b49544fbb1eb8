package response

import (
	"net/http"

	appCtx "github.com/taskvault/auth-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request ID set by the RequestID middleware.
func RequestIDFromContext(r *http.Request) string {
	return appCtx.GetRequestID(r.Context())
}
