// Package admin guards the fulfillment routes that operators use to move
// requests and data sourcings through their lifecycles.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/httputil"
	request "sourcing/pkg/platform/middleware/request"
)

// TokenHeader carries the shared operator token.
const TokenHeader = "X-Admin-Token"

var errTokenRequired = dErrors.New(dErrors.CodeUnauthorized, "admin token required")

// RequireAdminToken rejects calls whose token does not match. An empty
// configured token closes the routes entirely.
func RequireAdminToken(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(TokenHeader))
			if len(want) > 0 && subtle.ConstantTimeCompare(got, want) == 1 {
				next.ServeHTTP(w, r)
				return
			}
			logger.WarnContext(r.Context(), "operator route rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"token_present", len(got) > 0,
				"request_id", request.GetRequestID(r.Context()),
			)
			httputil.WriteError(w, errTokenRequired)
		})
	}
}
