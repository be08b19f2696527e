// Package requesttime pins one "now" per HTTP request so every history entry
// written while serving it carries the same timestamp.
package requesttime

import (
	"net/http"
	"time"

	"sourcing/pkg/requestcontext"
)

// WithClock stamps requests from clock, normalised to UTC. A nil clock uses
// the wall clock.
func WithClock(clock func() time.Time) func(http.Handler) http.Handler {
	if clock == nil {
		clock = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), clock().UTC())))
		})
	}
}
