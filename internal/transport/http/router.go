// Package httptransport assembles the chi router: shared middleware, health
// and metrics endpoints, and the routes of every domain handler.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sourcing/pkg/platform/httputil"
	request "sourcing/pkg/platform/middleware/request"
	"sourcing/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by domain handlers.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing system is reachable.
type HealthCheck func(ctx context.Context) error

// Options configure NewRouter. Zero values disable the matching endpoint.
type Options struct {
	Logger         *slog.Logger
	Gatherer       prometheus.Gatherer
	HealthChecks   map[string]HealthCheck
	RequestTimeout time.Duration
	// Clock stamps each request; nil uses the wall clock.
	Clock func() time.Time
}

// NewRouter wires the shared middleware and mounts every handler.
func NewRouter(opts Options, handlers ...Registrar) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(requesttime.WithClock(opts.Clock))
	r.Use(request.ContentTypeJSON)

	r.Get("/health", handleHealth(opts.HealthChecks))
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, body)
	}
}
