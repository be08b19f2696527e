package httpserver

import (
	"net/http"
	"time"

	"sourcing/internal/platform/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	// writeSlack leaves room to flush a timeout response after the
	// router's own deadline fires.
	writeSlack = 5 * time.Second
)

// New builds the HTTP server. Bulk submissions carry large bodies, so the
// read timeout follows the request timeout instead of a fixed value.
func New(cfg config.Server, handler http.Handler) *http.Server {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout + writeSlack,
		IdleTimeout:       4 * requestTimeout,
	}
}
