package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sourcing/internal/platform/config"
)

func TestNew(t *testing.T) {
	t.Run("timeouts follow the request timeout", func(t *testing.T) {
		srv := New(config.Server{Addr: ":9000", RequestTimeout: 10 * time.Second}, http.NotFoundHandler())

		assert.Equal(t, ":9000", srv.Addr)
		assert.Equal(t, 10*time.Second, srv.ReadTimeout)
		assert.Equal(t, 15*time.Second, srv.WriteTimeout)
		assert.Equal(t, 40*time.Second, srv.IdleTimeout)
	})

	t.Run("zero request timeout uses the default", func(t *testing.T) {
		srv := New(config.Server{Addr: ":9000"}, http.NotFoundHandler())

		assert.Equal(t, 30*time.Second, srv.ReadTimeout)
		assert.Equal(t, 35*time.Second, srv.WriteTimeout)
	})
}
