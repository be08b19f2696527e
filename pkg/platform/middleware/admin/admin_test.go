package admin

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAdminToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reached := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name       string
		configured string
		sent       string
		status     int
	}{
		{name: "matching token", configured: "ops-secret", sent: "ops-secret", status: http.StatusNoContent},
		{name: "prefix of the token", configured: "ops-secret", sent: "ops", status: http.StatusUnauthorized},
		{name: "missing header", configured: "ops-secret", status: http.StatusUnauthorized},
		{name: "routes closed without a configured token", configured: "", sent: "", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/data-sourcing/x", nil)
			if tt.sent != "" {
				req.Header.Set(TokenHeader, tt.sent)
			}
			rr := httptest.NewRecorder()
			RequireAdminToken(tt.configured, logger)(reached).ServeHTTP(rr, req)

			require.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusUnauthorized {
				var body map[string]string
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, "unauthorized", body["error"])
				assert.Equal(t, "admin token required", body["error_description"])
			}
		})
	}
}
