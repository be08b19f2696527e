// Package auth authenticates data request users from bearer tokens.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/httputil"
	request "sourcing/pkg/platform/middleware/request"
	"sourcing/pkg/requestcontext"
)

// JWTValidator validates bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims are the claims the middleware needs from a validated token.
type JWTClaims struct {
	UserID string
}

var (
	errMissingToken = dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header")
	errBadToken     = dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token")
)

// RequireAuth rejects requests without a valid bearer token and stores the
// token's user in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, reason, err := authenticate(validator, r)
			if reason != "" {
				logger.WarnContext(r.Context(), "request rejected",
					"reason", reason,
					"error", err,
					"request_id", request.GetRequestID(r.Context()),
				)
				if reason == "missing_token" {
					httputil.WriteError(w, errMissingToken)
				} else {
					httputil.WriteError(w, errBadToken)
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(r.Context(), userID)))
		})
	}
}

// authenticate returns the token's user, or a short reason for the log.
func authenticate(validator JWTValidator, r *http.Request) (id.UserID, string, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return id.UserID{}, "missing_token", nil
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return id.UserID{}, "invalid_token", err
	}
	userID, err := id.ParseUserID(claims.UserID)
	if err != nil {
		return id.UserID{}, "malformed_subject", err
	}
	return userID, "", nil
}
