package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
)

const (
	signingKey = "test-signing-key"
	issuer     = "sourcing-test"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewJWTService(signingKey, issuer)
	userID := id.UserID(uuid.New())

	token, err := svc.GenerateAccessToken(userID, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_Rejections(t *testing.T) {
	svc := NewJWTService(signingKey, issuer)
	userID := id.UserID(uuid.New())

	sign := func(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}
	valid := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	foreignIssuer, err := NewJWTService(signingKey, "someone-else").GenerateAccessToken(userID, time.Hour)
	require.NoError(t, err)
	foreignKey, err := NewJWTService("another-key", issuer).GenerateAccessToken(userID, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		msg   string
	}{
		{name: "garbage", token: "not-a-jwt", msg: "invalid token"},
		{name: "foreign issuer", token: foreignIssuer, msg: "invalid token"},
		{name: "foreign key", token: foreignKey, msg: "invalid token"},
		{name: "no expiry", token: sign(t, jwt.SigningMethodHS256, []byte(signingKey), jwt.RegisteredClaims{Subject: userID.String(), Issuer: issuer}), msg: "invalid token"},
		{name: "other hmac size", token: sign(t, jwt.SigningMethodHS512, []byte(signingKey), valid), msg: "invalid token"},
		{name: "no subject", token: sign(t, jwt.SigningMethodHS256, []byte(signingKey), jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: valid.ExpiresAt}), msg: "token has no subject"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestValidateToken_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewJWTService(signingKey, issuer, WithClock(clock), WithLeeway(30*time.Second))

	token, err := svc.GenerateAccessToken(id.UserID(uuid.New()), time.Minute)
	require.NoError(t, err)

	now = now.Add(time.Minute + 20*time.Second)
	_, err = svc.ValidateToken(token)
	assert.NoError(t, err, "inside leeway")

	now = now.Add(time.Minute)
	_, err = svc.ValidateToken(token)
	assert.ErrorContains(t, err, "token has expired")
}

func TestMiddlewareAdapter(t *testing.T) {
	svc := NewJWTService(signingKey, issuer)
	adapter := NewMiddlewareAdapter(svc)
	userID := id.UserID(uuid.New())
	token, err := svc.GenerateAccessToken(userID, time.Hour)
	require.NoError(t, err)

	claims, err := adapter.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)

	_, err = adapter.ValidateToken("garbage")
	assert.Error(t, err)
}
