// Package requestcontext carries request-scoped values through services
// without importing net/http: the authenticated user, the correlation id
// and the pinned request time.
//
// Tests pin the clock directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "sourcing/pkg/domain"
)

type key int

const (
	userKey key = iota
	correlationKey
	timeKey
)

// UserID returns the authenticated user, or the nil id outside
// authenticated routes.
func UserID(ctx context.Context) id.UserID {
	userID, _ := ctx.Value(userKey).(id.UserID)
	return userID
}

func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// RequestID returns the correlation id, not a data request id.
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(correlationKey).(string)
	return reqID
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, correlationKey, requestID)
}

// Now returns the pinned request time, or the wall clock in UTC when none
// was pinned.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(timeKey).(time.Time); ok {
		return t
	}
	return time.Now().UTC()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey, t)
}
