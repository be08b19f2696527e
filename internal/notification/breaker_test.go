package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sourcing/pkg/platform/circuit"
)

type flakyPublisher struct {
	err   error
	calls int
}

func (f *flakyPublisher) Publish(context.Context, Event) error {
	f.calls++
	return f.err
}

func TestBreakerPublisher(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("kafka",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	next := &flakyPublisher{err: errors.New("broker down")}
	p := NewBreakerPublisher(next, breaker, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	assert.Error(t, p.Publish(ctx, Event{}))
	assert.Error(t, p.Publish(ctx, Event{}))
	assert.Equal(t, 2, next.calls)

	err := p.Publish(ctx, Event{})
	assert.ErrorIs(t, err, ErrPublisherUnavailable)
	assert.Equal(t, 2, next.calls, "open breaker skips the broker")

	now = now.Add(time.Minute)
	next.err = nil
	assert.NoError(t, p.Publish(ctx, Event{}))
	assert.Equal(t, 3, next.calls)
	assert.False(t, breaker.IsOpen())
}
