package notification

import (
	"context"
	"errors"
	"log/slog"

	"sourcing/pkg/platform/circuit"
	"sourcing/pkg/requestcontext"
)

// ErrPublisherUnavailable is returned while the breaker is open.
var ErrPublisherUnavailable = errors.New("notification publisher unavailable")

type publisher interface {
	Publish(ctx context.Context, event Event) error
}

// BreakerPublisher stops calling a failing publisher until its cooldown
// passes, so a broker outage does not add produce timeouts to every request.
type BreakerPublisher struct {
	next    publisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewBreakerPublisher(next publisher, breaker *circuit.Breaker, logger *slog.Logger) *BreakerPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakerPublisher{next: next, breaker: breaker, logger: logger}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event Event) error {
	if !p.breaker.Allow() {
		return ErrPublisherUnavailable
	}
	if err := p.next.Publish(ctx, event); err != nil {
		if _, change := p.breaker.RecordFailure(); change.Opened {
			p.logger.WarnContext(ctx, "notification circuit opened",
				"breaker", p.breaker.Name(),
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return err
	}
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "notification circuit closed",
			"breaker", p.breaker.Name(),
		)
	}
	return nil
}
