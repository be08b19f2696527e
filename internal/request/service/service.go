// Package service orchestrates data requests: bulk intake with
// deduplication, state transitions, and the reconciled history shown to users.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"sourcing/internal/notification"
	"sourcing/internal/request/metrics"
	"sourcing/internal/request/timeline"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/sentinel"
	"sourcing/pkg/requestcontext"
)

const defaultMaxDimensions = 10000

// Service is stateless; every piece of request state lives in the stores.
type Service struct {
	tx            StoreTx
	requests      RequestStore
	sourcings     SourcingStore
	validator     IdentifierValidator
	datasets      DatasetCatalog
	reconciler    *timeline.Reconciler
	publisher     Publisher
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
	maxDimensions int
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithPublisher(publisher Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithMaxDimensions caps the size of the cross product a single bulk
// request may expand to.
func WithMaxDimensions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDimensions = n
		}
	}
}

// WithReconciler replaces the default timeline reconciler, for example to add
// exclusion rules.
func WithReconciler(r *timeline.Reconciler) Option {
	return func(s *Service) {
		s.reconciler = r
	}
}

// New constructs a Service. The stores passed here serve reads outside of
// transactions; writes go through tx.
func New(
	tx StoreTx,
	requests RequestStore,
	sourcings SourcingStore,
	validator IdentifierValidator,
	datasets DatasetCatalog,
	opts ...Option,
) (*Service, error) {
	if tx == nil || requests == nil || sourcings == nil {
		return nil, errors.New("request service: tx and stores are required")
	}
	if validator == nil || datasets == nil {
		return nil, errors.New("request service: validator and dataset catalog are required")
	}
	s := &Service{
		tx:            tx,
		requests:      requests,
		sourcings:     sourcings,
		validator:     validator,
		datasets:      datasets,
		reconciler:    timeline.New(),
		logger:        slog.Default(),
		tracer:        otel.Tracer("sourcing/internal/request/service"),
		maxDimensions: defaultMaxDimensions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// publish sends events after the transaction committed. Failures never fail
// the caller; they are logged and counted.
func (s *Service) publish(ctx context.Context, events ...notification.Event) {
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish request event",
				"event", string(event.Type),
				"data_request_id", event.RequestID.String(),
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.IncrementNotificationFailure()
			}
		}
	}
}

// translateStoreErr maps store sentinels to domain errors. Anything else is a
// failing dependency.
func translateStoreErr(err error, notFoundMsg, failMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, failMsg)
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeDependency, failMsg)
}
