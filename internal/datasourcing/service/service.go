// Package service advances data sourcings through the fulfillment pipeline
// and propagates final outcomes to the requests linked to them.
package service

import (
	"context"
	"errors"
	"log/slog"

	"sourcing/internal/notification"
	"sourcing/internal/request/metrics"
	"sourcing/internal/request/models"
	requestsvc "sourcing/internal/request/service"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/sentinel"
	"sourcing/pkg/requestcontext"
)

// SourcingReader serves reads outside of transactions.
type SourcingReader interface {
	FindByID(ctx context.Context, sourcingID id.DataSourcingID) (*models.DataSourcing, error)
	ListHistory(ctx context.Context, sourcingID id.DataSourcingID) ([]models.DataSourcingStateHistoryEntry, error)
}

type Service struct {
	tx        requestsvc.StoreTx
	sourcings SourcingReader
	publisher requestsvc.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
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

func WithPublisher(publisher requestsvc.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func New(tx requestsvc.StoreTx, sourcings SourcingReader, opts ...Option) (*Service, error) {
	if tx == nil || sourcings == nil {
		return nil, errors.New("data sourcing service: tx and store are required")
	}
	s := &Service{
		tx:        tx,
		sourcings: sourcings,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get loads a data sourcing.
func (s *Service) Get(ctx context.Context, sourcingID id.DataSourcingID) (*models.DataSourcing, error) {
	ds, err := s.sourcings.FindByID(ctx, sourcingID)
	if err != nil {
		return nil, translateStoreErr(err, "data sourcing not found", "failed to load data sourcing")
	}
	return ds, nil
}

// History returns the recorded states of a data sourcing, oldest first.
func (s *Service) History(ctx context.Context, sourcingID id.DataSourcingID) ([]models.DataSourcingStateHistoryEntry, error) {
	history, err := s.sourcings.ListHistory(ctx, sourcingID)
	if err != nil {
		return nil, translateStoreErr(err, "data sourcing not found", "failed to load data sourcing history")
	}
	return history, nil
}

type requestChange struct {
	req      *models.Request
	previous models.RequestState
}

// Transition moves a data sourcing to next. Reaching Done marks every linked
// Processing request Processed; reaching NonSourceable marks them
// NonSourceable. The cascade commits together with the sourcing change.
//
// Errors:
//   - CodeNotFound when the data sourcing does not exist
//   - CodeInvalidState when the transition is not allowed
func (s *Service) Transition(ctx context.Context, sourcingID id.DataSourcingID, next models.DataSourcingState) (*models.DataSourcing, error) {
	current, err := s.Get(ctx, sourcingID)
	if err != nil {
		return nil, err
	}

	var (
		updated  *models.DataSourcing
		previous models.DataSourcingState
		changes  []requestChange
	)
	txCtx := requestsvc.WithTxKey(ctx, current.Dimension().String())
	err = s.tx.RunInTx(txCtx, func(ctx context.Context, stores requestsvc.Stores) error {
		changes = nil
		ds, err := stores.Sourcings.FindByID(ctx, sourcingID)
		if err != nil {
			return translateStoreErr(err, "data sourcing not found", "failed to load data sourcing")
		}
		previous = ds.State
		now := requestcontext.Now(ctx)
		entry, err := ds.Transition(next, now)
		if err != nil {
			return err
		}
		if err := stores.Sourcings.Update(ctx, ds, entry); err != nil {
			return translateStoreErr(err, "data sourcing not found", "failed to update data sourcing")
		}
		updated = ds

		target, cascades := cascadeTarget(next)
		if !cascades {
			return nil
		}
		linked, err := stores.Requests.ListByDataSourcing(ctx, sourcingID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDependency, "failed to load linked requests")
		}
		for _, req := range linked {
			if req.State != models.RequestStateProcessing {
				continue
			}
			before := req.State
			reqEntry, err := req.Transition(target, nil, now)
			if err != nil {
				return err
			}
			if err := stores.Requests.Update(ctx, req, reqEntry); err != nil {
				return translateStoreErr(err, "request not found", "failed to update linked request")
			}
			changes = append(changes, requestChange{req: req, previous: before})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "data sourcing state changed",
		"data_sourcing_id", sourcingID.String(),
		"from", string(previous),
		"to", string(updated.State),
		"cascaded_requests", len(changes),
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementSourcingTransition(string(updated.State))
		for _, c := range changes {
			s.metrics.IncrementTransition(string(c.req.State))
		}
	}
	for _, c := range changes {
		s.publish(ctx, notification.StateChanged(c.req, c.previous))
	}
	return updated, nil
}

// cascadeTarget is the request state a final sourcing state forces on linked
// requests.
func cascadeTarget(state models.DataSourcingState) (models.RequestState, bool) {
	switch state {
	case models.DataSourcingStateDone:
		return models.RequestStateProcessed, true
	case models.DataSourcingStateNonSourceable:
		return models.RequestStateNonSourceable, true
	default:
		return "", false
	}
}

func (s *Service) publish(ctx context.Context, event notification.Event) {
	if s.publisher == nil {
		return
	}
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

func translateStoreErr(err error, notFoundMsg, failMsg string) error {
	switch {
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
