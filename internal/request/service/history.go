package service

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/requestcontext"
)

// GetReconciledHistory returns the timeline a user sees for one request,
// built from the request history and the history of its data sourcing.
//
// Errors:
//   - CodeNotFound when the request does not exist
//   - CodeDependency when a history cannot be loaded
//   - CodeInvariantViolation when the stored histories are inconsistent
func (s *Service) GetReconciledHistory(ctx context.Context, requestID id.RequestID) ([]models.TimelineEntry, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "request.GetReconciledHistory")
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveReconcile(start)
	}
	span.SetAttributes(attribute.String("data_request.id", requestID.String()))

	out, err := s.reconcileHistory(ctx, requestID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}
	return out, nil
}

func (s *Service) reconcileHistory(ctx context.Context, requestID id.RequestID) ([]models.TimelineEntry, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, translateStoreErr(err, "request not found", "failed to load request")
	}
	requestHistory, err := s.requests.ListHistory(ctx, requestID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDependency, "failed to load request history")
	}

	var sourcingHistory []models.DataSourcingStateHistoryEntry
	if req.DataSourcingID != nil {
		sourcingHistory, err = s.sourcings.ListHistory(ctx, *req.DataSourcingID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeDependency, "failed to load data sourcing history")
		}
		if linkedAt, ok := lastEnteredProcessing(requestHistory); ok {
			sourcingHistory = sourcingSince(sourcingHistory, linkedAt)
		}
	}

	out, err := s.reconciler.Reconcile(requestHistory, sourcingHistory)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			s.logger.ErrorContext(ctx, "request history is inconsistent",
				"data_request_id", requestID.String(),
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.IncrementInvariantViolation()
			}
		}
		return nil, err
	}
	return out, nil
}

// lastEnteredProcessing finds when the request last moved into Processing,
// which is when it was linked to its current data sourcing.
func lastEnteredProcessing(history []models.RequestStateHistoryEntry) (time.Time, bool) {
	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b models.RequestStateHistoryEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	var at time.Time
	found := false
	prev := models.RequestState("")
	for _, e := range sorted {
		if e.State == models.RequestStateProcessing && prev != models.RequestStateProcessing {
			at, found = e.Timestamp, true
		}
		prev = e.State
	}
	return at, found
}

// sourcingSince drops data-sourcing entries that happened before the request
// joined a shared data sourcing. The state current at link time is kept and
// stamped with the link time.
func sourcingSince(history []models.DataSourcingStateHistoryEntry, linkedAt time.Time) []models.DataSourcingStateHistoryEntry {
	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b models.DataSourcingStateHistoryEntry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	out := make([]models.DataSourcingStateHistoryEntry, 0, len(sorted))
	var current *models.DataSourcingStateHistoryEntry
	for i := range sorted {
		e := sorted[i]
		if e.Timestamp.Before(linkedAt) {
			current = &e
			continue
		}
		out = append(out, e)
	}
	if current != nil {
		current.Timestamp = linkedAt
		out = append([]models.DataSourcingStateHistoryEntry{*current}, out...)
	}
	return out
}
