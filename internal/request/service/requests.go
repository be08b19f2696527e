package service

import (
	"context"
	"errors"
	"slices"

	"sourcing/internal/notification"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/sentinel"
	"sourcing/pkg/requestcontext"
)

// GetRequest loads a single request.
func (s *Service) GetRequest(ctx context.Context, requestID id.RequestID) (*models.Request, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, translateStoreErr(err, "request not found", "failed to load request")
	}
	return req, nil
}

// ListUserRequests returns the user's requests, newest first.
func (s *Service) ListUserRequests(ctx context.Context, userID id.UserID) ([]*models.Request, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "user id is required")
	}
	reqs, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDependency, "failed to list requests")
	}
	slices.SortStableFunc(reqs, func(a, b *models.Request) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return reqs, nil
}

// TransitionRequest moves a request to next. Moving an Open request to
// Processing links it to the active data sourcing of its dimension, creating
// one in state Initialized when none exists.
//
// Errors:
//   - CodeNotFound when the request does not exist
//   - CodeInvalidState when the transition is not allowed
func (s *Service) TransitionRequest(ctx context.Context, requestID id.RequestID, next models.RequestState, adminComment *string) (*models.Request, error) {
	return s.mutate(ctx, requestID, func(ctx context.Context, stores Stores, req *models.Request) (models.RequestStateHistoryEntry, error) {
		return transition(ctx, stores, req, next, adminComment)
	})
}

// UpdateRequest applies the state, priority and admin comment of update in a
// single transaction and records them as one history entry. Nothing is
// written when any part is rejected.
//
// Errors:
//   - CodeValidation when update is empty
//   - CodeNotFound when the request does not exist
//   - CodeInvalidState when the transition is not allowed
func (s *Service) UpdateRequest(ctx context.Context, requestID id.RequestID, update models.RequestUpdate) (*models.Request, error) {
	if update.IsEmpty() {
		return nil, dErrors.New(dErrors.CodeValidation, "state, priority or adminComment is required")
	}
	return s.mutate(ctx, requestID, func(ctx context.Context, stores Stores, req *models.Request) (models.RequestStateHistoryEntry, error) {
		if update.State == nil {
			return req.Annotate(update.Priority, update.AdminComment, requestcontext.Now(ctx)), nil
		}
		if update.Priority != nil {
			req.Priority = *update.Priority
		}
		return transition(ctx, stores, req, *update.State, update.AdminComment)
	})
}

// WithdrawRequest lets the owner withdraw a request that is not final yet.
//
// Errors:
//   - CodeForbidden when userID does not own the request
//   - CodeInvalidState when the request is already final
func (s *Service) WithdrawRequest(ctx context.Context, userID id.UserID, requestID id.RequestID) (*models.Request, error) {
	return s.mutate(ctx, requestID, func(ctx context.Context, _ Stores, req *models.Request) (models.RequestStateHistoryEntry, error) {
		if req.UserID != userID {
			return models.RequestStateHistoryEntry{}, dErrors.New(dErrors.CodeForbidden, "request belongs to another user")
		}
		return req.Transition(models.RequestStateWithdrawn, nil, requestcontext.Now(ctx))
	})
}

// UpdatePriority changes priority and optionally the admin comment without a
// state change.
func (s *Service) UpdatePriority(ctx context.Context, requestID id.RequestID, priority models.RequestPriority, adminComment *string) (*models.Request, error) {
	return s.mutate(ctx, requestID, func(ctx context.Context, _ Stores, req *models.Request) (models.RequestStateHistoryEntry, error) {
		return req.Annotate(&priority, adminComment, requestcontext.Now(ctx)), nil
	})
}

// CommentRequest replaces the admin comment. The new comment shows up on the
// timeline from now on.
func (s *Service) CommentRequest(ctx context.Context, requestID id.RequestID, adminComment string) (*models.Request, error) {
	return s.mutate(ctx, requestID, func(ctx context.Context, _ Stores, req *models.Request) (models.RequestStateHistoryEntry, error) {
		return req.Annotate(nil, &adminComment, requestcontext.Now(ctx)), nil
	})
}

type mutation func(ctx context.Context, stores Stores, req *models.Request) (models.RequestStateHistoryEntry, error)

// mutate loads the request inside a transaction keyed by its dimension,
// applies fn and persists the result with the returned history entry.
func (s *Service) mutate(ctx context.Context, requestID id.RequestID, fn mutation) (*models.Request, error) {
	current, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, translateStoreErr(err, "request not found", "failed to load request")
	}

	var updated *models.Request
	var previous models.RequestState
	err = s.tx.RunInTx(WithTxKey(ctx, current.Dimension().String()), func(ctx context.Context, stores Stores) error {
		req, err := stores.Requests.FindByID(ctx, requestID)
		if err != nil {
			return translateStoreErr(err, "request not found", "failed to load request")
		}
		previous = req.State
		entry, err := fn(ctx, stores, req)
		if err != nil {
			return err
		}
		if err := stores.Requests.Update(ctx, req, entry); err != nil {
			return translateStoreErr(err, "request not found", "failed to update request")
		}
		updated = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated.State != previous {
		s.logger.InfoContext(ctx, "data request state changed",
			"data_request_id", requestID.String(),
			"from", string(previous),
			"to", string(updated.State),
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.IncrementTransition(string(updated.State))
		}
		s.publish(ctx, notification.StateChanged(updated, previous))
	}
	return updated, nil
}

func transition(ctx context.Context, stores Stores, req *models.Request, next models.RequestState, adminComment *string) (models.RequestStateHistoryEntry, error) {
	if req.State == models.RequestStateOpen && next == models.RequestStateProcessing {
		if err := linkSourcing(ctx, stores, req); err != nil {
			return models.RequestStateHistoryEntry{}, err
		}
	}
	return req.Transition(next, adminComment, requestcontext.Now(ctx))
}

func linkSourcing(ctx context.Context, stores Stores, req *models.Request) error {
	ds, err := stores.Sourcings.FindActiveByDimension(ctx, req.Dimension())
	if errors.Is(err, sentinel.ErrNotFound) {
		ds = models.NewDataSourcing(id.NewDataSourcingID(), req.Dimension(), requestcontext.Now(ctx))
		if err := stores.Sourcings.Create(ctx, ds, ds.CreationEntry()); err != nil {
			return translateStoreErr(err, "data sourcing not found", "failed to create data sourcing")
		}
	} else if err != nil {
		return dErrors.Wrap(err, dErrors.CodeDependency, "failed to load data sourcing")
	}
	req.DataSourcingID = &ds.ID
	return nil
}
