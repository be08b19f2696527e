package service

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"

	"sourcing/internal/notification"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/sentinel"
)

func (s *ServiceSuite) newRequest(userID id.UserID, createdAt time.Time) *models.Request {
	req, err := models.NewRequest(id.NewRequestID(), userID, dim("c-1", "sfdr", "2024"), createdAt)
	s.Require().NoError(err)
	return req
}

func (s *ServiceSuite) TestGetReconciledHistory() {
	t0 := s.now.Add(-10 * time.Hour)
	at := func(h int) time.Time { return t0.Add(time.Duration(h) * time.Hour) }

	s.Run("request not found", func() {
		requestID := id.NewRequestID()
		s.mockRequests.EXPECT().FindByID(gomock.Any(), requestID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetReconciledHistory(s.ctx, requestID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("request without data sourcing", func() {
		req := s.newRequest(newUserID(), at(0))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.mockRequests.EXPECT().ListHistory(gomock.Any(), req.ID).Return([]models.RequestStateHistoryEntry{req.CreationEntry()}, nil)

		out, err := s.service.GetReconciledHistory(s.ctx, req.ID)
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(models.DisplayedStateOpen, out[0].DisplayedState)
	})

	s.Run("merges data sourcing history", func() {
		req := s.newRequest(newUserID(), at(0))
		sourcingID := id.NewDataSourcingID()
		req.DataSourcingID = &sourcingID
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.mockRequests.EXPECT().ListHistory(gomock.Any(), req.ID).Return([]models.RequestStateHistoryEntry{
			{RequestID: req.ID, State: models.RequestStateOpen, Timestamp: at(0)},
			{RequestID: req.ID, State: models.RequestStateProcessing, Timestamp: at(1)},
		}, nil)
		s.mockSourcings.EXPECT().ListHistory(gomock.Any(), sourcingID).Return([]models.DataSourcingStateHistoryEntry{
			{DataSourcingID: sourcingID, State: models.DataSourcingStateDocumentSourcing, Timestamp: at(2)},
			{DataSourcingID: sourcingID, State: models.DataSourcingStateInitialized, Timestamp: at(1)},
		}, nil)

		out, err := s.service.GetReconciledHistory(s.ctx, req.ID)
		s.Require().NoError(err)
		s.Require().Len(out, 3)
		s.Equal(models.DisplayedStateOpen, out[0].DisplayedState)
		s.Equal(models.DisplayedStateValidated, out[1].DisplayedState)
		s.Equal(models.DisplayedStateDocumentSourcing, out[2].DisplayedState)
	})

	s.Run("shared data sourcing history starts at link time", func() {
		req := s.newRequest(newUserID(), at(3))
		sourcingID := id.NewDataSourcingID()
		req.DataSourcingID = &sourcingID
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.mockRequests.EXPECT().ListHistory(gomock.Any(), req.ID).Return([]models.RequestStateHistoryEntry{
			{RequestID: req.ID, State: models.RequestStateOpen, Timestamp: at(3)},
			{RequestID: req.ID, State: models.RequestStateProcessing, Timestamp: at(4)},
		}, nil)
		// Another user's request started this data sourcing before req existed.
		s.mockSourcings.EXPECT().ListHistory(gomock.Any(), sourcingID).Return([]models.DataSourcingStateHistoryEntry{
			{DataSourcingID: sourcingID, State: models.DataSourcingStateInitialized, Timestamp: at(0)},
			{DataSourcingID: sourcingID, State: models.DataSourcingStateDocumentSourcing, Timestamp: at(2)},
			{DataSourcingID: sourcingID, State: models.DataSourcingStateDataExtraction, Timestamp: at(5)},
		}, nil)

		out, err := s.service.GetReconciledHistory(s.ctx, req.ID)
		s.Require().NoError(err)
		s.Require().Len(out, 3)
		s.Equal(models.DisplayedStateOpen, out[0].DisplayedState)
		s.Equal(models.DisplayedStateDocumentSourcing, out[1].DisplayedState)
		s.Equal(at(4), out[1].Timestamp)
		s.Equal(models.DisplayedStateDataExtraction, out[2].DisplayedState)
	})

	s.Run("inconsistent history is reported", func() {
		req := s.newRequest(newUserID(), at(0))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.mockRequests.EXPECT().ListHistory(gomock.Any(), req.ID).Return([]models.RequestStateHistoryEntry{
			{RequestID: req.ID, State: models.RequestStateProcessing, Timestamp: at(0)},
		}, nil)

		out, err := s.service.GetReconciledHistory(s.ctx, req.ID)
		s.Require().Error(err)
		s.Nil(out)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.InvariantViolations))
	})

	s.Run("history load failure", func() {
		req := s.newRequest(newUserID(), at(0))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil)
		s.mockRequests.EXPECT().ListHistory(gomock.Any(), req.ID).Return(nil, errors.New("read timeout"))

		_, err := s.service.GetReconciledHistory(s.ctx, req.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeDependency))
	})
}

func (s *ServiceSuite) TestTransitionRequest() {
	s.Run("processing creates and links a data sourcing", func() {
		req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
		s.mockSourcings.EXPECT().FindActiveByDimension(gomock.Any(), req.Dimension()).Return(nil, sentinel.ErrNotFound)

		var created *models.DataSourcing
		s.mockSourcings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error {
				s.Equal(models.DataSourcingStateInitialized, ds.State)
				s.Equal(req.Dimension(), ds.Dimension())
				s.Equal(s.now, entry.Timestamp)
				created = ds
				return nil
			})
		s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *models.Request, entry models.RequestStateHistoryEntry) error {
				s.Equal(models.RequestStateProcessing, entry.State)
				s.Equal(s.now, entry.Timestamp)
				return nil
			})
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event notification.Event) error {
				s.Equal(notification.EventRequestStateChanged, event.Type)
				s.Equal(models.RequestStateOpen, event.PreviousState)
				s.Equal(models.RequestStateProcessing, event.State)
				return nil
			})

		updated, err := s.service.TransitionRequest(s.ctx, req.ID, models.RequestStateProcessing, nil)
		s.Require().NoError(err)
		s.Equal(models.RequestStateProcessing, updated.State)
		s.Require().NotNil(updated.DataSourcingID)
		s.Require().NotNil(created)
		s.Equal(created.ID, *updated.DataSourcingID)
	})

	s.Run("processing joins the active data sourcing", func() {
		req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
		active := models.NewDataSourcing(id.NewDataSourcingID(), req.Dimension(), s.now.Add(-time.Minute))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
		s.mockSourcings.EXPECT().FindActiveByDimension(gomock.Any(), req.Dimension()).Return(active, nil)
		s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := s.service.TransitionRequest(s.ctx, req.ID, models.RequestStateProcessing, nil)
		s.Require().NoError(err)
		s.Equal(active.ID, *updated.DataSourcingID)
	})

	s.Run("illegal transition", func() {
		req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)

		_, err := s.service.TransitionRequest(s.ctx, req.ID, models.RequestStateProcessed, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("admin comment is recorded", func() {
		req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
		comment := "no report published for 2024"
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
		s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *models.Request, entry models.RequestStateHistoryEntry) error {
				s.Require().NotNil(entry.AdminComment)
				s.Equal(comment, *entry.AdminComment)
				return nil
			})
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := s.service.TransitionRequest(s.ctx, req.ID, models.RequestStateNonSourceable, &comment)
		s.Require().NoError(err)
		s.Equal(models.RequestStateNonSourceable, updated.State)
	})

	s.Run("unknown request", func() {
		requestID := id.NewRequestID()
		s.mockRequests.EXPECT().FindByID(gomock.Any(), requestID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.TransitionRequest(s.ctx, requestID, models.RequestStateWithdrawn, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestWithdrawRequest() {
	owner := newUserID()

	s.Run("owner withdraws", func() {
		req := s.newRequest(owner, s.now.Add(-time.Hour))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
		s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).Return(nil)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := s.service.WithdrawRequest(s.ctx, owner, req.ID)
		s.Require().NoError(err)
		s.Equal(models.RequestStateWithdrawn, updated.State)
	})

	s.Run("other user is forbidden", func() {
		req := s.newRequest(owner, s.now.Add(-time.Hour))
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)

		_, err := s.service.WithdrawRequest(s.ctx, newUserID(), req.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func (s *ServiceSuite) TestUpdatePriority() {
	req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
	s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
	s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Request, entry models.RequestStateHistoryEntry) error {
			s.Equal(models.RequestStateOpen, entry.State)
			return nil
		})

	updated, err := s.service.UpdatePriority(s.ctx, req.ID, models.PriorityUrgent, nil)
	s.Require().NoError(err)
	s.Equal(models.PriorityUrgent, updated.Priority)
	s.Equal(models.RequestStateOpen, updated.State)
}

func (s *ServiceSuite) TestCommentRequest() {
	req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
	s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
	s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Request, entry models.RequestStateHistoryEntry) error {
			s.Require().NotNil(entry.AdminComment)
			s.Equal("waiting on annual report", *entry.AdminComment)
			s.Equal(s.now, entry.Timestamp)
			return nil
		})

	updated, err := s.service.CommentRequest(s.ctx, req.ID, "waiting on annual report")
	s.Require().NoError(err)
	s.Equal(models.PriorityNormal, updated.Priority)
}

func (s *ServiceSuite) TestUpdateRequest() {
	s.Run("state priority and comment land in one entry", func() {
		req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
		withdrawn, low, comment := models.RequestStateWithdrawn, models.PriorityLow, "duplicate of an older request"
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
		s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).
			DoAndReturn(func(_ context.Context, stored *models.Request, entry models.RequestStateHistoryEntry) error {
				s.Equal(models.PriorityLow, stored.Priority)
				s.Equal(models.RequestStateWithdrawn, entry.State)
				s.Require().NotNil(entry.AdminComment)
				s.Equal(comment, *entry.AdminComment)
				return nil
			}).Times(1)
		s.mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := s.service.UpdateRequest(s.ctx, req.ID, models.RequestUpdate{State: &withdrawn, Priority: &low, AdminComment: &comment})
		s.Require().NoError(err)
		s.Equal(models.RequestStateWithdrawn, updated.State)
		s.Equal(models.PriorityLow, updated.Priority)
	})

	s.Run("rejected transition writes nothing", func() {
		req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
		processed, urgent := models.RequestStateProcessed, models.PriorityUrgent
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)

		_, err := s.service.UpdateRequest(s.ctx, req.ID, models.RequestUpdate{State: &processed, Priority: &urgent})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("priority only keeps the state", func() {
		req := s.newRequest(newUserID(), s.now.Add(-time.Hour))
		high := models.PriorityHigh
		s.mockRequests.EXPECT().FindByID(gomock.Any(), req.ID).Return(req, nil).Times(2)
		s.mockRequests.EXPECT().Update(gomock.Any(), req, gomock.Any()).Return(nil)

		updated, err := s.service.UpdateRequest(s.ctx, req.ID, models.RequestUpdate{Priority: &high})
		s.Require().NoError(err)
		s.Equal(models.PriorityHigh, updated.Priority)
		s.Equal(models.RequestStateOpen, updated.State)
	})

	s.Run("empty update", func() {
		_, err := s.service.UpdateRequest(s.ctx, id.NewRequestID(), models.RequestUpdate{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestListUserRequests() {
	userID := newUserID()
	older := s.newRequest(userID, s.now.Add(-2*time.Hour))
	newer := s.newRequest(userID, s.now.Add(-time.Hour))
	s.mockRequests.EXPECT().ListByUser(gomock.Any(), userID).Return([]*models.Request{older, newer}, nil)

	reqs, err := s.service.ListUserRequests(s.ctx, userID)
	s.Require().NoError(err)
	s.Equal([]*models.Request{newer, older}, reqs)
}
