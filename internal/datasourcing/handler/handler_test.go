package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sourcing/internal/datasourcing/handler/mocks"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/testutil"
)

const adminToken = "ops-secret"

type HandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockService
	router      chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	New(s.mockService, slog.New(slog.NewTextHandler(io.Discard, nil)), adminToken).Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) TestTransition() {
	dsID := id.NewDataSourcingID()
	path := "/data-sourcing/" + dsID.String()

	s.Run("moves the sourcing", func() {
		s.mockService.EXPECT().Transition(gomock.Any(), dsID, models.DataSourcingStateDone).
			Return(&models.DataSourcing{ID: dsID, State: models.DataSourcingStateDone, LastModifiedAt: time.Now()}, nil)

		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodPatch, path, TransitionRequest{State: "Done"}), adminToken)
		rr := testutil.DoRequest(s.router, req)

		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[models.DataSourcing](s.T(), rr)
		s.Equal(models.DataSourcingStateDone, body.State)
		s.Equal(dsID, body.ID)
	})

	s.Run("unknown state", func() {
		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodPatch, path, TransitionRequest{State: "Finished"}), adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	s.Run("illegal transition", func() {
		s.mockService.EXPECT().Transition(gomock.Any(), dsID, models.DataSourcingStateInitialized).
			Return(nil, dErrors.New(dErrors.CodeInvalidState, "cannot move data sourcing from Done to Initialized"))

		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodPatch, path, TransitionRequest{State: "Initialized"}), adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, string(dErrors.CodeInvalidState))
	})

	s.Run("missing admin token", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPatch, path, TransitionRequest{State: "Done"})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	})

	s.Run("malformed id", func() {
		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodPatch, "/data-sourcing/not-a-uuid", TransitionRequest{State: "Done"}), adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}

func (s *HandlerSuite) TestGetAndHistory() {
	dsID := id.NewDataSourcingID()
	at := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	s.Run("get", func() {
		s.mockService.EXPECT().Get(gomock.Any(), dsID).
			Return(&models.DataSourcing{ID: dsID, CompanyID: "c-1", State: models.DataSourcingStateDataExtraction}, nil)

		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodGet, "/data-sourcing/"+dsID.String(), nil), adminToken)
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[models.DataSourcing](s.T(), rr)
		s.Equal("c-1", body.CompanyID)
	})

	s.Run("history", func() {
		s.mockService.EXPECT().History(gomock.Any(), dsID).Return([]models.DataSourcingStateHistoryEntry{
			{DataSourcingID: dsID, State: models.DataSourcingStateInitialized, Timestamp: at},
		}, nil)

		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodGet, "/data-sourcing/"+dsID.String()+"/history", nil), adminToken)
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[[]models.DataSourcingStateHistoryEntry](s.T(), rr)
		s.Require().Len(*body, 1)
		s.Equal(at, (*body)[0].Timestamp)
	})

	s.Run("not found", func() {
		s.mockService.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeNotFound, "data sourcing not found"))

		req := testutil.WithAdminToken(testutil.NewJSONRequest(s.T(), http.MethodGet, "/data-sourcing/"+id.NewDataSourcingID().String(), nil), adminToken)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})
}
