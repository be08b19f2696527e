package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"sourcing/internal/catalog"
	dshandler "sourcing/internal/datasourcing/handler"
	dsservice "sourcing/internal/datasourcing/service"
	dsstore "sourcing/internal/datasourcing/store"
	"sourcing/internal/dataset"
	jwttoken "sourcing/internal/jwt_token"
	"sourcing/internal/notification"
	"sourcing/internal/request/handler"
	"sourcing/internal/request/metrics"
	"sourcing/internal/request/models"
	"sourcing/internal/request/service"
	"sourcing/internal/request/store"
	id "sourcing/pkg/domain"
	"sourcing/pkg/testutil"
)

const adminToken = "ops-secret"

// RouterSuite drives the assembled API over in-memory backends.
type RouterSuite struct {
	suite.Suite
	router    http.Handler
	jwt       *jwttoken.JWTService
	datasets  *dataset.InMemoryCatalog
	publisher *notification.MemoryPublisher
	userID    id.UserID
	token     string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	requests := store.NewInMemory()
	sourcings := dsstore.NewInMemory()
	tx := service.NewShardedTx(service.Stores{Requests: requests, Sourcings: sourcings}, time.Second)

	directory := catalog.NewInMemoryDirectory()
	directory.AddCompany("c-acme", "LEI-ACME")
	directory.AddCompany("c-globex")
	validator := catalog.NewValidator(directory, []string{"sfdr", "lksg"}, 2000)
	s.datasets = dataset.NewInMemoryCatalog()
	s.publisher = notification.NewMemoryPublisher()

	requestSvc, err := service.New(tx, requests, sourcings, validator, s.datasets,
		service.WithLogger(logger), service.WithMetrics(m), service.WithPublisher(s.publisher))
	s.Require().NoError(err)
	sourcingSvc, err := dsservice.New(tx, sourcings,
		dsservice.WithLogger(logger), dsservice.WithMetrics(m), dsservice.WithPublisher(s.publisher))
	s.Require().NoError(err)

	s.jwt = jwttoken.NewJWTService("test-key", "sourcing")
	s.router = NewRouter(Options{
		Logger:   logger,
		Gatherer: reg,
		HealthChecks: map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		},
	},
		handler.New(requestSvc, logger, jwttoken.NewMiddlewareAdapter(s.jwt), adminToken),
		dshandler.New(sourcingSvc, logger, adminToken),
	)

	s.userID = id.UserID(uuid.New())
	s.token, err = s.jwt.GenerateAccessToken(s.userID, time.Hour)
	s.Require().NoError(err)
}

func (s *RouterSuite) asUser(req *http.Request) *http.Request {
	return testutil.WithBearer(req, s.token)
}

func (s *RouterSuite) submit(body models.BulkRequest) *handler.BulkResponse {
	rr := testutil.DoRequest(s.router, s.asUser(testutil.NewJSONRequest(s.T(), http.MethodPost, "/requests/bulk", body)))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return testutil.UnmarshalResponse[handler.BulkResponse](s.T(), rr)
}

func (s *RouterSuite) TestRequestLifecycle() {
	s.datasets.Publish(models.DataDimension{CompanyID: "c-globex", DataType: "sfdr", ReportingPeriod: "2023"})

	out := s.submit(models.BulkRequest{
		CompanyIdentifiers: []string{"LEI-ACME", "c-globex", "unknown"},
		DataTypes:          []string{"sfdr"},
		ReportingPeriods:   []string{"2023"},
	})
	s.Equal([]models.DataDimension{{CompanyID: "unknown", DataType: "sfdr", ReportingPeriod: "2023"}}, out.InvalidDimensions)
	s.Equal([]models.DataDimension{{CompanyID: "c-globex", DataType: "sfdr", ReportingPeriod: "2023"}}, out.ExistingDatasetDimensions)
	s.Empty(out.ExistingRequestDimensions)
	s.Require().Len(out.AcceptedRequests, 1)
	accepted := out.AcceptedRequests[0]
	s.Equal("c-acme", accepted.CompanyID)

	s.Run("resubmitting finds the open request", func() {
		again := s.submit(models.BulkRequest{
			CompanyIdentifiers: []string{"c-acme"},
			DataTypes:          []string{"sfdr"},
			ReportingPeriods:   []string{"2023"},
		})
		s.Equal([]models.DataDimension{accepted.DataDimension}, again.ExistingRequestDimensions)
		s.Empty(again.AcceptedRequests)
	})

	reqPath := "/requests/" + accepted.RequestID.String()

	s.Run("operator moves the request to processing", func() {
		comment := "sourcing started"
		state := "Processing"
		rr := testutil.DoRequest(s.router, testutil.WithAdminToken(
			testutil.NewJSONRequest(s.T(), http.MethodPatch, reqPath, handler.AdminUpdateRequest{State: &state, AdminComment: &comment}), adminToken))
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		req := testutil.UnmarshalResponse[models.Request](s.T(), rr)
		s.Require().NotNil(req.DataSourcingID)

		dsPath := "/data-sourcing/" + req.DataSourcingID.String()
		for _, next := range []string{"DocumentSourcing", "DocumentSourcingDone", "DataExtraction", "DataVerification", "Done"} {
			rr := testutil.DoRequest(s.router, testutil.WithAdminToken(
				testutil.NewJSONRequest(s.T(), http.MethodPatch, dsPath, dshandler.TransitionRequest{State: next}), adminToken))
			s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		}
	})

	s.Run("the owner sees the request processed", func() {
		rr := testutil.DoRequest(s.router, s.asUser(testutil.NewJSONRequest(s.T(), http.MethodGet, reqPath, nil)))
		s.Require().Equal(http.StatusOK, rr.Code)
		req := testutil.UnmarshalResponse[models.Request](s.T(), rr)
		s.Equal(models.RequestStateProcessed, req.State)

		rr = testutil.DoRequest(s.router, s.asUser(testutil.NewJSONRequest(s.T(), http.MethodGet, reqPath+"/history", nil)))
		s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
		timeline := *testutil.UnmarshalResponse[[]models.TimelineEntry](s.T(), rr)
		s.Require().NotEmpty(timeline)
		s.Equal(models.DisplayedStateOpen, timeline[0].DisplayedState)
		s.Equal(models.DisplayedStateDone, timeline[len(timeline)-1].DisplayedState)
		for i := 1; i < len(timeline); i++ {
			s.NotEqual(timeline[i-1].DisplayedState, timeline[i].DisplayedState)
			s.False(timeline[i].Timestamp.Before(timeline[i-1].Timestamp))
		}
	})

	s.Run("another user cannot read it", func() {
		other, err := s.jwt.GenerateAccessToken(id.UserID(uuid.New()), time.Hour)
		s.Require().NoError(err)
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, reqPath, nil)
		testutil.WithBearer(req, other)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})

	s.Run("events were published", func() {
		var created, changed int
		for _, e := range s.publisher.Events() {
			switch e.Type {
			case notification.EventRequestCreated:
				created++
			case notification.EventRequestStateChanged:
				changed++
			}
		}
		s.Equal(1, created)
		s.Equal(2, changed, "Open to Processing, then Processing to Processed")
	})
}

func (s *RouterSuite) TestWithdrawByOwner() {
	out := s.submit(models.BulkRequest{
		CompanyIdentifiers: []string{"c-acme"},
		DataTypes:          []string{"lksg"},
		ReportingPeriods:   []string{"2024"},
	})
	s.Require().Len(out.AcceptedRequests, 1)
	path := "/requests/" + out.AcceptedRequests[0].RequestID.String()

	rr := testutil.DoRequest(s.router, s.asUser(testutil.NewJSONRequest(s.T(), http.MethodPost, path+"/withdraw", nil)))
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	rr = testutil.DoRequest(s.router, s.asUser(testutil.NewJSONRequest(s.T(), http.MethodGet, path+"/history", nil)))
	s.Require().Equal(http.StatusOK, rr.Code)
	timeline := *testutil.UnmarshalResponse[[]models.TimelineEntry](s.T(), rr)
	s.Equal(models.DisplayedStateWithdrawn, timeline[len(timeline)-1].DisplayedState)

	rr = testutil.DoRequest(s.router, s.asUser(testutil.NewJSONRequest(s.T(), http.MethodPost, path+"/withdraw", nil)))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "invalid_state")
}

func (s *RouterSuite) TestPlatformEndpoints() {
	s.Run("health", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/health", nil))
		s.Equal(http.StatusOK, rr.Code)
		body := testutil.UnmarshalResponse[map[string]string](s.T(), rr)
		s.Equal("ok", (*body)["database"])
	})

	s.Run("metrics", func() {
		s.submit(models.BulkRequest{CompanyIdentifiers: []string{"x"}, DataTypes: []string{"sfdr"}, ReportingPeriods: []string{"2024"}})
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/metrics", nil))
		s.Equal(http.StatusOK, rr.Code)
		s.Contains(rr.Body.String(), "sourcing_bulk_dimensions_total")
	})

	s.Run("request id is echoed", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rr := testutil.DoRequest(s.router, req)
		s.Equal("abc-123", rr.Header().Get("X-Request-ID"))
	})

	s.Run("non-JSON body is rejected", func() {
		req := s.asUser(testutil.NewJSONRequest(s.T(), http.MethodPost, "/requests/bulk", models.BulkRequest{}))
		req.Header.Set("Content-Type", "text/plain")
		rr := testutil.DoRequest(s.router, req)
		s.Equal(http.StatusUnsupportedMediaType, rr.Code)
	})
}

func TestNewRouter_DegradedHealthAndPanics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(Options{
		Logger: logger,
		HealthChecks: map[string]HealthCheck{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		},
	}, panicking{})

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/health", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}

	rr = testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/boom", nil))
	testutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
}

type panicking struct{}

func (panicking) Register(r chi.Router) {
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })
}
