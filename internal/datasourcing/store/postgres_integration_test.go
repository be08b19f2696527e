//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sourcing/internal/datasourcing/store"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	"sourcing/pkg/platform/sentinel"
	"sourcing/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(),
		"request_state_history", "data_requests", "data_sourcing_state_history", "data_sourcings")
	s.Require().NoError(err)
}

var dim = models.DataDimension{CompanyID: "c-1", DataType: "sfdr", ReportingPeriod: "2024"}

func (s *PostgresStoreSuite) TestLifecycle() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	ds := models.NewDataSourcing(id.NewDataSourcingID(), dim, now)
	s.Require().NoError(s.store.Create(ctx, ds, ds.CreationEntry()))

	active, err := s.store.FindActiveByDimension(ctx, dim)
	s.Require().NoError(err)
	s.Equal(ds, active)

	entry, err := ds.Transition(models.DataSourcingStateDocumentSourcing, now.Add(time.Second))
	s.Require().NoError(err)
	s.Require().NoError(s.store.Update(ctx, ds, entry))

	history, err := s.store.ListHistory(ctx, ds.ID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(models.DataSourcingStateDocumentSourcing, history[1].State)
	s.Equal(now.Add(time.Second), history[1].Timestamp)

	s.Run("second active sourcing on the dimension conflicts", func() {
		dup := models.NewDataSourcing(id.NewDataSourcingID(), dim, now)
		err := s.store.Create(ctx, dup, dup.CreationEntry())
		s.True(errors.Is(err, sentinel.ErrConflict))
	})

	s.Run("final sourcing is no longer active", func() {
		entry, err := ds.Transition(models.DataSourcingStateNonSourceable, now.Add(2*time.Second))
		s.Require().NoError(err)
		s.Require().NoError(s.store.Update(ctx, ds, entry))
		_, err = s.store.FindActiveByDimension(ctx, dim)
		s.True(errors.Is(err, sentinel.ErrNotFound))
	})
}
