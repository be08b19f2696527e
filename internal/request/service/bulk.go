package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"sourcing/internal/notification"
	"sourcing/internal/request/bulk"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
	"sourcing/pkg/platform/sentinel"
	strutil "sourcing/pkg/platform/strings"
	"sourcing/pkg/requestcontext"
)

// ProcessBulkRequest expands the cross product of the requested companies,
// data types and reporting periods and sorts every dimension into exactly one
// bucket, checked in this order: invalid, already requested by the user,
// already covered by an active dataset, accepted. One Open request is created
// per accepted dimension.
//
// Errors:
//   - CodeUnauthorized when userID is nil
//   - CodeValidation when any input set is empty or the cross product is too large
//   - CodeDependency when a validator, lookup or write fails
//   - CodeConflict when a concurrent call created the same request first
func (s *Service) ProcessBulkRequest(ctx context.Context, userID id.UserID, req models.BulkRequest) (*models.BulkRequestOutcome, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "request.ProcessBulkRequest")
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveBulkRequest(start)
	}

	outcome, err := s.processBulkRequest(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("bulk.invalid", len(outcome.Invalid)),
		attribute.Int("bulk.existing_requests", len(outcome.ExistingRequests)),
		attribute.Int("bulk.existing_datasets", len(outcome.ExistingDatasets)),
		attribute.Int("bulk.accepted", len(outcome.Accepted)),
	)
	return outcome, nil
}

func (s *Service) processBulkRequest(ctx context.Context, userID id.UserID, req models.BulkRequest) (*models.BulkRequestOutcome, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "user id is required")
	}
	companies := strutil.NormalizeSet(req.CompanyIdentifiers)
	dataTypes := strutil.NormalizeSet(req.DataTypes)
	periods := strutil.NormalizeSet(req.ReportingPeriods)
	if err := s.checkBulkInput(companies, dataTypes, periods); err != nil {
		return nil, err
	}

	validity, err := s.validate(ctx, companies, dataTypes, periods)
	if err != nil {
		return nil, err
	}
	invalid, valid := bulk.Expand(companies, dataTypes, periods, validity)

	var outcome *models.BulkRequestOutcome
	var created []*models.Request
	err = s.tx.RunInTx(WithTxKey(ctx, userID.String()), func(ctx context.Context, stores Stores) error {
		outcome = &models.BulkRequestOutcome{
			Invalid:            invalid,
			AcceptedRequestIDs: make(map[models.DataDimension]id.RequestID),
		}
		created = created[:0]

		found := models.NewDimensionSet()
		if len(valid) > 0 {
			var err error
			found, err = stores.Requests.FindNonFinal(ctx, userID, valid.Slice())
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeDependency, "failed to look up existing requests")
			}
		}
		var rest models.DimensionSet
		outcome.ExistingRequests, rest = bulk.Split(valid, found)

		found = models.NewDimensionSet()
		if len(rest) > 0 {
			var err error
			found, err = s.datasets.FindActive(ctx, rest.Slice())
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeDependency, "failed to look up existing datasets")
			}
		}
		outcome.ExistingDatasets, outcome.Accepted = bulk.Split(rest, found)

		now := requestcontext.Now(ctx)
		for _, dim := range outcome.Accepted.Slice() {
			r, err := models.NewRequest(id.NewRequestID(), userID, dim, now)
			if err != nil {
				return err
			}
			if err := stores.Requests.Create(ctx, r, r.CreationEntry()); err != nil {
				if errors.Is(err, sentinel.ErrConflict) {
					return dErrors.Wrap(err, dErrors.CodeConflict, "request for "+dim.String()+" was created concurrently")
				}
				return dErrors.Wrap(err, dErrors.CodeDependency, "failed to create request")
			}
			outcome.AcceptedRequestIDs[dim] = r.ID
			created = append(created, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.AddBulkOutcome(len(outcome.Invalid), len(outcome.ExistingRequests),
			len(outcome.ExistingDatasets), len(outcome.Accepted))
	}
	s.logger.InfoContext(ctx, "bulk data request processed",
		"user_id", userID.String(),
		"invalid", len(outcome.Invalid),
		"existing_requests", len(outcome.ExistingRequests),
		"existing_datasets", len(outcome.ExistingDatasets),
		"accepted", len(outcome.Accepted),
		"request_id", requestcontext.RequestID(ctx),
	)

	events := make([]notification.Event, 0, len(created))
	for _, r := range created {
		events = append(events, notification.RequestCreated(r))
	}
	s.publish(ctx, events...)
	return outcome, nil
}

func (s *Service) checkBulkInput(companies, dataTypes, periods []string) error {
	switch {
	case len(companies) == 0:
		return dErrors.New(dErrors.CodeValidation, "at least one company identifier is required")
	case len(dataTypes) == 0:
		return dErrors.New(dErrors.CodeValidation, "at least one data type is required")
	case len(periods) == 0:
		return dErrors.New(dErrors.CodeValidation, "at least one reporting period is required")
	}
	if n := bulk.Size(companies, dataTypes, periods); n > s.maxDimensions {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("bulk request expands to %d dimensions, limit is %d", n, s.maxDimensions))
	}
	return nil
}

// validate runs the three independent validators concurrently.
func (s *Service) validate(ctx context.Context, companies, dataTypes, periods []string) (bulk.Validity, error) {
	var v bulk.Validity
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.validator.ValidateCompanies(gctx, companies)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDependency, "failed to validate company identifiers")
		}
		v.Companies = res
		return nil
	})
	g.Go(func() error {
		res, err := s.validator.ValidateDataTypes(gctx, dataTypes)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDependency, "failed to validate data types")
		}
		v.DataTypes = res
		return nil
	})
	g.Go(func() error {
		res, err := s.validator.ValidateReportingPeriods(gctx, periods)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeDependency, "failed to validate reporting periods")
		}
		v.ReportingPeriods = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return bulk.Validity{}, err
	}
	return v, nil
}
