package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"sourcing/internal/notification"
	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
)

// RequestStore persists requests and their state history. Create and Update
// write the request row and append the history entry together.
type RequestStore interface {
	Create(ctx context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error
	Update(ctx context.Context, req *models.Request, entry models.RequestStateHistoryEntry) error
	FindByID(ctx context.Context, requestID id.RequestID) (*models.Request, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Request, error)
	ListByDataSourcing(ctx context.Context, sourcingID id.DataSourcingID) ([]*models.Request, error)
	// FindNonFinal returns the dimensions among dims for which userID already
	// has an Open or Processing request. Matching is on the exact triple.
	FindNonFinal(ctx context.Context, userID id.UserID, dims []models.DataDimension) (models.DimensionSet, error)
	ListHistory(ctx context.Context, requestID id.RequestID) ([]models.RequestStateHistoryEntry, error)
}

// SourcingStore persists data sourcings and their state history.
type SourcingStore interface {
	Create(ctx context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error
	Update(ctx context.Context, ds *models.DataSourcing, entry models.DataSourcingStateHistoryEntry) error
	FindByID(ctx context.Context, sourcingID id.DataSourcingID) (*models.DataSourcing, error)
	// FindActiveByDimension returns the data sourcing for dim that has not
	// reached a final state.
	FindActiveByDimension(ctx context.Context, dim models.DataDimension) (*models.DataSourcing, error)
	ListHistory(ctx context.Context, sourcingID id.DataSourcingID) ([]models.DataSourcingStateHistoryEntry, error)
}

// IdentifierValidator checks each raw input value independently. Results are
// keyed by the raw value; values missing from the map are invalid.
type IdentifierValidator interface {
	ValidateCompanies(ctx context.Context, identifiers []string) (map[string]models.ValidationResult, error)
	ValidateDataTypes(ctx context.Context, dataTypes []string) (map[string]models.ValidationResult, error)
	ValidateReportingPeriods(ctx context.Context, periods []string) (map[string]models.ValidationResult, error)
}

// DatasetCatalog answers which dimensions already have an active dataset.
type DatasetCatalog interface {
	FindActive(ctx context.Context, dims []models.DataDimension) (models.DimensionSet, error)
}

type Publisher interface {
	Publish(ctx context.Context, event notification.Event) error
}
