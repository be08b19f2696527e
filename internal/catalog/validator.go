package catalog

import (
	"context"
	"fmt"
	"strconv"

	"sourcing/internal/request/models"
	"sourcing/pkg/requestcontext"
)

// Validator checks bulk request inputs. Each value is judged on its own;
// results are keyed by the raw value.
type Validator struct {
	directory          CompanyDirectory
	dataTypes          map[string]struct{}
	minReportingPeriod int
}

func NewValidator(directory CompanyDirectory, dataTypes []string, minReportingPeriod int) *Validator {
	allowed := make(map[string]struct{}, len(dataTypes))
	for _, dt := range dataTypes {
		allowed[dt] = struct{}{}
	}
	return &Validator{directory: directory, dataTypes: allowed, minReportingPeriod: minReportingPeriod}
}

// ValidateCompanies resolves identifiers through the directory. Resolved
// identifiers carry the canonical company id.
func (v *Validator) ValidateCompanies(ctx context.Context, identifiers []string) (map[string]models.ValidationResult, error) {
	resolved, err := v.directory.Resolve(ctx, identifiers)
	if err != nil {
		return nil, fmt.Errorf("resolve companies: %w", err)
	}
	out := make(map[string]models.ValidationResult, len(identifiers))
	for _, ident := range identifiers {
		companyID, ok := resolved[ident]
		out[ident] = models.ValidationResult{Valid: ok && companyID != "", CanonicalID: companyID}
	}
	return out, nil
}

func (v *Validator) ValidateDataTypes(_ context.Context, dataTypes []string) (map[string]models.ValidationResult, error) {
	out := make(map[string]models.ValidationResult, len(dataTypes))
	for _, dt := range dataTypes {
		_, ok := v.dataTypes[dt]
		out[dt] = models.ValidationResult{Valid: ok}
	}
	return out, nil
}

// ValidateReportingPeriods accepts four-digit years from the configured
// minimum up to next year, relative to the request time.
func (v *Validator) ValidateReportingPeriods(ctx context.Context, periods []string) (map[string]models.ValidationResult, error) {
	maxYear := requestcontext.Now(ctx).Year() + 1
	out := make(map[string]models.ValidationResult, len(periods))
	for _, p := range periods {
		year, err := strconv.Atoi(p)
		valid := err == nil && len(p) == 4 && year >= v.minReportingPeriod && year <= maxYear
		out[p] = models.ValidationResult{Valid: valid}
	}
	return out, nil
}
