package models

import id "sourcing/pkg/domain"

// BulkRequest asks for the cross product of companies, data types and
// reporting periods.
type BulkRequest struct {
	CompanyIdentifiers []string `json:"companyIdentifiers"`
	DataTypes          []string `json:"dataTypes"`
	ReportingPeriods   []string `json:"reportingPeriods"`
}

// BulkRequestOutcome partitions the requested dimensions into four disjoint
// sets whose union is the full cross product.
type BulkRequestOutcome struct {
	Invalid          DimensionSet
	ExistingRequests DimensionSet
	ExistingDatasets DimensionSet
	Accepted         DimensionSet
	// AcceptedRequestIDs maps each accepted dimension to the request created for it.
	AcceptedRequestIDs map[DataDimension]id.RequestID
}

// Total is the number of dimensions across all four sets.
func (o *BulkRequestOutcome) Total() int {
	return len(o.Invalid) + len(o.ExistingRequests) + len(o.ExistingDatasets) + len(o.Accepted)
}

// ValidationResult is the validator's verdict for one raw input value.
// CanonicalID is set for company identifiers that resolved.
type ValidationResult struct {
	Valid       bool
	CanonicalID string
}
