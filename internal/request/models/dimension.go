package models

import (
	"cmp"
	"slices"
)

// DataDimension identifies one potential unit of work. It is comparable and
// used directly as a map key.
type DataDimension struct {
	CompanyID       string `json:"companyId"`
	DataType        string `json:"dataType"`
	ReportingPeriod string `json:"reportingPeriod"`
}

func (d DataDimension) String() string {
	return d.CompanyID + "/" + d.DataType + "/" + d.ReportingPeriod
}

func compareDimensions(a, b DataDimension) int {
	return cmp.Or(
		cmp.Compare(a.CompanyID, b.CompanyID),
		cmp.Compare(a.DataType, b.DataType),
		cmp.Compare(a.ReportingPeriod, b.ReportingPeriod),
	)
}

// DimensionSet is a set of dimensions.
type DimensionSet map[DataDimension]struct{}

func NewDimensionSet(dims ...DataDimension) DimensionSet {
	s := make(DimensionSet, len(dims))
	for _, d := range dims {
		s[d] = struct{}{}
	}
	return s
}

func (s DimensionSet) Add(d DataDimension) { s[d] = struct{}{} }

func (s DimensionSet) Contains(d DataDimension) bool {
	_, ok := s[d]
	return ok
}

// Slice returns the members in company, data type, period order.
func (s DimensionSet) Slice() []DataDimension {
	out := make([]DataDimension, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	slices.SortFunc(out, compareDimensions)
	return out
}

// DimensionColumns splits dims into parallel column slices, the shape batched
// SQL lookups pass to unnest.
func DimensionColumns(dims []DataDimension) (companies, dataTypes, periods []string) {
	companies = make([]string, len(dims))
	dataTypes = make([]string, len(dims))
	periods = make([]string, len(dims))
	for i, d := range dims {
		companies[i], dataTypes[i], periods[i] = d.CompanyID, d.DataType, d.ReportingPeriod
	}
	return companies, dataTypes, periods
}
