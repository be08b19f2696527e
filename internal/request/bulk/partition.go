// Package bulk holds the set algebra behind bulk data requests. It does no
// I/O: the service feeds it validator verdicts and lookup results and it
// returns disjoint dimension sets.
package bulk

import "sourcing/internal/request/models"

// Validity holds the three independent validator verdicts, keyed by the raw
// input value.
type Validity struct {
	Companies        map[string]models.ValidationResult
	DataTypes        map[string]models.ValidationResult
	ReportingPeriods map[string]models.ValidationResult
}

// Size is the number of candidate dimensions before validation.
func Size(companies, dataTypes, periods []string) int {
	return len(companies) * len(dataTypes) * len(periods)
}

// Expand builds the cross product and separates invalid dimensions from
// valid ones. A dimension is invalid when any component is invalid or the
// company identifier did not resolve; it keeps the raw identifier so the
// caller can report it back verbatim. Valid dimensions carry the canonical
// company id, so two identifiers of the same company collapse into one.
//
// When an unresolved raw identifier equals the canonical id another
// identifier resolved to, invalid wins and the dimension is dropped from
// valid, keeping the two sets disjoint.
func Expand(companies, dataTypes, periods []string, v Validity) (invalid, valid models.DimensionSet) {
	invalid = make(models.DimensionSet)
	valid = make(models.DimensionSet)
	for _, company := range companies {
		cr := v.Companies[company]
		companyOK := cr.Valid && cr.CanonicalID != ""
		for _, dataType := range dataTypes {
			typeOK := v.DataTypes[dataType].Valid
			for _, period := range periods {
				if companyOK && typeOK && v.ReportingPeriods[period].Valid {
					valid.Add(models.DataDimension{CompanyID: cr.CanonicalID, DataType: dataType, ReportingPeriod: period})
					continue
				}
				invalid.Add(models.DataDimension{CompanyID: company, DataType: dataType, ReportingPeriod: period})
			}
		}
	}
	for d := range invalid {
		delete(valid, d)
	}
	return invalid, valid
}

// Split moves the candidates that appear in matches into hit and leaves the
// rest. Matches outside candidates are ignored, so a lookup that returns
// extra rows cannot leak dimensions into the outcome.
func Split(candidates, matches models.DimensionSet) (hit, rest models.DimensionSet) {
	hit = make(models.DimensionSet)
	rest = make(models.DimensionSet, len(candidates))
	for d := range candidates {
		if matches.Contains(d) {
			hit.Add(d)
		} else {
			rest.Add(d)
		}
	}
	return hit, rest
}
