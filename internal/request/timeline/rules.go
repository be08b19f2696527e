package timeline

import "sourcing/internal/request/models"

// ExclusionRule drops a filled row from the displayed timeline. A nil
// DataSourcingState pointer on the rule matches rows with no data sourcing.
type ExclusionRule struct {
	Name              string
	RequestState      models.RequestState
	DataSourcingState *models.DataSourcingState
}

func (r ExclusionRule) Matches(row Row) bool {
	if row.RequestState == nil || *row.RequestState != r.RequestState {
		return false
	}
	if r.DataSourcingState == nil {
		return row.DataSourcingState == nil
	}
	return row.DataSourcingState != nil && *row.DataSourcingState == *r.DataSourcingState
}

// DefaultExclusions hide combinations produced by the two streams
// interleaving rather than by a change the user cares about.
var DefaultExclusions = []ExclusionRule{
	{
		Name:         "processing_before_sourcing_started",
		RequestState: models.RequestStateProcessing,
	},
	{
		Name:              "processed_while_verification_pending",
		RequestState:      models.RequestStateProcessed,
		DataSourcingState: sourcingState(models.DataSourcingStateDataVerification),
	},
}

func sourcingState(s models.DataSourcingState) *models.DataSourcingState { return &s }
