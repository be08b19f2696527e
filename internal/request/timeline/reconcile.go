// Package timeline reconciles a request's state history with the history of
// its data sourcing into the timeline shown to the user.
package timeline

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"sourcing/internal/request/models"
	dErrors "sourcing/pkg/domain-errors"
)

// Row is one point of the merged history. Unset pointer fields are filled
// from earlier rows.
type Row struct {
	Timestamp         time.Time
	RequestState      *models.RequestState
	DataSourcingState *models.DataSourcingState
	AdminComment      *string
	source            int
}

// Entries of the request stream sort before data-sourcing entries that share
// a timestamp.
const (
	sourceRequest = iota
	sourceDataSourcing
)

// Reconciler runs merge, gap-fill, derive, filter and compact.
type Reconciler struct {
	exclusions []ExclusionRule
}

// New returns a reconciler using the given exclusion rules, or
// DefaultExclusions when none are passed.
func New(rules ...ExclusionRule) *Reconciler {
	if len(rules) == 0 {
		rules = DefaultExclusions
	}
	return &Reconciler{exclusions: rules}
}

// Reconcile builds the displayed timeline. Inputs are not modified and may be
// in any order.
func (r *Reconciler) Reconcile(
	requestHistory []models.RequestStateHistoryEntry,
	sourcingHistory []models.DataSourcingStateHistoryEntry,
) ([]models.TimelineEntry, error) {
	rows, err := Merge(requestHistory, sourcingHistory)
	if err != nil {
		return nil, err
	}
	return r.Refine(rows)
}

// Refine applies gap-fill, derive, filter and compact to already merged
// rows. Feeding it the rows of its own output returns the same timeline.
func (r *Reconciler) Refine(rows []Row) ([]models.TimelineEntry, error) {
	filled := Fill(rows)
	out := make([]models.TimelineEntry, 0, len(filled))
	for _, row := range filled {
		if r.excluded(row) {
			continue
		}
		displayed, err := Derive(*row.RequestState, row.DataSourcingState)
		if err != nil {
			return nil, err
		}
		if n := len(out); n > 0 && out[n-1].DisplayedState == displayed {
			continue
		}
		out = append(out, models.TimelineEntry{
			Timestamp:         row.Timestamp,
			DisplayedState:    displayed,
			RequestState:      *row.RequestState,
			DataSourcingState: row.DataSourcingState,
			AdminComment:      row.AdminComment,
		})
	}
	return out, nil
}

func (r *Reconciler) excluded(row Row) bool {
	for _, rule := range r.exclusions {
		if rule.Matches(row) {
			return true
		}
	}
	return false
}

// Merge combines both streams, sorted by timestamp. The first merged row must
// be a request entry in state Open.
func Merge(
	requestHistory []models.RequestStateHistoryEntry,
	sourcingHistory []models.DataSourcingStateHistoryEntry,
) ([]Row, error) {
	rows := make([]Row, 0, len(requestHistory)+len(sourcingHistory))
	for _, e := range requestHistory {
		state := e.State
		rows = append(rows, Row{
			Timestamp:    e.Timestamp,
			RequestState: &state,
			AdminComment: e.AdminComment,
			source:       sourceRequest,
		})
	}
	for _, e := range sourcingHistory {
		state := e.State
		rows = append(rows, Row{
			Timestamp:         e.Timestamp,
			DataSourcingState: &state,
			source:            sourceDataSourcing,
		})
	}
	if len(rows) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "request has no state history")
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		return cmp.Or(a.Timestamp.Compare(b.Timestamp), cmp.Compare(a.source, b.source))
	})

	first := rows[0]
	if first.RequestState == nil || *first.RequestState != models.RequestStateOpen {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("merged history starts with %s, want request state Open", describe(first)))
	}
	return rows, nil
}

// Fill carries the last known request state, data-sourcing state and comment
// forward into rows that leave them unset. The fold starts from Open with
// nothing else known.
func Fill(rows []Row) []Row {
	request := models.RequestStateOpen
	var sourcing *models.DataSourcingState
	var comment *string

	out := make([]Row, len(rows))
	for i, row := range rows {
		if row.RequestState != nil {
			request = *row.RequestState
		}
		if row.DataSourcingState != nil {
			s := *row.DataSourcingState
			sourcing = &s
		}
		if row.AdminComment != nil {
			c := *row.AdminComment
			comment = &c
		}
		rs := request
		out[i] = Row{
			Timestamp:         row.Timestamp,
			RequestState:      &rs,
			DataSourcingState: sourcing,
			AdminComment:      comment,
			source:            row.source,
		}
	}
	return out
}

// Derive maps a filled row to the state shown to the user. Withdrawal always
// wins. An open request does not simply show Open: while a data sourcing is
// still running for it the row shows the sourcing's progress, so Open with an
// Initialized sourcing shows Validated. Only once that sourcing is final (the
// request was reopened) does an open request show Open again.
func Derive(request models.RequestState, sourcing *models.DataSourcingState) (models.DisplayedState, error) {
	if request == models.RequestStateWithdrawn {
		return models.DisplayedStateWithdrawn, nil
	}
	if sourcing == nil {
		return models.DisplayedStateOpen, nil
	}
	if request == models.RequestStateOpen && sourcing.IsFinal() {
		return models.DisplayedStateOpen, nil
	}
	switch *sourcing {
	case models.DataSourcingStateInitialized:
		return models.DisplayedStateValidated, nil
	case models.DataSourcingStateDocumentSourcing:
		return models.DisplayedStateDocumentSourcing, nil
	case models.DataSourcingStateDocumentSourcingDone:
		return models.DisplayedStateDocumentVerification, nil
	case models.DataSourcingStateDataExtraction:
		return models.DisplayedStateDataExtraction, nil
	case models.DataSourcingStateDataVerification:
		return models.DisplayedStateDataVerification, nil
	case models.DataSourcingStateNonSourceable:
		return models.DisplayedStateNonSourceable, nil
	case models.DataSourcingStateDone:
		return models.DisplayedStateDone, nil
	}
	return "", dErrors.New(dErrors.CodeInvariantViolation, "no displayed state for data sourcing state "+string(*sourcing))
}

// RowsOf turns a timeline back into filled rows.
func RowsOf(timeline []models.TimelineEntry) []Row {
	rows := make([]Row, len(timeline))
	for i, e := range timeline {
		state := e.RequestState
		rows[i] = Row{
			Timestamp:         e.Timestamp,
			RequestState:      &state,
			DataSourcingState: e.DataSourcingState,
			AdminComment:      e.AdminComment,
		}
	}
	return rows
}

func describe(r Row) string {
	if r.RequestState != nil {
		return "request state " + string(*r.RequestState)
	}
	return "data sourcing state " + string(*r.DataSourcingState)
}
