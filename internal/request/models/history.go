package models

import (
	"time"

	id "sourcing/pkg/domain"
)

// RequestStateHistoryEntry is an append-only record of a request state, with
// the admin comment active at that time.
type RequestStateHistoryEntry struct {
	RequestID    id.RequestID `json:"requestId"`
	State        RequestState `json:"state"`
	AdminComment *string      `json:"adminComment,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

// DataSourcingStateHistoryEntry is an append-only record of a data-sourcing
// state.
type DataSourcingStateHistoryEntry struct {
	DataSourcingID id.DataSourcingID `json:"dataSourcingId"`
	State          DataSourcingState `json:"state"`
	Timestamp      time.Time         `json:"timestamp"`
}

// TimelineEntry is one row of the reconciled, user-facing history.
type TimelineEntry struct {
	Timestamp         time.Time          `json:"timestamp"`
	DisplayedState    DisplayedState     `json:"displayedState"`
	RequestState      RequestState       `json:"requestState"`
	DataSourcingState *DataSourcingState `json:"dataSourcingState,omitempty"`
	AdminComment      *string            `json:"adminComment,omitempty"`
}
