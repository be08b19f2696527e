package models

import (
	"time"

	id "sourcing/pkg/domain"
	dErrors "sourcing/pkg/domain-errors"
)

// Request is one tracked unit of work owned by a user.
//
// Invariants:
//   - State changes only through Transition, and every change is mirrored by
//     a RequestStateHistoryEntry appended by the store
//   - DataSourcingID is set at most once per processing cycle
//   - requests are never deleted
type Request struct {
	ID              id.RequestID       `json:"id"`
	UserID          id.UserID          `json:"userId"`
	CompanyID       string             `json:"companyId"`
	DataType        string             `json:"dataType"`
	ReportingPeriod string             `json:"reportingPeriod"`
	State           RequestState       `json:"state"`
	Priority        RequestPriority    `json:"priority"`
	AdminComment    *string            `json:"adminComment,omitempty"`
	DataSourcingID  *id.DataSourcingID `json:"dataSourcingId,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastModifiedAt  time.Time          `json:"lastModifiedAt"`
}

// NewRequest creates an Open request with default priority for an accepted
// dimension.
func NewRequest(requestID id.RequestID, userID id.UserID, dim DataDimension, now time.Time) (*Request, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "request owner cannot be empty")
	}
	if dim.CompanyID == "" || dim.DataType == "" || dim.ReportingPeriod == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "request dimension is incomplete")
	}
	return &Request{
		ID:              requestID,
		UserID:          userID,
		CompanyID:       dim.CompanyID,
		DataType:        dim.DataType,
		ReportingPeriod: dim.ReportingPeriod,
		State:           RequestStateOpen,
		Priority:        DefaultPriority,
		CreatedAt:       now,
		LastModifiedAt:  now,
	}, nil
}

func (r *Request) Dimension() DataDimension {
	return DataDimension{CompanyID: r.CompanyID, DataType: r.DataType, ReportingPeriod: r.ReportingPeriod}
}

// Transition moves the request to next and returns the history entry the
// store must append alongside the update.
func (r *Request) Transition(next RequestState, adminComment *string, now time.Time) (RequestStateHistoryEntry, error) {
	if !r.State.CanTransitionTo(next) {
		return RequestStateHistoryEntry{}, dErrors.New(dErrors.CodeInvalidState,
			"cannot move request from "+string(r.State)+" to "+string(next))
	}
	r.State = next
	if adminComment != nil {
		r.AdminComment = adminComment
	}
	r.LastModifiedAt = now
	return r.snapshot(now), nil
}

// Annotate updates priority and/or admin comment without a state change. The
// returned entry repeats the current state so the comment lands on the timeline.
func (r *Request) Annotate(priority *RequestPriority, adminComment *string, now time.Time) RequestStateHistoryEntry {
	if priority != nil {
		r.Priority = *priority
	}
	if adminComment != nil {
		r.AdminComment = adminComment
	}
	r.LastModifiedAt = now
	return r.snapshot(now)
}

// RequestUpdate is an admin change to a request. Nil fields stay unchanged.
type RequestUpdate struct {
	State        *RequestState
	Priority     *RequestPriority
	AdminComment *string
}

// IsEmpty reports whether the update changes nothing.
func (u RequestUpdate) IsEmpty() bool {
	return u.State == nil && u.Priority == nil && u.AdminComment == nil
}

// CreationEntry is the first history entry of every request.
func (r *Request) CreationEntry() RequestStateHistoryEntry {
	return r.snapshot(r.CreatedAt)
}

func (r *Request) snapshot(at time.Time) RequestStateHistoryEntry {
	return RequestStateHistoryEntry{
		RequestID:    r.ID,
		State:        r.State,
		AdminComment: r.AdminComment,
		Timestamp:    at,
	}
}

// DataSourcing is the fulfillment counterpart shared by every request on the
// same dimension.
type DataSourcing struct {
	ID              id.DataSourcingID `json:"id"`
	CompanyID       string            `json:"companyId"`
	DataType        string            `json:"dataType"`
	ReportingPeriod string            `json:"reportingPeriod"`
	State           DataSourcingState `json:"state"`
	LastModifiedAt  time.Time         `json:"lastModifiedAt"`
}

func NewDataSourcing(sourcingID id.DataSourcingID, dim DataDimension, now time.Time) *DataSourcing {
	return &DataSourcing{
		ID:              sourcingID,
		CompanyID:       dim.CompanyID,
		DataType:        dim.DataType,
		ReportingPeriod: dim.ReportingPeriod,
		State:           DataSourcingStateInitialized,
		LastModifiedAt:  now,
	}
}

func (d *DataSourcing) Dimension() DataDimension {
	return DataDimension{CompanyID: d.CompanyID, DataType: d.DataType, ReportingPeriod: d.ReportingPeriod}
}

func (d *DataSourcing) Transition(next DataSourcingState, now time.Time) (DataSourcingStateHistoryEntry, error) {
	if !d.State.CanTransitionTo(next) {
		return DataSourcingStateHistoryEntry{}, dErrors.New(dErrors.CodeInvalidState,
			"cannot move data sourcing from "+string(d.State)+" to "+string(next))
	}
	d.State = next
	d.LastModifiedAt = now
	return d.CreationEntry(), nil
}

// CreationEntry records the current state at LastModifiedAt.
func (d *DataSourcing) CreationEntry() DataSourcingStateHistoryEntry {
	return DataSourcingStateHistoryEntry{DataSourcingID: d.ID, State: d.State, Timestamp: d.LastModifiedAt}
}
