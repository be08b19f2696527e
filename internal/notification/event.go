// Package notification publishes request lifecycle events for downstream
// consumers such as the mail sender.
package notification

import (
	"time"

	"sourcing/internal/request/models"
	id "sourcing/pkg/domain"
)

// EventType names a lifecycle event on the wire.
type EventType string

const (
	EventRequestCreated      EventType = "request.created"
	EventRequestStateChanged EventType = "request.state_changed"
)

// Event is the message body published for every lifecycle event.
type Event struct {
	Type          EventType              `json:"type"`
	RequestID     id.RequestID           `json:"requestId"`
	UserID        id.UserID              `json:"userId"`
	Dimension     models.DataDimension   `json:"dimension"`
	State         models.RequestState    `json:"state"`
	PreviousState models.RequestState    `json:"previousState,omitempty"`
	Priority      models.RequestPriority `json:"priority"`
	AdminComment  *string                `json:"adminComment,omitempty"`
	OccurredAt    time.Time              `json:"occurredAt"`
}

// RequestCreated builds the event for a newly accepted request.
func RequestCreated(req *models.Request) Event {
	return Event{
		Type:       EventRequestCreated,
		RequestID:  req.ID,
		UserID:     req.UserID,
		Dimension:  req.Dimension(),
		State:      req.State,
		Priority:   req.Priority,
		OccurredAt: req.CreatedAt,
	}
}

// StateChanged builds the event for a request that left previous.
func StateChanged(req *models.Request, previous models.RequestState) Event {
	return Event{
		Type:          EventRequestStateChanged,
		RequestID:     req.ID,
		UserID:        req.UserID,
		Dimension:     req.Dimension(),
		State:         req.State,
		PreviousState: previous,
		Priority:      req.Priority,
		AdminComment:  req.AdminComment,
		OccurredAt:    req.LastModifiedAt,
	}
}
