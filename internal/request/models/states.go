package models

import dErrors "sourcing/pkg/domain-errors"

// RequestState is the lifecycle state of a user's data request.
type RequestState string

const (
	RequestStateOpen          RequestState = "Open"
	RequestStateProcessing    RequestState = "Processing"
	RequestStateProcessed     RequestState = "Processed"
	RequestStateWithdrawn     RequestState = "Withdrawn"
	RequestStateNonSourceable RequestState = "NonSourceable"
)

var requestStates = map[RequestState]bool{
	RequestStateOpen:          false,
	RequestStateProcessing:    false,
	RequestStateProcessed:     true,
	RequestStateWithdrawn:     true,
	RequestStateNonSourceable: true,
}

// requestTransitions lists the allowed moves. Anything missing is rejected.
var requestTransitions = map[RequestState][]RequestState{
	RequestStateOpen:          {RequestStateProcessing, RequestStateWithdrawn, RequestStateNonSourceable},
	RequestStateProcessing:    {RequestStateProcessed, RequestStateNonSourceable, RequestStateWithdrawn},
	RequestStateNonSourceable: {RequestStateOpen},
}

// NonFinalRequestStates are the states that block a duplicate request.
func NonFinalRequestStates() []RequestState {
	return []RequestState{RequestStateOpen, RequestStateProcessing}
}

func ParseRequestState(s string) (RequestState, error) {
	st := RequestState(s)
	if _, ok := requestStates[st]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown request state: "+s)
	}
	return st, nil
}

func (s RequestState) IsFinal() bool { return requestStates[s] }

func (s RequestState) CanTransitionTo(next RequestState) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DataSourcingState is the fulfillment-side lifecycle state.
type DataSourcingState string

const (
	DataSourcingStateInitialized          DataSourcingState = "Initialized"
	DataSourcingStateDocumentSourcing     DataSourcingState = "DocumentSourcing"
	DataSourcingStateDocumentSourcingDone DataSourcingState = "DocumentSourcingDone"
	DataSourcingStateDataExtraction       DataSourcingState = "DataExtraction"
	DataSourcingStateDataVerification     DataSourcingState = "DataVerification"
	DataSourcingStateNonSourceable        DataSourcingState = "NonSourceable"
	DataSourcingStateDone                 DataSourcingState = "Done"
)

// AllDataSourcingStates lists every state; tests walk it to prove the
// displayed-state mapping is total.
func AllDataSourcingStates() []DataSourcingState {
	return []DataSourcingState{
		DataSourcingStateInitialized,
		DataSourcingStateDocumentSourcing,
		DataSourcingStateDocumentSourcingDone,
		DataSourcingStateDataExtraction,
		DataSourcingStateDataVerification,
		DataSourcingStateNonSourceable,
		DataSourcingStateDone,
	}
}

var sourcingTransitions = map[DataSourcingState]DataSourcingState{
	DataSourcingStateInitialized:          DataSourcingStateDocumentSourcing,
	DataSourcingStateDocumentSourcing:     DataSourcingStateDocumentSourcingDone,
	DataSourcingStateDocumentSourcingDone: DataSourcingStateDataExtraction,
	DataSourcingStateDataExtraction:       DataSourcingStateDataVerification,
	DataSourcingStateDataVerification:     DataSourcingStateDone,
}

func ParseDataSourcingState(s string) (DataSourcingState, error) {
	for _, st := range AllDataSourcingStates() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown data sourcing state: "+s)
}

func (s DataSourcingState) IsFinal() bool {
	return s == DataSourcingStateDone || s == DataSourcingStateNonSourceable
}

// CanTransitionTo allows the next step of the pipeline, or NonSourceable from
// any state that is not final.
func (s DataSourcingState) CanTransitionTo(next DataSourcingState) bool {
	if s.IsFinal() {
		return false
	}
	if next == DataSourcingStateNonSourceable {
		return true
	}
	return sourcingTransitions[s] == next
}

// DisplayedState is the single user-facing status derived from a request
// state and an optional data-sourcing state. It is never stored.
type DisplayedState string

const (
	DisplayedStateOpen                 DisplayedState = "Open"
	DisplayedStateValidated            DisplayedState = "Validated"
	DisplayedStateDocumentSourcing     DisplayedState = "DocumentSourcing"
	DisplayedStateDocumentVerification DisplayedState = "DocumentVerification"
	DisplayedStateDataExtraction       DisplayedState = "DataExtraction"
	DisplayedStateDataVerification     DisplayedState = "DataVerification"
	DisplayedStateNonSourceable        DisplayedState = "NonSourceable"
	DisplayedStateDone                 DisplayedState = "Done"
	DisplayedStateWithdrawn            DisplayedState = "Withdrawn"
)

// RequestPriority orders the fulfillment backlog.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "Low"
	PriorityNormal RequestPriority = "Normal"
	PriorityHigh   RequestPriority = "High"
	PriorityUrgent RequestPriority = "Urgent"
)

const DefaultPriority = PriorityNormal

func ParsePriority(s string) (RequestPriority, error) {
	switch p := RequestPriority(s); p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return p, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown priority: "+s)
}
