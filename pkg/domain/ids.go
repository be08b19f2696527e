package domain

import (
	"github.com/google/uuid"

	dErrors "sourcing/pkg/domain-errors"
)

// Typed identifiers keep request, data-sourcing and user ids from being mixed
// up at call sites. Construct them with the Parse functions at trust
// boundaries; New* helpers are for code that mints ids.
type (
	UserID         uuid.UUID
	RequestID      uuid.UUID
	DataSourcingID uuid.UUID
)

func NewRequestID() RequestID           { return RequestID(uuid.New()) }
func NewDataSourcingID() DataSourcingID { return DataSourcingID(uuid.New()) }

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id RequestID) String() string      { return uuid.UUID(id).String() }
func (id DataSourcingID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id RequestID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id DataSourcingID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// ParseUserID parses a non-nil UUID.
//
// Errors: CodeInvalidInput for empty, malformed or nil UUIDs.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user")
	return UserID(u), err
}

// ParseRequestID parses a non-nil UUID.
func ParseRequestID(s string) (RequestID, error) {
	u, err := parseUUID(s, "request")
	return RequestID(u), err
}

// ParseDataSourcingID parses a non-nil UUID.
func ParseDataSourcingID(s string) (DataSourcingID, error) {
	u, err := parseUUID(s, "data sourcing")
	return DataSourcingID(u), err
}

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}

// Text marshalling keeps JSON bodies and log attributes in canonical UUID form.

func (id UserID) MarshalText() ([]byte, error)         { return uuid.UUID(id).MarshalText() }
func (id RequestID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id DataSourcingID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error         { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *RequestID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DataSourcingID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
