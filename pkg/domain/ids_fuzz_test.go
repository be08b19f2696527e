package domain

import (
	"encoding/json"
	"testing"

	dErrors "sourcing/pkg/domain-errors"
)

// FuzzParseRequestID checks that accepted ids survive a JSON round trip and
// that every rejection carries CodeInvalidInput.
func FuzzParseRequestID(f *testing.F) {
	for _, seed := range []string{
		"",
		"550e8400-e29b-41d4-a716-446655440000",
		"{550e8400-e29b-41d4-a716-446655440000}",
		"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
		"00000000-0000-0000-0000-000000000000",
		"LEI-529900T8BM49AURSDO55",
		"\xff\xfe",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseRequestID(input)
		if err != nil {
			if !dErrors.HasCode(err, dErrors.CodeInvalidInput) {
				t.Fatalf("unexpected error code for %q: %v", input, err)
			}
			return
		}
		if id.IsNil() {
			t.Fatalf("accepted nil id from %q", input)
		}

		raw, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var decoded RequestID
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if decoded != id {
			t.Fatalf("round trip changed %s into %s", id, decoded)
		}
	})
}

// FuzzParseIDsAgree keeps the three id kinds on the same parsing rules.
func FuzzParseIDsAgree(f *testing.F) {
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("550e8400e29b41d4a716446655440000")
	f.Add("nil")

	f.Fuzz(func(t *testing.T, input string) {
		u, errUser := ParseUserID(input)
		r, errRequest := ParseRequestID(input)
		d, errSourcing := ParseDataSourcingID(input)

		if (errUser == nil) != (errRequest == nil) || (errUser == nil) != (errSourcing == nil) {
			t.Fatalf("id kinds disagree on %q", input)
		}
		if errUser == nil && (u.String() != r.String() || r.String() != d.String()) {
			t.Fatalf("id kinds format %q differently", input)
		}
	})
}
