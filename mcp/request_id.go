package mcp

import (
	"encoding/json"
	"fmt"
)

type idKind int

const (
	idAbsent idKind = iota
	idNull
	idString
	idNumber
)

// RequestID is a JSON-RPC request identifier: a string, a number, an explicit
// null, or absent entirely (the zero value). A response must echo the exact
// variant it received; in particular an absent id is omitted from the
// serialized response rather than emitted as null.
type RequestID struct {
	kind idKind
	str  string
	// num keeps the original textual form so numeric ids round-trip
	// byte-identically.
	num json.Number
}

// StringID returns a string-typed request id.
func StringID(s string) RequestID {
	return RequestID{kind: idString, str: s}
}

// NumberID returns a number-typed request id.
func NumberID(n int64) RequestID {
	return RequestID{kind: idNumber, num: json.Number(fmt.Sprintf("%d", n))}
}

// NullID returns an explicitly null request id, distinct from the absent zero
// value.
func NullID() RequestID {
	return RequestID{kind: idNull}
}

// IsZero reports whether the id was absent from the request. encoding/json
// consults this for the `omitzero` tag option, which is how an absent id stays
// out of serialized envelopes.
func (id RequestID) IsZero() bool { return id.kind == idAbsent }

// IsNull reports whether the id is absent or explicitly null.
func (id RequestID) IsNull() bool { return id.kind == idAbsent || id.kind == idNull }

// IsString reports whether the id is a string.
func (id RequestID) IsString() bool { return id.kind == idString }

// IsNumber reports whether the id is a number.
func (id RequestID) IsNumber() bool { return id.kind == idNumber }

// String renders the id for log messages.
func (id RequestID) String() string {
	switch id.kind {
	case idString:
		return id.str
	case idNumber:
		return id.num.String()
	default:
		return "[null]"
	}
}

// MarshalJSON implements json.Marshaler. Absent ids marshal as null; callers
// that must omit them entirely rely on IsZero via the omitzero tag option.
func (id RequestID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case idString:
		return json.Marshal(id.str)
	case idNumber:
		return []byte(id.num.String()), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. Booleans, arrays, and objects are
// not legal id types and are rejected.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		*id = RequestID{}
		return nil
	}
	switch data[0] {
	case 'n':
		*id = RequestID{kind: idNull}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal request id: %w", err)
		}
		*id = RequestID{kind: idString, str: s}
		return nil
	case 't', 'f', '[', '{':
		return fmt.Errorf("unmarshal request id: invalid id type")
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unmarshal request id: %w", err)
		}
		*id = RequestID{kind: idNumber, num: n}
		return nil
	}
}
