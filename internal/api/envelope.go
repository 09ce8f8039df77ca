package api

import (
	"bytes"
	"encoding/json"
)

// EnvelopeKind classifies a parsed response body.
type EnvelopeKind int

const (
	// RawPassthrough is a body without a "success" key. It is returned as is.
	RawPassthrough EnvelopeKind = iota
	// EnvelopeSuccess is an envelope whose "success" is truthy.
	EnvelopeSuccess
	// EnvelopeFailure is an envelope whose "success" is false, null, 0 or "".
	EnvelopeFailure
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeSuccess:
		return "success"
	case EnvelopeFailure:
		return "failure"
	default:
		return "raw"
	}
}

// Envelope is the {success, data, message} wrapper around response payloads.
type Envelope struct {
	Kind    EnvelopeKind
	Success bool
	// Data is the "data" member, nil when absent.
	Data json.RawMessage
	// Message is the "message" member when it is a string.
	Message string
	// Extra holds every other member.
	Extra map[string]json.RawMessage
	// Raw is the complete parsed body.
	Raw json.RawMessage
}

// MarshalJSON returns the original body.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	if len(e.Raw) == 0 {
		return []byte("null"), nil
	}
	return e.Raw, nil
}

// UnwrapFunc extracts the payload from a successful envelope.
type UnwrapFunc func(*Envelope) (json.RawMessage, error)

// UnwrapData returns the envelope's data member. It is the default UnwrapFunc.
func UnwrapData(e *Envelope) (json.RawMessage, error) {
	return e.Data, nil
}

// UnwrapEnvelope returns the whole envelope as the payload.
func UnwrapEnvelope(e *Envelope) (json.RawMessage, error) {
	return e.Raw, nil
}

// ParseEnvelope classifies raw, which must be valid JSON or empty.
func ParseEnvelope(raw json.RawMessage) *Envelope {
	env := &Envelope{Kind: RawPassthrough, Raw: raw}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return env
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return env
	}
	success, ok := members["success"]
	if !ok {
		return env
	}

	env.Success = truthy(success)
	if env.Success {
		env.Kind = EnvelopeSuccess
	} else {
		env.Kind = EnvelopeFailure
	}
	env.Data = members["data"]

	var msg string
	if json.Unmarshal(members["message"], &msg) == nil {
		env.Message = msg
	}

	for k, v := range members {
		switch k {
		case "success", "data", "message":
			continue
		}
		if env.Extra == nil {
			env.Extra = make(map[string]json.RawMessage)
		}
		env.Extra[k] = v
	}
	return env
}

// truthy applies JavaScript truthiness to a JSON value.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch string(v) {
	case "", "false", "null", `""`:
		return false
	}
	if v[0] == '-' || (v[0] >= '0' && v[0] <= '9') {
		var f float64
		if err := json.Unmarshal(v, &f); err == nil {
			return f != 0
		}
	}
	return true
}
