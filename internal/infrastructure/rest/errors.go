package rest

import (
	"encoding/json"
	"fmt"
	"strings"
)

const genericFailure = "Request failed"

// NetworkError wraps a transport-level failure: DNS, refused connection,
// timeout. The request may or may not have reached the server.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "request failed: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// FieldError is one entry of a server-side validation failure.
type FieldError struct {
	Path    string `json:"loc"`
	Message string `json:"msg"`
}

// ValidationError is the backend's field-level rejection (HTTP 422 with a
// detail array). Error renders one line per field so the whole message can
// go straight into an inline error state.
type ValidationError struct {
	StatusCode int
	Fields     []FieldError
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Path != "" {
			lines = append(lines, f.Path+": "+f.Message)
		} else {
			lines = append(lines, f.Message)
		}
	}
	if len(lines) == 0 {
		return genericFailure
	}
	return strings.Join(lines, "\n")
}

// ServerError is any other server-reported failure: a string detail, or a
// malformed/non-JSON body collapsed to the generic message.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string { return e.Message }

// decodeAPIError turns an error response body into exactly one of the
// taxonomy variants. The shape sniffing happens here and nowhere else;
// callers only ever see the typed errors.
func decodeAPIError(status int, body []byte) error {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return &ServerError{StatusCode: status, Message: genericFailure}
	}

	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		return &ServerError{StatusCode: status, Message: msg}
	}

	var fields []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &fields); err == nil {
		ve := &ValidationError{StatusCode: status, Fields: make([]FieldError, 0, len(fields))}
		for _, f := range fields {
			ve.Fields = append(ve.Fields, FieldError{Path: joinLoc(f.Loc), Message: f.Msg})
		}
		return ve
	}

	return &ServerError{StatusCode: status, Message: genericFailure}
}

// joinLoc renders a detail location like ["body","items",0,"qty"] as
// "body.items.0.qty". Segments may be strings or array indices.
func joinLoc(loc []any) string {
	parts := make([]string, 0, len(loc))
	for _, seg := range loc {
		switch v := seg.(type) {
		case string:
			parts = append(parts, v)
		case float64:
			parts = append(parts, fmt.Sprintf("%d", int(v)))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, ".")
}
