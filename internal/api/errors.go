package api

import (
	"errors"
	"fmt"
)

// Kind classifies why a backend call failed. The mobile client this library
// replaces collapsed every failure into "no result"; callers here can tell a
// missing token from a dead network from a rejected request.
type Kind string

const (
	// KindNoToken means no access token was stored; no request was sent.
	KindNoToken Kind = "no_token"
	// KindTransport covers connection, TLS and timeout failures.
	KindTransport Kind = "transport"
	// KindStatus means the backend answered with a non-2xx status.
	KindStatus Kind = "http_status"
	// KindDecode means the body could not be parsed into the expected shape
	// or was missing an expected field.
	KindDecode Kind = "decode"
)

// Error is the failure type returned by every Client operation.
type Error struct {
	Op     string // operation name, e.g. "stop-charging"
	Kind   Kind
	Status int // HTTP status, set for KindStatus
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNoToken:
		return fmt.Sprintf("%s: no access token stored", e.Op)
	case KindStatus:
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error returned by a Client
// operation, or "" for nil and foreign errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
