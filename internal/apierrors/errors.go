// Package apierrors provides the shared error taxonomy for the soulnest client.
package apierrors

import (
	"errors"
	"fmt"
)

// Code identifies the kind of a normalized request failure.
type Code string

const (
	// CodeEncryption means the admin key could not be sealed before the network call.
	CodeEncryption Code = "ENCRYPTION_ERROR"
	// CodeJSONParse means the response body was not valid JSON.
	CodeJSONParse Code = "JSON_PARSE_ERROR"
	// CodeBusiness means the response envelope reported success=false.
	CodeBusiness Code = "BUSINESS_ERROR"
	// CodeTimeoutAbort means the caller cancelled the call or the client timeout fired.
	CodeTimeoutAbort Code = "TIMEOUT_ABORT"
	// CodeNetwork means the transport kept failing until retries ran out.
	CodeNetwork Code = "NETWORK_ERROR"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrEncryption matches every error with CodeEncryption.
	ErrEncryption = errors.New("admin API key encryption failed")

	// ErrJSONParse matches every error with CodeJSONParse.
	ErrJSONParse = errors.New("response JSON parse failed")

	// ErrBusiness matches every error with CodeBusiness.
	ErrBusiness = errors.New("business request failed")

	// ErrTimeoutAbort matches every error with CodeTimeoutAbort.
	ErrTimeoutAbort = errors.New("request cancelled or timed out")

	// ErrNetwork matches every error with CodeNetwork.
	ErrNetwork = errors.New("network error")
)

// Error is a normalized request failure. Every terminal condition of a
// dispatched request is reported as an *Error.
type Error struct {
	// Status is the HTTP status of the response, or 0 when no response was received.
	Status int
	// Code is the failure kind.
	Code Code
	// Message is a human readable description, taken from the envelope for business errors.
	Message string
	// Details carries kind-specific context: the *Envelope for business errors,
	// *ParseDetails for parse errors and *AbortDetails for aborts.
	Details any
	// RequestID is the server request id, if the response carried one.
	RequestID string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = sentinelFor(e.Code).Error()
	}
	switch {
	case e.Status != 0 && e.RequestID != "":
		return fmt.Sprintf("%s (status %d): %s (request_id: %s)", e.Code, e.Status, msg, e.RequestID)
	case e.Status != 0:
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.Status, msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	s := sentinelFor(e.Code)
	return s != nil && target == s
}

func sentinelFor(code Code) error {
	switch code {
	case CodeEncryption:
		return ErrEncryption
	case CodeJSONParse:
		return ErrJSONParse
	case CodeBusiness:
		return ErrBusiness
	case CodeTimeoutAbort:
		return ErrTimeoutAbort
	case CodeNetwork:
		return ErrNetwork
	}
	return errors.New(string(code))
}

// ParseDetails is attached to JSON_PARSE_ERROR failures.
type ParseDetails struct {
	Body string
}

// AbortDetails is attached to TIMEOUT_ABORT failures.
type AbortDetails struct {
	Path    string
	Timeout bool // true when the client timeout fired rather than the caller
}

// CodeOf returns the Code of err if it is (or wraps) an *Error.
func CodeOf(err error) (Code, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return "", false
}

// IsTerminal reports whether err is already a normalized *Error. Terminal
// errors are never retried by the dispatcher.
func IsTerminal(err error) bool {
	_, ok := CodeOf(err)
	return ok
}
