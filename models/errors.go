// ABOUTME: Error taxonomy for backend client and form validation
// ABOUTME: Distinguishes local validation, transport, parse, and backend failures
package models

import "fmt"

// ValidationError is a local input failure. It blocks submission before any
// network request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FetchError is a network or transport-level failure.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError is a malformed response body from the backend.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid response while %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CallError is a backend rejection of a call placement, carrying the
// human-readable message extracted from the error response.
type CallError struct {
	Message string
}

func (e *CallError) Error() string {
	return e.Message
}

// BackendError is a well-formed error response from the backend for any
// non-placement operation.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// NotFoundError means the backend has no resource for the given call SID.
type NotFoundError struct {
	CallSid string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record found for call %s", e.CallSid)
}
