package dispatch

import "errors"

var (
	// ErrMethodTypeNotFound indicates a request arrived through an unknown method variant
	ErrMethodTypeNotFound = errors.New("method-type-not-found")

	// ErrAuthorizationFailed indicates a missing or mismatched token
	ErrAuthorizationFailed = errors.New("authorization-failed")

	// ErrNotImplemented indicates a show target with no handler
	ErrNotImplemented = errors.New("not-implemented")

	// ErrUnknownCommand indicates an unrecognised verb
	ErrUnknownCommand = errors.New("unknown-command")

	// ErrMissingArgument indicates a verb given without its argument
	ErrMissingArgument = errors.New("missing-argument")

	// ErrMalformedRequest indicates a request lacking required fields
	ErrMalformedRequest = errors.New("malformed-request")
)
