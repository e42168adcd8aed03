package couchpotato

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors. The messages double as the tags reported back to callers.
var (
	// ErrInsufficientSettings indicates the client has no host or API key
	ErrInsufficientSettings = errors.New("insufficient-settings")
	// ErrIDNotString indicates an empty media id was passed to GetMediaByID
	ErrIDNotString = errors.New("id-not-string")
	// ErrNoIDSupplied indicates an empty media id was passed to RemoveFromWanted
	ErrNoIDSupplied = errors.New("no-id-supplied")
	// ErrNoTitleOrIdentifier indicates AddToWanted was called without a title or identifier
	ErrNoTitleOrIdentifier = errors.New("no-title-or-identifier-supplied")
	// ErrInvalidResponse indicates the API returned an unexpected response shape
	ErrInvalidResponse = errors.New("invalid response from CouchPotato API")
)

// Status errors an *APIError matches with errors.Is
var (
	// ErrUnauthorized matches responses rejecting the API key
	ErrUnauthorized = errors.New("couchpotato rejected the API key")
	// ErrNotFound matches responses for an unknown endpoint or media
	ErrNotFound = errors.New("couchpotato endpoint not found")
)

// APIError is a non-200 answer from an endpoint
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("couchpotato %s returned %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets errors.Is match an *APIError against ErrUnauthorized and ErrNotFound
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
