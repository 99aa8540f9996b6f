// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotLoggedIn  = errors.New("not logged in")

	// ErrBusiness marks a well-formed server response whose status field
	// signals failure. It is never retried by the service retry policy.
	ErrBusiness = errors.New("request rejected")

	// ErrMalformedResponse marks a response missing fields the caller
	// expected to find.
	ErrMalformedResponse = errors.New("malformed response")
)
