package adapter

import "errors"

// Transport-level sentinel errors mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// handling.
var (
	// ErrUnauthorized is returned when the server rejects the bearer token
	// (HTTP 401).
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound is returned when the server authoritatively reports that
	// the requested document does not exist (HTTP 404). Callers must treat
	// this differently from transient failures: the absence is a fact, not
	// an outage.
	ErrNotFound = errors.New("document not found on server")
)
