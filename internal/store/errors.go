package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrDocumentNotSaved is returned when an INSERT of a document completes
	// without error but the number of affected rows is zero, indicating that
	// nothing was actually persisted.
	ErrDocumentNotSaved = errors.New("document was not saved")

	// ErrDocumentNotFound is returned when a query or update targets a
	// document (identified by id and user_id) that does not exist in the
	// database. Distinct from transient failures: the absence is
	// authoritative.
	ErrDocumentNotFound = errors.New("document was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan document row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan document rows")

	// ErrEncodingPayload is returned when a document payload cannot be
	// serialized to its JSON column representation.
	ErrEncodingPayload = errors.New("failed to encode document payload")

	// ErrDecodingPayload is returned when a JSON column cannot be decoded
	// back into the document payload.
	ErrDecodingPayload = errors.New("failed to decode document payload")
)
