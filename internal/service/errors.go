package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrUnknownDocumentKind = errors.New("unknown document kind")

	// ErrNoCurrentDocument is returned by mutators when no document of the
	// required kind is currently open in the editor.
	ErrNoCurrentDocument = errors.New("no current document")
)
