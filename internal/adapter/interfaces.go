// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the go-cv-builder server and with the external AI content service.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/avoronov/go-cv-builder/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-cv-builder server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request to the server with the provided
	// user credentials. On success it stores the returned bearer token via
	// SetToken and returns the user value.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user with the server. On success it stores
	// the returned bearer token via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// ListDocuments retrieves every document owned by the authenticated
	// user.
	ListDocuments(ctx context.Context) ([]models.Document, error)

	// GetDocument retrieves a single document by its client-generated ID.
	// Returns [ErrNotFound] (wrapped) when the server authoritatively
	// reports the document absent.
	GetDocument(ctx context.Context, id string) (models.Document, error)

	// CreateDocument mirrors a locally created document to the server and
	// returns the stored copy. The server treats the call as an upsert
	// keyed by the client ID, so retries are idempotent.
	CreateDocument(ctx context.Context, doc models.Document) (models.Document, error)

	// UpdateDocument pushes the full current state of a document. Returns
	// [ErrNotFound] (wrapped) when the server has no row for the ID.
	UpdateDocument(ctx context.Context, doc models.Document) (models.Document, error)

	// DeleteDocument removes the document on the server. Returns
	// [ErrNotFound] (wrapped) when the row is already absent.
	DeleteDocument(ctx context.Context, id string) error

	// IncrementViews bumps the server-side view counter of a document.
	IncrementViews(ctx context.Context, id string) error

	// SetVisibility flips the public flag of a document on the server.
	SetVisibility(ctx context.Context, id string, public bool) error
}

// AIAdapter is the boundary to the external AI content service. The service
// is an opaque, fallible text transform: it never touches the document
// store, and callers decide what to do with the results.
type AIAdapter interface {
	// TransformText applies op ("fix", "improve", "expand", "translate")
	// to the given text and returns the rewritten string.
	TransformText(ctx context.Context, op models.AIOperation, text string) (string, error)

	// AnalyzeCV submits CV content for review and returns the structured
	// analysis (score, strengths, improvements, recommended roles).
	AnalyzeCV(ctx context.Context, content models.CVContent) (models.Analysis, error)

	// ExtractCV parses free-form resume text into structured CV content.
	// Item identifiers are left empty; the document store mints them on
	// import.
	ExtractCV(ctx context.Context, text string) (models.CVContent, error)

	// GenerateLetter drafts cover-letter content from a CV and a free-text
	// job description.
	GenerateLetter(ctx context.Context, content models.CVContent, jobDescription string) (models.LetterContent, error)
}
