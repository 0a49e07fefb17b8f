package store

import (
	"context"

	"github.com/avoronov/go-cv-builder/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/document_cache_mock.go -package=mock

// DocumentCache is the client-side durable key-value cache. The document
// store writes every state mutation through it before returning control to
// the caller, so an edit survives a crash or restart immediately after it
// is applied. One serialized blob is kept per document, keyed by the
// document ID; the "current document" pointer is stored per kind.
//
// The JSON round-trip through the cache must be lossless: timestamps are
// serialized as RFC 3339 strings and decode back to the same instant.
type DocumentCache interface {
	// SaveDocument inserts or replaces the cached snapshot of doc.
	SaveDocument(ctx context.Context, doc models.Document) error

	// GetDocument returns the cached snapshot with the given ID.
	// Returns [ErrCacheMiss] when the document is not cached.
	GetDocument(ctx context.Context, id string) (models.Document, error)

	// GetAllDocuments returns every cached document of the given kind,
	// most recently updated first.
	GetAllDocuments(ctx context.Context, kind models.DocumentKind) ([]models.Document, error)

	// DeleteDocument removes the cached snapshot. Absent IDs are a no-op.
	DeleteDocument(ctx context.Context, id string) error

	// SetCurrentDocumentID records which document of the given kind is
	// currently open in the editor. Empty id clears the pointer.
	SetCurrentDocumentID(ctx context.Context, kind models.DocumentKind, id string) error

	// GetCurrentDocumentID returns the recorded pointer, or "" when unset.
	GetCurrentDocumentID(ctx context.Context, kind models.DocumentKind) (string, error)

	// Close releases the underlying database handle.
	Close() error
}
