// Package store contains every persistence backend of the application:
// the server-side PostgreSQL repositories for users and documents, and the
// client-side SQLite cache that keeps document snapshots available offline.
package store

import (
	"context"

	"github.com/avoronov/go-cv-builder/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts on the server.
type UserRepository interface {
	// CreateUser persists a new user record and returns the fully populated
	// [models.User] with server-assigned fields (UserID, CreatedAt).
	// Returns [ErrLoginAlreadyExists] when the login is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin retrieves the user record whose Login matches the one
	// provided. Returns [ErrNoUserWasFound] when no such user exists.
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// DocumentRepository persists documents on the server. The document ID is
// client-generated; every method scopes access by the owning user.
type DocumentRepository interface {
	// SaveDocument inserts the document, or fully replaces it when a row
	// with the same ID already exists for this user. The upsert makes a
	// retried fire-and-forget create from the client idempotent.
	SaveDocument(ctx context.Context, doc models.Document) (models.Document, error)

	// GetDocument returns the document with the given ID owned by userID.
	// Returns [ErrDocumentNotFound] when no such row exists.
	GetDocument(ctx context.Context, userID int64, id string) (models.Document, error)

	// GetAllDocuments returns every document owned by userID, most recently
	// updated first.
	GetAllDocuments(ctx context.Context, userID int64) ([]models.Document, error)

	// UpdateDocument replaces the mutable fields of an existing document and
	// returns the stored row. Returns [ErrDocumentNotFound] when the row is
	// absent.
	UpdateDocument(ctx context.Context, doc models.Document) (models.Document, error)

	// DeleteDocument removes the document. Returns [ErrDocumentNotFound]
	// when the row is absent.
	DeleteDocument(ctx context.Context, userID int64, id string) error

	// IncrementViews bumps the public view counter and returns the new value.
	IncrementViews(ctx context.Context, userID int64, id string) (int, error)

	// SetVisibility flips the public flag of the document.
	SetVisibility(ctx context.Context, userID int64, id string, public bool) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
