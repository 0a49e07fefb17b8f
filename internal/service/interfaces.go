// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/avoronov/go-cv-builder/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService manages user accounts and JWT token lifecycle on the server.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DocumentService implements the server-side document operations. Every
// method is scoped by the authenticated user ID taken from the request
// context by the HTTP layer.
type DocumentService interface {
	// SaveDocument persists a client-created document. The call is an
	// upsert keyed by the client-generated document ID, so a retried
	// create is idempotent.
	SaveDocument(ctx context.Context, userID int64, doc models.Document) (models.Document, error)

	GetDocument(ctx context.Context, userID int64, id string) (models.Document, error)
	GetAllDocuments(ctx context.Context, userID int64) ([]models.Document, error)

	// UpdateDocument replaces the stored document with the submitted full
	// state and bumps UpdatedAt.
	UpdateDocument(ctx context.Context, userID int64, doc models.Document) (models.Document, error)

	DeleteDocument(ctx context.Context, userID int64, id string) error

	// IncrementViews bumps the view counter and returns the new value.
	IncrementViews(ctx context.Context, userID int64, id string) (int, error)

	// SetVisibility flips the public flag of the document.
	SetVisibility(ctx context.Context, userID int64, id string, public bool) error
}
