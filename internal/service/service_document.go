package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/store"
	"github.com/avoronov/go-cv-builder/models"
)

type documentService struct {
	documentRepository store.DocumentRepository

	logger *logger.Logger
}

// NewDocumentService constructs the server-side DocumentService on top of
// the given repository.
func NewDocumentService(documentRepository store.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		logger:             logger,
	}
}

func (d *documentService) SaveDocument(ctx context.Context, userID int64, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if err := validateDocument(doc); err != nil {
		log.Error().Str("id", doc.ID).Str("kind", string(doc.Kind)).Msg("invalid document provided")
		return models.Document{}, err
	}

	doc.UserID = userID
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
	}

	saved, err := d.documentRepository.SaveDocument(ctx, doc)
	if err != nil {
		log.Err(err).Str("id", doc.ID).Msg("document save ended with error")
		return models.Document{}, fmt.Errorf("document save ended with error: %w", err)
	}

	return saved, nil
}

func (d *documentService) GetDocument(ctx context.Context, userID int64, id string) (models.Document, error) {
	if id == "" {
		return models.Document{}, ErrInvalidDataProvided
	}

	return d.documentRepository.GetDocument(ctx, userID, id)
}

func (d *documentService) GetAllDocuments(ctx context.Context, userID int64) ([]models.Document, error) {
	return d.documentRepository.GetAllDocuments(ctx, userID)
}

func (d *documentService) UpdateDocument(ctx context.Context, userID int64, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if err := validateDocument(doc); err != nil {
		log.Error().Str("id", doc.ID).Str("kind", string(doc.Kind)).Msg("invalid document provided")
		return models.Document{}, err
	}

	doc.UserID = userID
	doc.UpdatedAt = time.Now().UTC()

	updated, err := d.documentRepository.UpdateDocument(ctx, doc)
	if err != nil {
		log.Err(err).Str("id", doc.ID).Msg("document update ended with error")
		return models.Document{}, fmt.Errorf("document update ended with error: %w", err)
	}

	return updated, nil
}

func (d *documentService) DeleteDocument(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return ErrInvalidDataProvided
	}

	return d.documentRepository.DeleteDocument(ctx, userID, id)
}

func (d *documentService) IncrementViews(ctx context.Context, userID int64, id string) (int, error) {
	if id == "" {
		return 0, ErrInvalidDataProvided
	}

	return d.documentRepository.IncrementViews(ctx, userID, id)
}

func (d *documentService) SetVisibility(ctx context.Context, userID int64, id string, public bool) error {
	if id == "" {
		return ErrInvalidDataProvided
	}

	return d.documentRepository.SetVisibility(ctx, userID, id, public)
}

func validateDocument(doc models.Document) error {
	if doc.ID == "" {
		return ErrInvalidDataProvided
	}

	switch doc.Kind {
	case models.KindCV, models.KindCoverLetter:
		return nil
	default:
		return ErrUnknownDocumentKind
	}
}
