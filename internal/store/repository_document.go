package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository]. Document payloads (content, style, section order)
// live in jsonb columns; scalar metadata is kept relational so listings and
// the view counter never touch the payload.
type documentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		db:     db,
		logger: logger,
	}
}

// documentContent is the jsonb shape of the content column. Exactly one of
// the two fields is set, matching the document kind.
type documentContent struct {
	CV     *models.CVContent     `json:"cv,omitempty"`
	Letter *models.LetterContent `json:"letter,omitempty"`
}

func (r *documentRepository) SaveDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	sectionOrder, style, content, err := encodeDocumentPayload(doc)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.SaveDocument").Str("id", doc.ID).Msg("error encoding payload")
		return models.Document{}, err
	}

	row := r.db.QueryRowContext(ctx, saveDocument,
		doc.ID,
		doc.UserID,
		doc.Kind,
		doc.Title,
		doc.TemplateID,
		doc.Views,
		doc.Public,
		sectionOrder,
		style,
		content,
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	saved, err := scanDocumentRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Conflict on an ID owned by another user: the upsert's WHERE
			// clause suppresses the update and RETURNING yields nothing.
			return models.Document{}, ErrDocumentNotSaved
		}
		log.Err(err).Str("func", "*documentRepository.SaveDocument").Str("id", doc.ID).Msg("error saving document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return saved, nil
}

func (r *documentRepository) GetDocument(ctx context.Context, userID int64, id string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectDocumentQuery(userID, id).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.GetDocument").Msg("error building query")
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc, err := scanDocumentRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		log.Err(err).Str("func", "*documentRepository.GetDocument").Str("id", id).Msg("error querying document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return doc, nil
}

func (r *documentRepository) GetAllDocuments(ctx context.Context, userID int64) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectAllDocumentsQuery(userID).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.GetAllDocuments").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.GetAllDocuments").Int64("user_id", userID).Msg("error querying documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		doc, err := scanDocumentRow(rows)
		if err != nil {
			log.Err(err).Str("func", "*documentRepository.GetAllDocuments").Msg("error scanning document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

func (r *documentRepository) UpdateDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	sectionOrder, style, content, err := encodeDocumentPayload(doc)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.UpdateDocument").Str("id", doc.ID).Msg("error encoding payload")
		return models.Document{}, err
	}

	setMap := map[string]any{
		"title":         doc.Title,
		"template_id":   doc.TemplateID,
		"public":        doc.Public,
		"section_order": sectionOrder,
		"style":         style,
		"content":       content,
		"updated_at":    time.Now().UTC(),
	}

	query, args, err := updateDocumentQuery(doc.UserID, doc.ID, setMap).ToSql()
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.UpdateDocument").Msg("error building query")
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanDocumentRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		log.Err(err).Str("func", "*documentRepository.UpdateDocument").Str("id", doc.ID).Msg("error updating document")
		return models.Document{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *documentRepository) DeleteDocument(ctx context.Context, userID int64, id string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteDocument, userID, id)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.DeleteDocument").Str("id", id).Msg("error deleting document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) IncrementViews(ctx context.Context, userID int64, id string) (int, error) {
	log := logger.FromContext(ctx)

	var views int
	err := r.db.QueryRowContext(ctx, incrementDocumentViews, userID, id).Scan(&views)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrDocumentNotFound
		}
		log.Err(err).Str("func", "*documentRepository.IncrementViews").Str("id", id).Msg("error incrementing views")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return views, nil
}

func (r *documentRepository) SetVisibility(ctx context.Context, userID int64, id string, public bool) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, setDocumentVisibility, userID, id, public)
	if err != nil {
		log.Err(err).Str("func", "*documentRepository.SetVisibility").Str("id", id).Msg("error setting visibility")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

// encodeDocumentPayload serializes the jsonb columns of a document row.
func encodeDocumentPayload(doc models.Document) (sectionOrder, style, content []byte, err error) {
	sectionOrder, err = json.Marshal(doc.SectionOrder)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: section order: %w", ErrEncodingPayload, err)
	}

	style, err = json.Marshal(doc.Style)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: style: %w", ErrEncodingPayload, err)
	}

	content, err = json.Marshal(documentContent{CV: doc.CV, Letter: doc.Letter})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: content: %w", ErrEncodingPayload, err)
	}

	return sectionOrder, style, content, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocumentRow scans one documents row and decodes its jsonb columns.
func scanDocumentRow(row rowScanner) (models.Document, error) {
	var doc models.Document
	var sectionOrder, style, content []byte

	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Kind,
		&doc.Title,
		&doc.TemplateID,
		&doc.Views,
		&doc.Public,
		&sectionOrder,
		&style,
		&content,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return models.Document{}, err
	}

	if len(sectionOrder) > 0 {
		if err = json.Unmarshal(sectionOrder, &doc.SectionOrder); err != nil {
			return models.Document{}, fmt.Errorf("%w: section order: %w", ErrDecodingPayload, err)
		}
	}
	if len(style) > 0 {
		if err = json.Unmarshal(style, &doc.Style); err != nil {
			return models.Document{}, fmt.Errorf("%w: style: %w", ErrDecodingPayload, err)
		}
	}
	if len(content) > 0 {
		var payload documentContent
		if err = json.Unmarshal(content, &payload); err != nil {
			return models.Document{}, fmt.Errorf("%w: content: %w", ErrDecodingPayload, err)
		}
		doc.CV = payload.CV
		doc.Letter = payload.Letter
	}

	return doc, nil
}
