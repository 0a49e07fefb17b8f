package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := &DB{DB: conn, logger: logger.Nop(), errorClassificator: NewPostgresErrorClassifier()}
	return NewDocumentRepository(db, logger.Nop()), mock
}

func docRows(t *testing.T, docs ...models.Document) *sqlmock.Rows {
	t.Helper()

	rows := sqlmock.NewRows(documentColumns)
	for _, doc := range docs {
		sectionOrder, style, content, err := encodeDocumentPayload(doc)
		require.NoError(t, err)
		rows.AddRow(doc.ID, doc.UserID, doc.Kind, doc.Title, doc.TemplateID,
			doc.Views, doc.Public, sectionOrder, style, content,
			doc.CreatedAt, doc.UpdatedAt)
	}
	return rows
}

func serverCV(id string, userID int64) models.Document {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.Document{
		ID:        id,
		UserID:    userID,
		Kind:      models.KindCV,
		Title:     "Backend CV",
		Views:     3,
		CV:        &models.CVContent{PersonalInfo: models.PersonalInfo{FirstName: "Jane"}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDocumentRepository_SaveDocument_Success(t *testing.T) {
	repo, mock := newMockRepo(t)
	doc := serverCV("doc-1", 42)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.UserID, string(doc.Kind), doc.Title, doc.TemplateID,
			doc.Views, doc.Public, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			doc.CreatedAt, doc.UpdatedAt).
		WillReturnRows(docRows(t, doc))

	saved, err := repo.SaveDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, saved.ID)
	assert.Equal(t, doc.Title, saved.Title)
	require.NotNil(t, saved.CV)
	assert.Equal(t, "Jane", saved.CV.PersonalInfo.FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_SaveDocument_ForeignIDConflict(t *testing.T) {
	repo, mock := newMockRepo(t)
	doc := serverCV("doc-1", 42)

	// upsert hits a row owned by another user: RETURNING yields no rows
	mock.ExpectQuery("INSERT INTO documents").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SaveDocument(context.Background(), doc)
	assert.ErrorIs(t, err, ErrDocumentNotSaved)
}

func TestDocumentRepository_GetDocument_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("missing", int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDocument(context.Background(), 42, "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentRepository_GetDocument_DecodesPayload(t *testing.T) {
	repo, mock := newMockRepo(t)
	doc := serverCV("doc-1", 42)
	doc.SectionOrder = []string{"experiences", "skills"}

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WillReturnRows(docRows(t, doc))

	got, err := repo.GetDocument(context.Background(), 42, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"experiences", "skills"}, got.SectionOrder)
	require.NotNil(t, got.CV)
	assert.Equal(t, "Jane", got.CV.PersonalInfo.FirstName)
}

func TestDocumentRepository_GetAllDocuments(t *testing.T) {
	repo, mock := newMockRepo(t)
	first := serverCV("doc-1", 42)
	second := serverCV("doc-2", 42)
	second.Kind = models.KindCoverLetter
	second.CV = nil
	second.Letter = &models.LetterContent{Company: "ACME"}

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs(int64(42)).
		WillReturnRows(docRows(t, first, second))

	docs, err := repo.GetAllDocuments(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].ID)
	require.NotNil(t, docs[1].Letter)
	assert.Equal(t, "ACME", docs[1].Letter.Company)
}

func TestDocumentRepository_GetAllDocuments_CorruptPayload(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows(documentColumns).
		AddRow("doc-1", int64(42), "cv", "Broken", "", 0, false,
			[]byte("[]"), []byte("{}"), []byte("{not json"),
			time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WillReturnRows(rows)

	_, err := repo.GetAllDocuments(context.Background(), 42)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestDocumentRepository_DeleteDocument(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM documents").
		WithArgs(int64(42), "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteDocument(context.Background(), 42, "doc-1"))
}

func TestDocumentRepository_DeleteDocument_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteDocument(context.Background(), 42, "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDocumentRepository_IncrementViews(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("UPDATE documents").
		WithArgs(int64(42), "doc-1").
		WillReturnRows(sqlmock.NewRows([]string{"views"}).AddRow(8))

	views, err := repo.IncrementViews(context.Background(), 42, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 8, views)
}

func TestDocumentRepository_SetVisibility_Missing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE documents").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetVisibility(context.Background(), 42, "missing", true)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestEncodeDocumentPayload_RoundTrip(t *testing.T) {
	doc := serverCV("doc-1", 42)
	doc.CV.Skills = []models.Skill{{ItemMeta: models.ItemMeta{ID: "s1"}, Name: "Go", Level: 5}}

	_, _, content, err := encodeDocumentPayload(doc)
	require.NoError(t, err)

	var decoded documentContent
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.NotNil(t, decoded.CV)
	assert.Equal(t, "Go", decoded.CV.Skills[0].Name)
}
