package service

import (
	"context"
	"testing"
	"time"

	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/store"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDocumentRepository struct {
	saveFn          func(ctx context.Context, doc models.Document) (models.Document, error)
	getFn           func(ctx context.Context, userID int64, id string) (models.Document, error)
	getAllFn        func(ctx context.Context, userID int64) ([]models.Document, error)
	updateFn        func(ctx context.Context, doc models.Document) (models.Document, error)
	deleteFn        func(ctx context.Context, userID int64, id string) error
	incViewsFn      func(ctx context.Context, userID int64, id string) (int, error)
	setVisibilityFn func(ctx context.Context, userID int64, id string, public bool) error
}

func (m *mockDocumentRepository) SaveDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, doc)
	}
	return doc, nil
}

func (m *mockDocumentRepository) GetDocument(ctx context.Context, userID int64, id string) (models.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return models.Document{}, store.ErrDocumentNotFound
}

func (m *mockDocumentRepository) GetAllDocuments(ctx context.Context, userID int64) ([]models.Document, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockDocumentRepository) UpdateDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, doc)
	}
	return doc, nil
}

func (m *mockDocumentRepository) DeleteDocument(ctx context.Context, userID int64, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockDocumentRepository) IncrementViews(ctx context.Context, userID int64, id string) (int, error) {
	if m.incViewsFn != nil {
		return m.incViewsFn(ctx, userID, id)
	}
	return 0, nil
}

func (m *mockDocumentRepository) SetVisibility(ctx context.Context, userID int64, id string, public bool) error {
	if m.setVisibilityFn != nil {
		return m.setVisibilityFn(ctx, userID, id, public)
	}
	return nil
}

func TestSaveDocument_StampsOwnerAndTimes(t *testing.T) {
	var persisted models.Document
	repo := &mockDocumentRepository{
		saveFn: func(_ context.Context, doc models.Document) (models.Document, error) {
			persisted = doc
			return doc, nil
		},
	}

	svc := NewDocumentService(repo, logger.Nop())
	doc := models.Document{ID: "doc-1", Kind: models.KindCV, Title: "My CV"}

	_, err := svc.SaveDocument(context.Background(), 42, doc)

	require.NoError(t, err)
	assert.Equal(t, int64(42), persisted.UserID)
	assert.False(t, persisted.CreatedAt.IsZero())
	assert.False(t, persisted.UpdatedAt.IsZero())
}

func TestSaveDocument_KeepsClientTimestamps(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	var persisted models.Document
	repo := &mockDocumentRepository{
		saveFn: func(_ context.Context, doc models.Document) (models.Document, error) {
			persisted = doc
			return doc, nil
		},
	}

	svc := NewDocumentService(repo, logger.Nop())
	doc := models.Document{
		ID: "doc-1", Kind: models.KindCV,
		CreatedAt: created, UpdatedAt: updated,
	}

	_, err := svc.SaveDocument(context.Background(), 1, doc)

	require.NoError(t, err)
	assert.Equal(t, created, persisted.CreatedAt)
	assert.Equal(t, updated, persisted.UpdatedAt)
}

func TestSaveDocument_Validation(t *testing.T) {
	svc := NewDocumentService(&mockDocumentRepository{}, logger.Nop())

	_, err := svc.SaveDocument(context.Background(), 1, models.Document{Kind: models.KindCV})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.SaveDocument(context.Background(), 1, models.Document{ID: "doc-1", Kind: "poem"})
	assert.ErrorIs(t, err, ErrUnknownDocumentKind)
}

func TestUpdateDocument_BumpsUpdatedAt(t *testing.T) {
	stale := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var persisted models.Document
	repo := &mockDocumentRepository{
		updateFn: func(_ context.Context, doc models.Document) (models.Document, error) {
			persisted = doc
			return doc, nil
		},
	}

	svc := NewDocumentService(repo, logger.Nop())
	doc := models.Document{ID: "doc-1", Kind: models.KindCV, UpdatedAt: stale}

	_, err := svc.UpdateDocument(context.Background(), 7, doc)

	require.NoError(t, err)
	assert.Equal(t, int64(7), persisted.UserID)
	assert.True(t, persisted.UpdatedAt.After(stale))
}

func TestUpdateDocument_NotFound(t *testing.T) {
	repo := &mockDocumentRepository{
		updateFn: func(_ context.Context, _ models.Document) (models.Document, error) {
			return models.Document{}, store.ErrDocumentNotFound
		},
	}

	svc := NewDocumentService(repo, logger.Nop())
	_, err := svc.UpdateDocument(context.Background(), 7, models.Document{ID: "ghost", Kind: models.KindCV})

	assert.ErrorIs(t, err, store.ErrDocumentNotFound)
}

func TestGetDocument_EmptyID(t *testing.T) {
	svc := NewDocumentService(&mockDocumentRepository{}, logger.Nop())

	_, err := svc.GetDocument(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestIncrementViews_PassesThrough(t *testing.T) {
	repo := &mockDocumentRepository{
		incViewsFn: func(_ context.Context, userID int64, id string) (int, error) {
			assert.Equal(t, int64(3), userID)
			assert.Equal(t, "doc-1", id)
			return 12, nil
		},
	}

	svc := NewDocumentService(repo, logger.Nop())
	views, err := svc.IncrementViews(context.Background(), 3, "doc-1")

	require.NoError(t, err)
	assert.Equal(t, 12, views)
}

func TestSetVisibility_PassesThrough(t *testing.T) {
	var gotPublic bool
	repo := &mockDocumentRepository{
		setVisibilityFn: func(_ context.Context, _ int64, _ string, public bool) error {
			gotPublic = public
			return nil
		},
	}

	svc := NewDocumentService(repo, logger.Nop())
	require.NoError(t, svc.SetVisibility(context.Background(), 3, "doc-1", true))
	assert.True(t, gotPublic)
}
