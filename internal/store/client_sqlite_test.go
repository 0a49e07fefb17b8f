package store

import (
	"context"
	"testing"
	"time"

	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) DocumentCache {
	t.Helper()
	cache, err := NewDocumentCache(":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func testCV(id, title string) models.Document {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return models.Document{
		ID:        id,
		Kind:      models.KindCV,
		Title:     title,
		Style:     models.Style{AccentColor: "#336699", FontSize: 11},
		CV:        &models.CVContent{PersonalInfo: models.PersonalInfo{FirstName: "Jane"}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDocumentCache_SaveAndGetRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	doc := testCV("doc-1", "My CV")
	doc.CV.Experiences = []models.Experience{
		{ItemMeta: models.ItemMeta{ID: "exp-1"}, Company: "ACME", Position: "Engineer"},
	}

	require.NoError(t, cache.SaveDocument(ctx, doc))

	got, err := cache.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.True(t, got.CreatedAt.Equal(doc.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(doc.UpdatedAt))
}

func TestDocumentCache_GetMiss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDocumentCache_SaveOverwrites(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	doc := testCV("doc-1", "First title")
	require.NoError(t, cache.SaveDocument(ctx, doc))

	doc.Title = "Second title"
	doc.UpdatedAt = doc.UpdatedAt.Add(time.Second)
	require.NoError(t, cache.SaveDocument(ctx, doc))

	got, err := cache.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Second title", got.Title)

	docs, err := cache.GetAllDocuments(ctx, models.KindCV)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestDocumentCache_GetAllFiltersByKindAndOrders(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	older := testCV("cv-old", "Old")
	older.UpdatedAt = older.UpdatedAt.Add(-time.Hour)
	newer := testCV("cv-new", "New")

	letter := models.Document{
		ID:        "letter-1",
		Kind:      models.KindCoverLetter,
		Title:     "Letter",
		Letter:    &models.LetterContent{Company: "ACME"},
		CreatedAt: newer.CreatedAt,
		UpdatedAt: newer.UpdatedAt,
	}

	require.NoError(t, cache.SaveDocument(ctx, older))
	require.NoError(t, cache.SaveDocument(ctx, newer))
	require.NoError(t, cache.SaveDocument(ctx, letter))

	cvs, err := cache.GetAllDocuments(ctx, models.KindCV)
	require.NoError(t, err)
	require.Len(t, cvs, 2)
	assert.Equal(t, "cv-new", cvs[0].ID)
	assert.Equal(t, "cv-old", cvs[1].ID)

	letters, err := cache.GetAllDocuments(ctx, models.KindCoverLetter)
	require.NoError(t, err)
	require.Len(t, letters, 1)
	assert.Equal(t, "letter-1", letters[0].ID)
}

func TestDocumentCache_DeleteIsIdempotent(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveDocument(ctx, testCV("doc-1", "CV")))
	require.NoError(t, cache.DeleteDocument(ctx, "doc-1"))

	_, err := cache.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// second delete is a no-op
	require.NoError(t, cache.DeleteDocument(ctx, "doc-1"))
}

func TestDocumentCache_CurrentDocumentPointer(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	id, err := cache.GetCurrentDocumentID(ctx, models.KindCV)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, cache.SetCurrentDocumentID(ctx, models.KindCV, "doc-7"))
	require.NoError(t, cache.SetCurrentDocumentID(ctx, models.KindCoverLetter, "letter-9"))

	id, err = cache.GetCurrentDocumentID(ctx, models.KindCV)
	require.NoError(t, err)
	assert.Equal(t, "doc-7", id)

	id, err = cache.GetCurrentDocumentID(ctx, models.KindCoverLetter)
	require.NoError(t, err)
	assert.Equal(t, "letter-9", id)

	require.NoError(t, cache.SetCurrentDocumentID(ctx, models.KindCV, ""))
	id, err = cache.GetCurrentDocumentID(ctx, models.KindCV)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestDocumentCache_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/cache.db"

	cache, err := NewDocumentCache(path, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	doc := testCV("doc-1", "Persisted")
	require.NoError(t, cache.SaveDocument(ctx, doc))
	require.NoError(t, cache.SetCurrentDocumentID(ctx, models.KindCV, "doc-1"))
	require.NoError(t, cache.Close())

	reopened, err := NewDocumentCache(path, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	id, err := reopened.GetCurrentDocumentID(ctx, models.KindCV)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)
}
