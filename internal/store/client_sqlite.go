package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/models"

	_ "github.com/mattn/go-sqlite3"
)

// ErrCacheMiss is returned when a requested document is not present in the
// local cache. Distinct from I/O errors: a miss is an expected outcome.
var ErrCacheMiss = errors.New("document not found in local cache")

const cacheSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_kind ON documents (kind, updated_at DESC);

CREATE TABLE IF NOT EXISTS app_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

const (
	upsertCachedDocument = `INSERT INTO documents (id, kind, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			kind = excluded.kind,
			payload = excluded.payload,
			updated_at = excluded.updated_at;`

	getCachedDocument = `SELECT payload FROM documents WHERE id = ?;`

	getCachedDocumentsByKind = `SELECT payload FROM documents
		WHERE kind = ?
		ORDER BY updated_at DESC;`

	deleteCachedDocument = `DELETE FROM documents WHERE id = ?;`

	upsertAppState = `INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	getAppState = `SELECT value FROM app_state WHERE key = ?;`

	deleteAppState = `DELETE FROM app_state WHERE key = ?;`
)

// sqliteDocumentCache is the SQLite-backed implementation of
// [DocumentCache]. Each document is stored as one JSON blob so the cache
// never needs a schema migration when the document shape evolves.
type sqliteDocumentCache struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewDocumentCache opens (creating if needed) the SQLite cache at path.
// Pass ":memory:" for an ephemeral cache in tests.
func NewDocumentCache(path string, log *logger.Logger) (DocumentCache, error) {
	if path == "" {
		path = ":memory:"
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create cache dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	// The cache has a single writer (the document store), so one
	// connection avoids SQLITE_BUSY without a busy-timeout dance.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init local cache schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("local document cache opened")

	return &sqliteDocumentCache{db: db, logger: log}, nil
}

func (c *sqliteDocumentCache) SaveDocument(ctx context.Context, doc models.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document for cache: %w", err)
	}

	_, err = c.db.ExecContext(ctx, upsertCachedDocument,
		doc.ID, string(doc.Kind), string(payload), doc.UpdatedAt.UTC().Format(timePrecision))
	if err != nil {
		c.logger.Err(err).Str("func", "*sqliteDocumentCache.SaveDocument").Str("id", doc.ID).Msg("cache write failed")
		return fmt.Errorf("write document to cache: %w", err)
	}

	return nil
}

func (c *sqliteDocumentCache) GetDocument(ctx context.Context, id string) (models.Document, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, getCachedDocument, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Document{}, ErrCacheMiss
		}
		return models.Document{}, fmt.Errorf("read document from cache: %w", err)
	}

	var doc models.Document
	if err = json.Unmarshal([]byte(payload), &doc); err != nil {
		return models.Document{}, fmt.Errorf("decode cached document: %w", err)
	}

	return doc, nil
}

func (c *sqliteDocumentCache) GetAllDocuments(ctx context.Context, kind models.DocumentKind) ([]models.Document, error) {
	rows, err := c.db.QueryContext(ctx, getCachedDocumentsByKind, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list cached documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan cached document: %w", err)
		}

		var doc models.Document
		if err = json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("decode cached document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached documents: %w", err)
	}

	return docs, nil
}

func (c *sqliteDocumentCache) DeleteDocument(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, deleteCachedDocument, id); err != nil {
		return fmt.Errorf("delete document from cache: %w", err)
	}
	return nil
}

func (c *sqliteDocumentCache) SetCurrentDocumentID(ctx context.Context, kind models.DocumentKind, id string) error {
	key := currentDocumentKey(kind)

	if id == "" {
		if _, err := c.db.ExecContext(ctx, deleteAppState, key); err != nil {
			return fmt.Errorf("clear current document pointer: %w", err)
		}
		return nil
	}

	if _, err := c.db.ExecContext(ctx, upsertAppState, key, id); err != nil {
		return fmt.Errorf("store current document pointer: %w", err)
	}
	return nil
}

func (c *sqliteDocumentCache) GetCurrentDocumentID(ctx context.Context, kind models.DocumentKind) (string, error) {
	var id string
	err := c.db.QueryRowContext(ctx, getAppState, currentDocumentKey(kind)).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("read current document pointer: %w", err)
	}
	return id, nil
}

func (c *sqliteDocumentCache) Close() error {
	return c.db.Close()
}

// timePrecision is RFC 3339 with sub-second digits so that the cache's
// ordering column sorts the same way as the in-memory timestamps.
const timePrecision = "2006-01-02T15:04:05.000000000Z07:00"

func currentDocumentKey(kind models.DocumentKind) string {
	return "current_document:" + string(kind)
}
