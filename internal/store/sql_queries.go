package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`

	saveDocument = `INSERT INTO documents (
			id,
			user_id,
			kind,
			title,
			template_id,
			views,
			public,
			section_order,
			style,
			content,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			template_id = EXCLUDED.template_id,
			public = EXCLUDED.public,
			section_order = EXCLUDED.section_order,
			style = EXCLUDED.style,
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at
		WHERE documents.user_id = EXCLUDED.user_id
		RETURNING id, user_id, kind, title, template_id, views, public,
			section_order, style, content, created_at, updated_at;`

	deleteDocument = `DELETE FROM documents
		WHERE user_id = $1 AND id = $2;`

	incrementDocumentViews = `UPDATE documents
		SET views = views + 1
		WHERE user_id = $1 AND id = $2
		RETURNING views;`

	setDocumentVisibility = `UPDATE documents
		SET public = $3, updated_at = NOW()
		WHERE user_id = $1 AND id = $2;`
)

// documentColumns is the canonical column list scanned by scanDocumentRow.
var documentColumns = []string{
	"id", "user_id", "kind", "title", "template_id", "views", "public",
	"section_order", "style", "content", "created_at", "updated_at",
}

// psql is the shared squirrel statement builder configured for PostgreSQL
// dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// selectDocumentQuery builds the single-document lookup.
func selectDocumentQuery(userID int64, id string) sq.SelectBuilder {
	return psql.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"user_id": userID, "id": id})
}

// selectAllDocumentsQuery builds the per-user listing, freshest first.
func selectAllDocumentsQuery(userID int64) sq.SelectBuilder {
	return psql.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC")
}

// updateDocumentQuery builds the full-row update issued by the client's
// push. setMap is assembled by the repository from the document fields.
func updateDocumentQuery(userID int64, id string, setMap map[string]any) sq.UpdateBuilder {
	return psql.Update("documents").
		SetMap(setMap).
		Where(sq.Eq{"user_id": userID, "id": id}).
		Suffix(`RETURNING id, user_id, kind, title, template_id, views, public,
			section_order, style, content, created_at, updated_at`)
}
