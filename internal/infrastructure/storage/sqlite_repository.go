package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"ArticlesExtractor/internal/domain"
	"ArticlesExtractor/internal/ports"
)

// SQLiteRepository persists the document index into an embedded SQLite
// database, rebuilt on every run.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.IndexRepository = (*SQLiteRepository)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		document_id   INTEGER PRIMARY KEY,
		id            TEXT NOT NULL,
		document_name TEXT NOT NULL,
		filename      TEXT NOT NULL,
		title         TEXT NOT NULL,
		source        TEXT NOT NULL,
		date          TEXT NOT NULL,
		media         TEXT,
		pages         TEXT,
		url           TEXT,
		date_time     TEXT,
		year          TEXT,
		input_file    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_name ON documents(document_name);
`

// Open opens or creates the index database at path.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	// SQLite does not support concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveIndex replaces the stored index with the given documents.
func (r *SQLiteRepository) SaveIndex(ctx context.Context, docs []domain.DocumentRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}

	for _, doc := range docs {
		insert := sq.Insert("documents").
			Columns("document_id", "id", "document_name", "filename",
				"title", "source", "date", "media", "pages", "url",
				"date_time", "year", "input_file").
			Values(doc.DocumentID, doc.ID, doc.DocumentName, doc.Filename,
				doc.Title, doc.Source, doc.Date, string(doc.Media), doc.Pages, doc.URL,
				formatDateTime(doc.DateTime), doc.Year, doc.InputFile)

		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("insert document %d: %w", doc.DocumentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

// Count returns the number of stored documents.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	query := sq.Select("COUNT(*)").From("documents")
	if err := query.RunWith(r.db).QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// FindByName returns the stored document names matching an exact slug,
// ordered by document id.
func (r *SQLiteRepository) FindByName(ctx context.Context, documentName string) ([]domain.DocumentRecord, error) {
	query := sq.Select("document_id", "id", "document_name", "filename",
		"title", "source", "date", "media", "pages", "url", "year", "input_file").
		From("documents").
		Where(sq.Eq{"document_name": documentName}).
		OrderBy("document_id")

	rows, err := query.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.DocumentRecord
	for rows.Next() {
		var doc domain.DocumentRecord
		var media string
		if err := rows.Scan(&doc.DocumentID, &doc.ID, &doc.DocumentName, &doc.Filename,
			&doc.Title, &doc.Source, &doc.Date, &media, &doc.Pages, &doc.URL,
			&doc.Year, &doc.InputFile); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc.Media = domain.Media(media)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return docs, nil
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
