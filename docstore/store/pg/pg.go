package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	// Registers the postgres driver with the database/sql package.
	_ "github.com/lib/pq"

	"github.com/mycok/docStream/docstore/store"
)

var (
	insertDocQuery = `
					INSERT INTO documents
					(title, content, author, type, search_vector, created_at)
					VALUES ($1, $2, $3, $4, $5, $6)
					RETURNING id, created_at
					`
	findDocQuery = `
					SELECT id, title, content, author, type, search_vector, created_at
					FROM documents WHERE id=$1
					`

	// An empty filter value matches all rows.
	countDocsQuery = `
					SELECT COUNT(*) FROM documents
					WHERE ($1 = '' OR author = $1) AND ($2 = '' OR type = $2)
					`
	listDocsQuery = `
					SELECT id, title, author, type FROM documents
					WHERE ($1 = '' OR author = $1) AND ($2 = '' OR type = $2)
					ORDER BY %s %s
					LIMIT $3 OFFSET $4
					`
)

// Maps sortable document fields to their column names.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"author":    "author",
	"type":      "type",
	"createdAt": "created_at",
}

// Static and compile-time check to ensure PostgresStore implements
// the store.Store interface.
var _ store.Store = (*PostgresStore)(nil)

// PostgresStore implements a persistent document store backed by a
// postgres instance.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a PostgresStore instance.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &PostgresStore{db}, nil
}

// Close terminates the connection to the postgres instance.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Save persists a new document row and assigns its unique identifier.
// The id column is the only store-generated value; the intake timestamp
// is persisted exactly as provided. Saving the same logical document
// twice intentionally produces two independent rows.
func (s *PostgresStore) Save(doc *store.Document) error {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := s.db.QueryRowContext(
		ctx, insertDocQuery,
		doc.Title, doc.Content, doc.Author, doc.Type,
		doc.SearchVector, doc.CreatedAt.UTC(),
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	// The scanned timestamp may carry the session location.
	doc.CreatedAt = doc.CreatedAt.UTC()

	return nil
}

// Find performs a document lookup by id.
func (s *PostgresStore) Find(id uuid.UUID) (*store.Document, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	doc := new(store.Document)

	err := s.db.QueryRowContext(ctx, findDocQuery, id).Scan(
		&doc.ID, &doc.Title, &doc.Content, &doc.Author, &doc.Type,
		&doc.SearchVector, &doc.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("find document: %w", store.ErrNotFound)
		}

		return nil, fmt.Errorf("find document: %w", err)
	}

	// Re-assign this field to a .UTC time value to cater for cases
	// where the scanned timestamp carries a non-UTC location.
	doc.CreatedAt = doc.CreatedAt.UTC()

	return doc, nil
}

// List returns a single page of document summaries that match the
// provided filter, pagination and sort options.
func (s *PostgresStore) List(opts store.ListOptions) (*store.SummaryPage, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var total uint64

	err := s.db.QueryRowContext(ctx, countDocsQuery, opts.Author, opts.Type).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	direction := "ASC"
	if opts.Sort.Descending {
		direction = "DESC"
	}

	// The sort column is interpolated rather than bound, which is safe
	// since Validate restricts the field to the sortColumns whitelist.
	query := fmt.Sprintf(listDocsQuery, sortColumns[opts.Sort.Field], direction)

	rows, err := s.db.QueryContext(
		ctx, query, opts.Author, opts.Type, opts.Size, opts.Page*opts.Size,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	page := &store.SummaryPage{
		Page:  opts.Page,
		Size:  opts.Size,
		Total: total,
	}

	for rows.Next() {
		var summary store.Summary
		if err := rows.Scan(
			&summary.ID, &summary.Title, &summary.Author, &summary.Type,
		); err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}

		page.Summaries = append(page.Summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return page, nil
}
