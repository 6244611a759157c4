/*
	store package defines the model and behavior of the canonical
	document data stores that serve as the system of record for
	ingested documents.
*/

package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store should be implemented by document data stores / types.
type Store interface {
	// Save persists a new document row and assigns its unique
	// identifier. The provided document is updated in-place with the
	// stored row's values.
	Save(doc *Document) error

	// Find performs a document lookup by id.
	Find(id uuid.UUID) (*Document, error)

	// List returns a single page of document summaries that match the
	// provided filter, pagination and sort options.
	List(opts ListOptions) (*SummaryPage, error)
}

// Document represents a single ingested document row. it serves as a
// model / schema object and as the record type that flows through the
// ingestion pipeline.
type Document struct {
	// ID of the document. Assigned by the store on first persistence
	// and zero before that.
	ID uuid.UUID

	// Title / display name of the document. Defaults to the original
	// upload filename.
	Title string

	// Content holds the extracted plain text of the document. May be
	// empty but never omitted.
	Content string

	// Author and Type are free-form classification fields supplied
	// through the upload metadata.
	Author string
	Type   string

	// SearchVector is a derivative of Content reserved for text-search
	// tuning. it is kept equal to Content.
	SearchVector string

	// CreatedAt is assigned once at intake time and never re-derived
	// afterwards.
	CreatedAt time.Time
}

// Summary is a content-less projection of a document row used for
// paginated listings.
type Summary struct {
	ID     uuid.UUID
	Title  string
	Author string
	Type   string
}

// ListOptions describes filter, pagination and sort parameters for a
// List call.
type ListOptions struct {
	// Optional equality filters. An empty value matches all rows.
	Author string
	Type   string

	// Zero-based page number and page size.
	Page int
	Size int

	// Sort order for the result set.
	Sort SortOrder
}

// Validate checks the pagination parameters and the sort field of the
// options. Store implementations call it before running a listing.
func (opts ListOptions) Validate() error {
	if opts.Page < 0 || opts.Size <= 0 {
		return fmt.Errorf(
			"list options: page %d, size %d: %w",
			opts.Page, opts.Size, ErrInvalidPage,
		)
	}

	if _, sortable := sortableFields[opts.Sort.Field]; !sortable {
		return fmt.Errorf(
			"list options: unknown sort field %q: %w",
			opts.Sort.Field, ErrInvalidSort,
		)
	}

	return nil
}

// SummaryPage holds a single page of document summaries together with
// the total number of rows that matched the filter.
type SummaryPage struct {
	Summaries []Summary
	Page      int
	Size      int
	Total     uint64
}
