package index

import "github.com/google/uuid"

// Indexer should be implemented by objects that can index and search
// documents processed by the ingestion pipeline.
type Indexer interface {
	// Index adds a new document entry to the index.
	Index(doc *Document) error

	// FindByID looks up an index entry by its own id.
	FindByID(id uuid.UUID) (*Document, error)

	// Search performs a look up based on query and returns a result
	// iterator if successful or an error otherwise.
	Search(q Query) (Iterator, error)
}

// Iterator should implemented by objects that can paginate search results.
type Iterator interface {
	// Next loads the next item, returns false when no more items
	// are available or when an error occurs.
	Next() bool

	// Error returns the last error encountered by the iterator.
	Error() error

	// Close releases any resources allocated to the iterator.
	Close() error

	// Document returns the current document from the result set.
	Document() *Document

	// TotalCount returns the approximated total number of search results.
	TotalCount() uint64
}

// Query defines properties for a keyword search query.
type Query struct {
	// Keyword expression matched case-insensitively against document
	// titles and content.
	Expression string

	// Determines the cursor value for the indexer / pagination.
	Offset uint64
}
