package index

import (
	"time"

	"github.com/google/uuid"
)

// Document defines an uploaded document whose extracted content has
// been successfully indexed.
//
// The index keeps its own identifier space: ID is never the id assigned
// by the document store. The two views are joined only by content
// equivalence.
type Document struct {
	// ID of the index entry. Assigned by the indexing step.
	ID uuid.UUID

	// Title of the document.
	Title string

	// Author and Type classification fields carried over from the
	// stored document.
	Author string
	Type   string

	// Extracted plain-text body of the document.
	Content string

	// Time the document was indexed. This is deliberately the indexing
	// time rather than the intake timestamp carried by the store row.
	IndexedAt time.Time
}
