package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mycok/docStream/docstore/store"
)

// Static and compile-time check to ensure InMemoryStore implements
// the store.Store interface.
var _ store.Store = (*InMemoryStore)(nil)

// InMemoryStore implements an in-memory document store intended for
// local development and tests.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*store.Document
	// Insertion-ordered ids used as a stable tie-breaker for listings.
	ids []uuid.UUID
}

// NewInMemoryStore returns an InMemoryStore instance.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		docs: make(map[uuid.UUID]*store.Document),
	}
}

// Save persists a new document row and assigns its unique identifier.
// Saving the same logical document twice intentionally produces two
// independent rows.
func (s *InMemoryStore) Save(doc *store.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.ID = uuid.New()
	doc.CreatedAt = doc.CreatedAt.UTC()

	s.docs[doc.ID] = copyDoc(doc)
	s.ids = append(s.ids, doc.ID)

	return nil
}

// Find performs a document lookup by id.
func (s *InMemoryStore) Find(id uuid.UUID) (*store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if doc, exists := s.docs[id]; exists {
		return copyDoc(doc), nil
	}

	return nil, fmt.Errorf("find document: %w", store.ErrNotFound)
}

// List returns a single page of document summaries that match the
// provided filter, pagination and sort options.
func (s *InMemoryStore) List(opts store.ListOptions) (*store.SummaryPage, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	s.mu.RLock()

	var matched []*store.Document
	for _, id := range s.ids {
		doc := s.docs[id]
		if opts.Author != "" && doc.Author != opts.Author {
			continue
		}
		if opts.Type != "" && doc.Type != opts.Type {
			continue
		}

		matched = append(matched, doc)
	}

	s.mu.RUnlock()

	sortDocs(matched, opts.Sort)

	page := &store.SummaryPage{
		Page:  opts.Page,
		Size:  opts.Size,
		Total: uint64(len(matched)),
	}

	from := opts.Page * opts.Size
	if from >= len(matched) {
		return page, nil
	}

	to := from + opts.Size
	if to > len(matched) {
		to = len(matched)
	}

	for _, doc := range matched[from:to] {
		page.Summaries = append(page.Summaries, store.Summary{
			ID:     doc.ID,
			Title:  doc.Title,
			Author: doc.Author,
			Type:   doc.Type,
		})
	}

	return page, nil
}

func sortDocs(docs []*store.Document, order store.SortOrder) {
	less := func(a, b *store.Document) bool {
		switch order.Field {
		case "id":
			return a.ID.String() < b.ID.String()
		case "title":
			return a.Title < b.Title
		case "author":
			return a.Author < b.Author
		case "type":
			return a.Type < b.Type
		default: // createdAt
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if order.Descending {
			return less(docs[j], docs[i])
		}

		return less(docs[i], docs[j])
	})
}

func copyDoc(doc *store.Document) *store.Document {
	dCopy := new(store.Document)
	*dCopy = *doc

	return dCopy
}
