package indextest

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/mycok/docStream/textindexer/index"
)

// BaseSuite defines a set of re-usable index related tests that can
// be executed against any concrete type that implements the
// index.Indexer interface.
type BaseSuite struct {
	idx index.Indexer
}

// SetIndex sets BaseSuite's index field.
func (s *BaseSuite) SetIndex(index index.Indexer) {
	s.idx = index
}

// TestIndexingDocument verifies the indexing logic for new documents.
func (s *BaseSuite) TestIndexingDocument(c *check.C) {
	doc := &index.Document{
		ID:        uuid.New(),
		Title:     "user-manual.pdf",
		Author:    "Jane",
		Type:      "PDF",
		Content:   "This should be the body text of the document",
		IndexedAt: time.Now().UTC(),
	}

	err := s.idx.Index(doc)
	c.Assert(
		err, check.IsNil,
		check.Commentf("++++Index insert++++: %v", err),
	)

	// Query the index to verify the insert.
	d, err := s.idx.FindByID(doc.ID)
	c.Assert(err, check.IsNil)
	c.Assert(d, check.DeepEquals, doc)

	// Insert a document without an ID.
	docWithoutID := &index.Document{
		Title: "untitled",
	}

	err = s.idx.Index(docWithoutID)
	c.Assert(
		errors.Is(err, index.ErrMissingDocID), check.Equals, true,
		check.Commentf("++++Index insert++++: %v", err),
	)
}

// TestFindMissingDocument verifies the lookup logic for documents that
// were never indexed.
func (s *BaseSuite) TestFindMissingDocument(c *check.C) {
	_, err := s.idx.FindByID(uuid.New())
	c.Assert(errors.Is(err, index.ErrNotFound), check.Equals, true)
}

// TestKeywordSearch verifies that keyword queries match document
// content case-insensitively.
func (s *BaseSuite) TestKeywordSearch(c *check.C) {
	docs := []*index.Document{
		{
			ID:        uuid.New(),
			Title:     "release-notes.txt",
			Content:   "The keyword BANANA appears in this document",
			IndexedAt: time.Now().UTC(),
		},
		{
			ID:        uuid.New(),
			Title:     "groceries.txt",
			Content:   "banana bread recipe and shopping list",
			IndexedAt: time.Now().UTC(),
		},
		{
			ID:        uuid.New(),
			Title:     "unrelated.txt",
			Content:   "nothing relevant in here",
			IndexedAt: time.Now().UTC(),
		},
	}

	for _, doc := range docs {
		c.Assert(s.idx.Index(doc), check.IsNil)
	}

	it, err := s.idx.Search(index.Query{Expression: "banana"})
	c.Assert(err, check.IsNil)

	matched := map[uuid.UUID]bool{}
	for it.Next() {
		matched[it.Document().ID] = true
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)

	c.Assert(matched, check.HasLen, 2)
	c.Assert(matched[docs[0].ID], check.Equals, true)
	c.Assert(matched[docs[1].ID], check.Equals, true)
}

// TestSearchWithNoResults verifies iterator behavior for queries that
// match no documents.
func (s *BaseSuite) TestSearchWithNoResults(c *check.C) {
	it, err := s.idx.Search(index.Query{Expression: "aardvark"})
	c.Assert(err, check.IsNil)

	c.Assert(it.Next(), check.Equals, false)
	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.TotalCount(), check.Equals, uint64(0))
	c.Assert(it.Close(), check.IsNil)
}

// TestIterationAcrossResultBatches verifies that iterators transparently
// fetch additional result batches from the backing index.
func (s *BaseSuite) TestIterationAcrossResultBatches(c *check.C) {
	numOfDocs := 25
	for i := 0; i < numOfDocs; i++ {
		err := s.idx.Index(&index.Document{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("chapter-%d.txt", i),
			Content:   "umbrella corporation annual summary",
			IndexedAt: time.Now().UTC(),
		})
		c.Assert(err, check.IsNil)
	}

	it, err := s.idx.Search(index.Query{Expression: "umbrella"})
	c.Assert(err, check.IsNil)

	var seen int
	for it.Next() {
		seen++
	}

	c.Assert(it.Error(), check.IsNil)
	c.Assert(it.Close(), check.IsNil)
	c.Assert(seen, check.Equals, numOfDocs)
	c.Assert(it.TotalCount(), check.Equals, uint64(numOfDocs))
}
