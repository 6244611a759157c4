package storetest

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/mycok/docStream/docstore/store"
)

// BaseSuite defines a set of re-usable document store tests that can be
// executed against any concrete type that implements the store.Store
// interface.
type BaseSuite struct {
	s store.Store
}

// SetStore configures the test-suite to run all tests against an
// instance of store.Store.
func (s *BaseSuite) SetStore(docStore store.Store) {
	s.s = docStore
}

// TestSaveAssignsID verifies that the store assigns an id on first
// persistence and preserves the intake timestamp as-is.
func (s *BaseSuite) TestSaveAssignsID(c *check.C) {
	createdAt := time.Now().Truncate(time.Millisecond).UTC()

	doc := &store.Document{
		Title:        "annual-report.pdf",
		Content:      "quarterly revenue grew",
		Author:       "Jane",
		Type:         "PDF",
		SearchVector: "quarterly revenue grew",
		CreatedAt:    createdAt,
	}

	err := s.s.Save(doc)
	c.Assert(err, check.IsNil, check.Commentf("++++Store save++++: %v", err))
	c.Assert(doc.ID, check.Not(check.Equals), uuid.Nil)

	// The intake timestamp must never be re-derived by the store.
	c.Assert(doc.CreatedAt, check.Equals, createdAt)
}

// TestSaveAllowsDuplicateRows verifies that re-saving the same logical
// document produces a second, independently identified row. Redelivered
// queue records depend on this behavior.
func (s *BaseSuite) TestSaveAllowsDuplicateRows(c *check.C) {
	doc := &store.Document{
		Title:     "notes.txt",
		Content:   "hello world",
		CreatedAt: time.Now().Truncate(time.Millisecond).UTC(),
	}

	err := s.s.Save(doc)
	c.Assert(err, check.IsNil)
	firstID := doc.ID

	dup := *doc
	dup.ID = uuid.Nil

	err = s.s.Save(&dup)
	c.Assert(err, check.IsNil)
	c.Assert(dup.ID, check.Not(check.Equals), uuid.Nil)
	c.Assert(dup.ID, check.Not(check.Equals), firstID)
}

// TestFind verifies document lookups by id.
func (s *BaseSuite) TestFind(c *check.C) {
	doc := &store.Document{
		Title:        "guide.html",
		Content:      "installation guide",
		Author:       "Ops",
		Type:         "HTML",
		SearchVector: "installation guide",
		CreatedAt:    time.Now().Truncate(time.Millisecond).UTC(),
	}

	err := s.s.Save(doc)
	c.Assert(err, check.IsNil)

	got, err := s.s.Find(doc.ID)
	c.Assert(err, check.IsNil, check.Commentf("++++Store find++++: %v", err))
	c.Assert(got, check.DeepEquals, doc)

	_, err = s.s.Find(uuid.New())
	c.Assert(errors.Is(err, store.ErrNotFound), check.Equals, true)
}

// TestListFiltering verifies the optional author / type equality filters.
func (s *BaseSuite) TestListFiltering(c *check.C) {
	seedTime := time.Now().Truncate(time.Millisecond).UTC()

	seed := []struct {
		author string
		kind   string
	}{
		{"John", "PDF"},
		{"John", "TXT"},
		{"Mary", "PDF"},
	}

	for i, entry := range seed {
		err := s.s.Save(&store.Document{
			Title:     fmt.Sprintf("doc-%d", i),
			Content:   "body",
			Author:    entry.author,
			Type:      entry.kind,
			CreatedAt: seedTime.Add(time.Duration(i) * time.Millisecond),
		})
		c.Assert(err, check.IsNil)
	}

	opts := store.ListOptions{
		Author: "John",
		Type:   "PDF",
		Page:   0,
		Size:   10,
		Sort:   store.SortOrder{Field: "createdAt", Descending: true},
	}

	page, err := s.s.List(opts)
	c.Assert(err, check.IsNil)
	c.Assert(page.Total, check.Equals, uint64(1))
	c.Assert(page.Summaries, check.HasLen, 1)
	c.Assert(page.Summaries[0].Author, check.Equals, "John")
	c.Assert(page.Summaries[0].Type, check.Equals, "PDF")

	// An absent filter matches all rows.
	opts.Author = ""
	opts.Type = ""

	page, err = s.s.List(opts)
	c.Assert(err, check.IsNil)
	c.Assert(page.Total, check.Equals, uint64(3))
}

// TestListPaginationAndSort verifies offset pagination and sort order.
func (s *BaseSuite) TestListPaginationAndSort(c *check.C) {
	seedTime := time.Now().Truncate(time.Millisecond).UTC()

	numOfDocs := 5
	for i := 0; i < numOfDocs; i++ {
		err := s.s.Save(&store.Document{
			Title:     fmt.Sprintf("doc-%d", i),
			Content:   "body",
			Author:    "Seeder",
			CreatedAt: seedTime.Add(time.Duration(i) * time.Millisecond),
		})
		c.Assert(err, check.IsNil)
	}

	opts := store.ListOptions{
		Author: "Seeder",
		Page:   0,
		Size:   2,
		Sort:   store.SortOrder{Field: "createdAt", Descending: true},
	}

	page, err := s.s.List(opts)
	c.Assert(err, check.IsNil)
	c.Assert(page.Total, check.Equals, uint64(numOfDocs))
	c.Assert(page.Summaries, check.HasLen, 2)
	// Most recent document first when sorting by createdAt desc.
	c.Assert(page.Summaries[0].Title, check.Equals, "doc-4")
	c.Assert(page.Summaries[1].Title, check.Equals, "doc-3")

	// Last page holds the remainder.
	opts.Page = 2

	page, err = s.s.List(opts)
	c.Assert(err, check.IsNil)
	c.Assert(page.Summaries, check.HasLen, 1)
	c.Assert(page.Summaries[0].Title, check.Equals, "doc-0")
}

// TestListRejectsInvalidPagination verifies that negative page numbers
// and non-positive page sizes are rejected.
func (s *BaseSuite) TestListRejectsInvalidPagination(c *check.C) {
	opts := store.ListOptions{
		Page: -1,
		Size: 10,
		Sort: store.SortOrder{Field: "createdAt", Descending: true},
	}

	_, err := s.s.List(opts)
	c.Assert(errors.Is(err, store.ErrInvalidPage), check.Equals, true)

	opts.Page = 0
	opts.Size = 0

	_, err = s.s.List(opts)
	c.Assert(errors.Is(err, store.ErrInvalidPage), check.Equals, true)
}
