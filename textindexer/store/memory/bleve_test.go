package memory

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	"github.com/mycok/docStream/textindexer/index"
	"github.com/mycok/docStream/textindexer/index/indextest"
)

// Initialize and register an instance of the inMemoryIndexTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(inMemoryIndexTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

// inMemoryIndexTestSuite embeds and runs the BaseSuite tests methods.
type inMemoryIndexTestSuite struct {
	idx *InMemoryIndex
	indextest.BaseSuite
}

// SetUpTest runs before each test in the test suite. it provides each
// test with a fresh index instance.
func (s *inMemoryIndexTestSuite) SetUpTest(c *check.C) {
	idx, err := NewInMemoryIndex()
	c.Assert(err, check.IsNil)

	s.SetIndex(idx)
	s.idx = idx
}

// TearDownTest runs after each test in the test suite and releases
// resources allocated to the bleve index.
func (s *inMemoryIndexTestSuite) TearDownTest(c *check.C) {
	if s.idx != nil {
		c.Assert(s.idx.Close(), check.IsNil)
	}
}

// TestConcurrentIndexAndSearchDrain verifies that draining search
// result iterators while another goroutine keeps indexing is safe: the
// shared index is written by the ingestion side and read by the query
// side at the same time.
func (s *inMemoryIndexTestSuite) TestConcurrentIndexAndSearchDrain(c *check.C) {
	numOfDocs := 50

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)

		for i := 0; i < numOfDocs; i++ {
			err := s.idx.Index(&index.Document{
				ID:        uuid.New(),
				Title:     fmt.Sprintf("doc-%d", i),
				Content:   fmt.Sprintf("shared keyword payload %d", i),
				IndexedAt: time.Now().UTC(),
			})
			c.Assert(err, check.IsNil)
		}
	}()

	// Keep draining result sets while the writer is still indexing. The
	// final drain runs after the writer has finished and must observe
	// every indexed document.
	var drained int
	for done := false; !done; {
		select {
		case <-writerDone:
			done = true
		default:
		}

		it, err := s.idx.Search(index.Query{Expression: "keyword"})
		c.Assert(err, check.IsNil)

		drained = 0
		for it.Next() {
			c.Assert(it.Document(), check.Not(check.IsNil))
			drained++
		}

		c.Assert(it.Error(), check.IsNil)
		c.Assert(it.Close(), check.IsNil)
	}

	c.Assert(drained, check.Equals, numOfDocs)
}
