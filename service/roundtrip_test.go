package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	check "gopkg.in/check.v1"

	cachemem "github.com/mycok/docStream/cache/memory"
	"github.com/mycok/docStream/docstore/store"
	storemem "github.com/mycok/docStream/docstore/store/memory"
	queuemem "github.com/mycok/docStream/queue/memory"
	"github.com/mycok/docStream/service"
	"github.com/mycok/docStream/service/ingestor"
	"github.com/mycok/docStream/service/intake"
	"github.com/mycok/docStream/service/query"
	indexmem "github.com/mycok/docStream/textindexer/store/memory"
)

var _ = check.Suite(new(RoundTripTestSuite))

// RoundTripTestSuite exercises the full pipeline against the in-memory
// backends: a submission travels through intake, the queue channel and
// the ingestor until it becomes visible to the query service.
type RoundTripTestSuite struct{}

func (s *RoundTripTestSuite) TestSubmissionBecomesSearchable(c *check.C) {
	docStore := storemem.NewInMemoryStore()

	docIndex, err := indexmem.NewInMemoryIndex()
	c.Assert(err, check.IsNil)
	defer func() { c.Assert(docIndex.Close(), check.IsNil) }()

	docCache, err := cachemem.NewLRUCache(16)
	c.Assert(err, check.IsNil)

	docQueue := queuemem.NewInMemoryQueue(3, nil)

	intakeSvc, err := intake.New(intake.Config{
		QueueAPI:     docQueue,
		NumOfWorkers: 2,
		TempDir:      c.MkDir(),
	})
	c.Assert(err, check.IsNil)

	ingestorSvc, err := ingestor.New(ingestor.Config{
		QueueAPI: docQueue,
		StoreAPI: docStore,
		IndexAPI: docIndex,
		Cache:    docCache,
	})
	c.Assert(err, check.IsNil)

	querySvc, err := query.New(query.Config{
		StoreAPI: docStore,
		IndexAPI: docIndex,
		Cache:    docCache,
	})
	c.Assert(err, check.IsNil)

	// Polling happens through a cache-less service: the cached one would
	// memoize the empty result list of the first probe.
	pollSvc, err := query.New(query.Config{StoreAPI: docStore, IndexAPI: docIndex})
	c.Assert(err, check.IsNil)

	ctx, cancelFn := context.WithCancel(context.TODO())
	defer cancelFn()

	groupDone := make(chan error, 1)
	go func() {
		groupDone <- service.Group{intakeSvc, ingestorSvc}.Execute(ctx)
	}()

	err = intakeSvc.Submit(
		[]byte("hello world"), "f.txt", `{"author": "A", "type": "T"}`,
	)
	c.Assert(err, check.IsNil)

	// Submission acceptance only promises eventual visibility; poll the
	// query surface until the document shows up.
	var docID uuid.UUID
	deadline := time.Now().Add(5 * time.Second)
	for {
		results, err := pollSvc.SearchDocuments("hello")
		c.Assert(err, check.IsNil)
		if len(results) == 1 {
			c.Assert(results[0].Title, check.Equals, "f.txt")
			c.Assert(results[0].Author, check.Equals, "A")
			c.Assert(results[0].Type, check.Equals, "T")
			c.Assert(results[0].Content, check.Equals, "hello world")

			break
		}

		if time.Now().After(deadline) {
			c.Fatal("timed out waiting for the submission to become searchable")
		}

		time.Sleep(10 * time.Millisecond)
	}

	page, err := querySvc.ListDocuments("A", "T", 0, 10, "createdAt,desc")
	c.Assert(err, check.IsNil)
	c.Assert(page.Total, check.Equals, uint64(1))
	c.Assert(page.Summaries, check.HasLen, 1)
	c.Assert(page.Summaries[0].Title, check.Equals, "f.txt")
	docID = page.Summaries[0].ID

	// Point lookups resolve through the cache the ingestor warmed.
	doc, err := querySvc.GetDocument(docID)
	c.Assert(err, check.IsNil)
	c.Assert(doc.Content, check.Equals, "hello world")
	c.Assert(doc.CreatedAt, check.Equals, doc.CreatedAt.Truncate(time.Millisecond))

	_, err = querySvc.GetDocument(uuid.New())
	c.Assert(errors.Is(err, store.ErrNotFound), check.Equals, true)

	cancelFn()
	c.Assert(<-groupDone, check.IsNil)
}
