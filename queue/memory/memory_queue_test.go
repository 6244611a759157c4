package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	check "gopkg.in/check.v1"

	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/queue"
)

// Initialize and register an instance of the inMemoryQueueTestSuite to
// be executed by check testing package.
var _ = check.Suite(new(inMemoryQueueTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type inMemoryQueueTestSuite struct {
	q       *InMemoryQueue
	logHook *logrustest.Hook
}

func (s *inMemoryQueueTestSuite) SetUpTest(c *check.C) {
	logger, hook := logrustest.NewNullLogger()
	s.logHook = hook
	s.q = NewInMemoryQueue(3, logrus.NewEntry(logger))
}

func (s *inMemoryQueueTestSuite) TearDownTest(c *check.C) {
	c.Assert(s.q.Close(), check.IsNil)
}

func (s *inMemoryQueueTestSuite) TestPublishAndConsume(c *check.C) {
	records := []*store.Document{
		{Title: "first.txt", Content: "first body"},
		{Title: "second.txt", Content: "second body"},
	}

	for _, record := range records {
		c.Assert(s.q.Publish(queue.DocumentTopic, record), check.IsNil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		consumed []*store.Document
		done     = make(chan struct{})
	)

	go func() {
		defer close(done)

		_ = s.q.Consume(ctx, queue.DocumentTopic, func(record *store.Document) error {
			mu.Lock()
			consumed = append(consumed, record)
			seen := len(consumed)
			mu.Unlock()

			if seen == len(records) {
				cancel()
			}

			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		c.Fatal("consumer did not drain the topic in time")
	}

	c.Assert(consumed, check.HasLen, len(records))
	c.Assert(s.q.PendingCount(queue.DocumentTopic), check.Equals, 0)
}

func (s *inMemoryQueueTestSuite) TestNackTriggersRedelivery(c *check.C) {
	record := &store.Document{Title: "flaky.txt", Content: "body"}
	c.Assert(s.q.Publish(queue.DocumentTopic, record), check.IsNil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		deliveries int
		done       = make(chan struct{})
	)

	go func() {
		defer close(done)

		_ = s.q.Consume(ctx, queue.DocumentTopic, func(record *store.Document) error {
			deliveries++
			if deliveries == 1 {
				// Nack the first delivery.
				return context.DeadlineExceeded
			}

			cancel()

			return nil
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		c.Fatal("record was not redelivered in time")
	}

	c.Assert(deliveries, check.Equals, 2)
	c.Assert(s.q.DeadLetters(queue.DocumentTopic), check.HasLen, 0)
}

func (s *inMemoryQueueTestSuite) TestDeadLetterAfterDeliveryBudget(c *check.C) {
	record := &store.Document{Title: "poison.txt", Content: "body"}
	c.Assert(s.q.Publish(queue.DocumentTopic, record), check.IsNil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		deliveries int
		done       = make(chan struct{})
	)

	go func() {
		defer close(done)

		_ = s.q.Consume(ctx, queue.DocumentTopic, func(record *store.Document) error {
			deliveries++
			if deliveries == 3 {
				// The third nack exhausts the delivery budget. Cancel
				// once the broker has had a chance to route the record
				// to the dead-letter list.
				defer cancel()
			}

			return context.DeadlineExceeded
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		c.Fatal("record was not dead-lettered in time")
	}

	c.Assert(deliveries, check.Equals, 3)
	c.Assert(s.q.DeadLetters(queue.DocumentTopic), check.HasLen, 1)
	c.Assert(s.q.PendingCount(queue.DocumentTopic), check.Equals, 0)

	// Dead-letter routing is operator-visible through the log.
	var logged bool
	for _, entry := range s.logHook.AllEntries() {
		if entry.Level == logrus.WarnLevel &&
			entry.Data["title"] == "poison.txt" &&
			entry.Data["deliveries"] == 3 {
			logged = true
		}
	}
	c.Assert(logged, check.Equals, true, check.Commentf("dead-letter routing was not logged"))
}

func (s *inMemoryQueueTestSuite) TestConcurrentConsumers(c *check.C) {
	numOfRecords := 20
	for i := 0; i < numOfRecords; i++ {
		c.Assert(
			s.q.Publish(queue.DocumentTopic, &store.Document{Content: "body"}),
			check.IsNil,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		consumed int
		wg       sync.WaitGroup
	)

	handler := func(record *store.Document) error {
		mu.Lock()
		consumed++
		if consumed == numOfRecords {
			cancel()
		}
		mu.Unlock()

		return nil
	}

	for i := 0; i < 2; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = s.q.Consume(ctx, queue.DocumentTopic, handler)
		}()
	}

	waitChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitChan)
	}()

	select {
	case <-waitChan:
	case <-time.After(5 * time.Second):
		c.Fatal("consumers did not drain the topic in time")
	}

	c.Assert(consumed, check.Equals, numOfRecords)
}

func (s *inMemoryQueueTestSuite) TestPublishAfterClose(c *check.C) {
	c.Assert(s.q.Close(), check.IsNil)

	err := s.q.Publish(queue.DocumentTopic, &store.Document{})
	c.Assert(err, check.Equals, queue.ErrClosed)
}
