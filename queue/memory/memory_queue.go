package memory

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/queue"
)

// Number of delivery attempts per record before it is routed to the
// topic's dead-letter list.
const defaultMaxDeliveries = 3

// Static and compile-time check to ensure InMemoryQueue implements
// the queue.Queue interface.
var _ queue.Queue = (*InMemoryQueue)(nil)

// envelope wraps a queued record together with its delivery count.
type envelope struct {
	record     *store.Document
	deliveries int
}

type topicState struct {
	pending    []*envelope
	deadLetter []*store.Document
}

// InMemoryQueue is a queue.Queue implementation that keeps all topics
// in memory. Records can be published and consumed concurrently.
// Failed deliveries are re-queued until the delivery limit is reached,
// after which the record is moved to the topic's dead-letter list.
type InMemoryQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	topics map[string]*topicState
	closed bool

	maxDeliveries int
	logger        *logrus.Entry
}

// NewInMemoryQueue creates a new in-memory queue instance. A
// non-positive maxDeliveries value selects the default delivery limit
// and a nil logger discards its output.
func NewInMemoryQueue(maxDeliveries int, logger *logrus.Entry) *InMemoryQueue {
	if maxDeliveries <= 0 {
		maxDeliveries = defaultMaxDeliveries
	}

	if logger == nil {
		logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	q := &InMemoryQueue{
		topics:        make(map[string]*topicState),
		maxDeliveries: maxDeliveries,
		logger:        logger,
	}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// Publish appends a record to the specified topic.
func (q *InMemoryQueue) Publish(topic string, record *store.Document) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return queue.ErrClosed
	}

	state := q.topic(topic)
	state.pending = append(state.pending, &envelope{record: record})

	// Wake up any consumers blocked on an empty topic.
	q.cond.Broadcast()

	return nil
}

// Consume delivers records from the specified topic to the handler until
// the provided context gets cancelled. Each handler error counts as a
// failed delivery attempt; records that exhaust their delivery budget
// are moved to the topic's dead-letter list instead of being retried
// forever.
func (q *InMemoryQueue) Consume(
	ctx context.Context, topic string, handler queue.Handler,
) error {

	// Wake up blocked consumers once the context gets cancelled so they
	// can observe the cancellation and return.
	stopWatcher := context.AfterFunc(ctx, func() {
		q.cond.Broadcast()
	})
	defer stopWatcher()

	for {
		env, err := q.dequeue(ctx, topic)
		if err != nil {
			if err == context.Canceled || err == context.DeadlineExceeded {
				return nil
			}

			return err
		}

		env.deliveries++

		if handlerErr := handler(env.record); handlerErr != nil {
			q.redeliver(topic, env)
		}
	}
}

// Close releases all resources consumed by the queue. Pending records
// are discarded.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.topics = make(map[string]*topicState)
	q.cond.Broadcast()

	return nil
}

// PendingCount returns the number of unconsumed records on a topic.
func (q *InMemoryQueue) PendingCount(topic string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.topic(topic).pending)
}

// DeadLetters returns the records that exhausted their delivery budget
// on the specified topic.
func (q *InMemoryQueue) DeadLetters(topic string) []*store.Document {
	q.mu.Lock()
	defer q.mu.Unlock()

	state := q.topic(topic)
	out := make([]*store.Document, len(state.deadLetter))
	copy(out, state.deadLetter)

	return out
}

// dequeue blocks until a record is available on the topic, the context
// gets cancelled or the queue is closed.
func (q *InMemoryQueue) dequeue(
	ctx context.Context, topic string,
) (*envelope, error) {

	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if q.closed {
			return nil, queue.ErrClosed
		}

		state := q.topic(topic)
		if len(state.pending) != 0 {
			env := state.pending[0]
			state.pending = state.pending[1:]

			return env, nil
		}

		q.cond.Wait()
	}
}

// redeliver re-queues a nacked record or routes it to the dead-letter
// list once its delivery budget is exhausted.
func (q *InMemoryQueue) redeliver(topic string, env *envelope) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	state := q.topic(topic)
	if env.deliveries >= q.maxDeliveries {
		state.deadLetter = append(state.deadLetter, env.record)

		// Nacked records may be nil, they dead-letter like any other.
		title := ""
		if env.record != nil {
			title = env.record.Title
		}

		q.logger.WithFields(logrus.Fields{
			"topic":      topic,
			"title":      title,
			"deliveries": env.deliveries,
		}).Warn("record routed to dead-letter list")

		return
	}

	state.pending = append(state.pending, env)
	q.cond.Broadcast()
}

// topic returns the state for a topic, creating it on first use.
// Callers must hold q.mu.
func (q *InMemoryQueue) topic(name string) *topicState {
	state, exists := q.topics[name]
	if !exists {
		state = &topicState{}
		q.topics[name] = state
	}

	return state
}
