/*
	queue package defines the message channel contract that decouples
	document intake from persistence and indexing.

	Delivery is at-least-once: a record may be re-delivered after a
	consumer fails before acknowledging it. No ordering is guaranteed
	across records and consumers must therefore process each record
	independently of its siblings.
*/

package queue

import (
	"context"
	"errors"

	"github.com/mycok/docStream/docstore/store"
)

// DocumentTopic is the logical topic name that carries fully-extracted
// document records from intake to the ingestion consumer.
const DocumentTopic = "documentQueue"

var (
	// ErrClosed is returned when publishing to or consuming from a
	// queue that has been closed.
	ErrClosed = errors.New("queue closed")
)

// Handler processes a single delivered record. A nil return value
// acknowledges the record; a non-nil value triggers the broker's
// redelivery policy.
type Handler func(record *store.Document) error

// Queue should be implemented by types that can serve as a durable
// message channel between the intake and consumer sides of the
// ingestion pipeline.
type Queue interface {
	// Publish appends a record to the specified topic. A publish
	// failure means the record never reached the channel and must be
	// surfaced to the caller rather than swallowed.
	Publish(topic string, record *store.Document) error

	// Consume delivers records from the specified topic to the handler
	// until the provided context gets cancelled. It is safe to run
	// multiple consumers concurrently against the same topic.
	Consume(ctx context.Context, topic string, handler Handler) error

	// Close releases all resources consumed by the queue.
	Close() error
}
