package ingestor

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/mycok/docStream/cache"
	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/queue"
	"github.com/mycok/docStream/textindexer/index"
)

// QueueAPI defines a minimum set of API methods for consuming document
// records from the queue channel.
type QueueAPI interface {
	// Consume delivers records from the specified topic to the handler
	// until the provided context gets cancelled.
	Consume(ctx context.Context, topic string, handler queue.Handler) error
}

// StoreAPI defines a minimum set of API methods for persisting document
// records to the system-of-record store.
type StoreAPI interface {
	// Save persists a new document row and assigns its unique
	// identifier.
	Save(doc *store.Document) error
}

// IndexAPI defines a minimum set of API methods for projecting stored
// documents into the search index.
type IndexAPI interface {
	// Index adds a new document entry to the index.
	Index(doc *index.Document) error
}

// Config defines configurations for the document ingestion consumer
// service.
type Config struct {
	// API for consuming document records from the queue channel.
	QueueAPI QueueAPI

	// API for interacting with the system-of-record document store.
	StoreAPI StoreAPI

	// API for communicating with the search index.
	IndexAPI IndexAPI

	// Best-effort cache pre-warmed with successfully ingested records.
	// If not specified, an always-miss implementation will be used
	// instead.
	Cache cache.Cache

	// A clock instance for generating time-related events. If not specified,
	// the default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.QueueAPI == nil {
		err = multierror.Append(err, fmt.Errorf("queue API not provided"))
	}

	if config.StoreAPI == nil {
		err = multierror.Append(err, fmt.Errorf("store API not provided"))
	}

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.Cache == nil {
		config.Cache = cache.Nop()
	}

	if config.Clock == nil {
		config.Clock = clock.WallClock
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
