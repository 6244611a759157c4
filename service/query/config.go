package query

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/mycok/docStream/cache"
	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/textindexer/index"
)

// StoreAPI defines a minimum set of API methods for reading the
// system-of-record document store.
type StoreAPI interface {
	// Find performs a document lookup by id.
	Find(id uuid.UUID) (*store.Document, error)

	// List returns a single page of document summaries that match the
	// provided filter, pagination and sort options.
	List(opts store.ListOptions) (*store.SummaryPage, error)
}

// IndexAPI defines a minimum set of API methods for searching the
// document index.
type IndexAPI interface {
	// Search performs a look up based on query and returns a result
	// iterator if successful or an error otherwise.
	Search(q index.Query) (index.Iterator, error)
}

// Config defines configurations for the document query service.
type Config struct {
	// API for reading the system-of-record document store.
	StoreAPI StoreAPI

	// API for searching the document index.
	IndexAPI IndexAPI

	// Best-effort cache consulted before the store and the index. If
	// not specified, an always-miss implementation will be used
	// instead.
	Cache cache.Cache

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (config *Config) validate() error {
	var err error

	if config.StoreAPI == nil {
		err = multierror.Append(err, fmt.Errorf("store API not provided"))
	}

	if config.IndexAPI == nil {
		err = multierror.Append(err, fmt.Errorf("index API not provided"))
	}

	if config.Cache == nil {
		config.Cache = cache.Nop()
	}

	if config.Logger == nil {
		config.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard})
	}

	return err
}
