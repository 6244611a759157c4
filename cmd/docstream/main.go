package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mycok/docStream/cache"
	cachemem "github.com/mycok/docStream/cache/memory"
	"github.com/mycok/docStream/docstore/store"
	memstore "github.com/mycok/docStream/docstore/store/memory"
	"github.com/mycok/docStream/docstore/store/pg"
	"github.com/mycok/docStream/queue"
	memqueue "github.com/mycok/docStream/queue/memory"
	"github.com/mycok/docStream/service"
	"github.com/mycok/docStream/service/ingestor"
	"github.com/mycok/docStream/service/intake"
	"github.com/mycok/docStream/textindexer/index"
	"github.com/mycok/docStream/textindexer/store/es"
	memindex "github.com/mycok/docStream/textindexer/store/memory"
)

const (
	appName = "docStream"
	appSHA  = "compiled-and-deployed-at"
)

func main() {
	host, _ := os.Hostname()
	// Instantiate a root logger that will be passed to all services.
	rootLogger := logrus.New()
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"SHA":  appSHA,
		"host": host,
	})

	svcGroup, err := configureServices(logger)
	if err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	// Launch a separate process to listen and respond to os signals
	// and trigger a graceful shutdown.
	go func() {
		signalChan := make(chan os.Signal, 1)
		signal.Notify(signalChan, syscall.SIGINT, syscall.SIGHUP)

		select {
		case s := <-signalChan:
			logger.WithField("signal", s.String()).Info("shutting down due to os signal")
			// Cancel context, this signals all services to return since they all
			// share this same context.
			cancelFn()
		case <-ctx.Done():
		}
	}()

	if err := svcGroup.Execute(ctx); err != nil {
		logger.WithField("err", err).Error("shutting down due to an error")

		return
	}

	// Shutdown due to context cancellation.
	logger.Info("shutdown complete")
}

func configureServices(logger *logrus.Entry) (service.Group, error) {
	var (
		intakeConfig   intake.Config
		ingestorConfig ingestor.Config
	)

	flag.IntVar(
		&intakeConfig.NumOfWorkers, "intake-num-workers",
		runtime.NumCPU(),
		"Number of workers for extracting text from submissions.[defaults to number of CPU's]",
	)
	flag.StringVar(
		&intakeConfig.TempDir, "intake-temp-dir", "",
		"Directory for the per-submission scratch files.[defaults to the OS temp dir]",
	)

	docStoreURI := flag.String(
		"doc-store-uri", "in-memory://",
		"URI for connecting to the system-of-record document store."+
			" [supported URI's: in-memory://, postgresql://user@host:5432/docstream?sslmode=disable]",
	)
	textIndexURI := flag.String(
		"text-index-uri", "in-memory://",
		"URI for connecting to a text-index data store."+
			" [supported URI's: in-memory://, es://node1:9200,...,nodeN:9200]",
	)

	maxDeliveries := flag.Int(
		"queue-max-deliveries", 3,
		"Number of delivery attempts before a record is dead-lettered",
	)
	cacheEntries := flag.Int(
		"cache-num-entries", 1024,
		"Capacity of the in-process document cache. A value of 0 disables caching",
	)

	flag.Parse()

	// Retrieve suitable document store and text indexer implementations
	// and plug them into the service configurations.
	docStore, err := getDocStore(*docStoreURI, logger)
	if err != nil {
		return nil, err
	}

	textIndex, err := getTextIndex(*textIndexURI, logger)
	if err != nil {
		return nil, err
	}

	docCache, err := getCache(*cacheEntries, logger)
	if err != nil {
		return nil, err
	}

	docQueue := memqueue.NewInMemoryQueue(
		*maxDeliveries, logger.WithField("component", "queue"),
	)

	var svc service.Service
	var svcGrp service.Group

	intakeConfig.QueueAPI = docQueue
	intakeConfig.Logger = logger.WithField("service", "intake")
	if svc, err = intake.New(intakeConfig); err == nil {
		svcGrp = append(svcGrp, svc)
	} else {
		return nil, err
	}

	ingestorConfig.QueueAPI = docQueue
	ingestorConfig.StoreAPI = docStore
	ingestorConfig.IndexAPI = textIndex
	ingestorConfig.Cache = docCache
	ingestorConfig.Logger = logger.WithField("service", "ingestor")
	if svc, err = ingestor.New(ingestorConfig); err == nil {
		svcGrp = append(svcGrp, svc)
	} else {
		return nil, err
	}

	return svcGrp, nil
}

// StoreAPI defines a minimum set of API methods for the document store.
type StoreAPI interface {
	// Save persists a new document row and assigns its id.
	Save(doc *store.Document) error

	// Find looks up a single document row by its id.
	Find(id uuid.UUID) (*store.Document, error)

	// List returns a single page of document summaries.
	List(opts store.ListOptions) (*store.SummaryPage, error)
}

func getDocStore(docStoreURI string, logger *logrus.Entry) (StoreAPI, error) {
	if docStoreURI == "" {
		return nil, fmt.Errorf("document store URI must be specified with --doc-store-uri")
	}

	url, err := url.Parse(docStoreURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document store URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory document store")

		return memstore.NewInMemoryStore(), nil
	case "postgresql":
		logger.Info("using postgres document store")

		return pg.NewPostgresStore(docStoreURI)
	default:
		return nil, fmt.Errorf("unsupported document store URI scheme: %q", url.Scheme)
	}
}

// IndexAPI defines a minimum set of API methods for indexing and searching
// documents.
type IndexAPI interface {
	// Index adds a new document or updates an existing index entry
	// in case of an existing document.
	Index(doc *index.Document) error

	// Search performs a look up based on query and returns a result
	// iterator if successful or an error otherwise.
	Search(q index.Query) (index.Iterator, error)
}

func getTextIndex(textIndexURI string, logger *logrus.Entry) (IndexAPI, error) {
	if textIndexURI == "" {
		return nil, fmt.Errorf("text index URI must be specified with --text-index-uri")
	}

	url, err := url.Parse(textIndexURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text index URI: %w", err)
	}

	switch url.Scheme {
	case "in-memory":
		logger.Info("using in-memory index store")

		return memindex.NewInMemoryIndex()
	case "es":
		nodes := strings.Split(url.Host, ",")
		for i := 0; i < len(nodes); i++ {
			nodes[i] = "http://" + nodes[i]
		}
		logger.Info("using ES index store")

		return es.NewEsIndexer(nodes, false)
	default:
		return nil, fmt.Errorf("unsupported text index URI scheme: %q", url.Scheme)
	}
}

func getCache(numOfEntries int, logger *logrus.Entry) (cache.Cache, error) {
	if numOfEntries == 0 {
		logger.Info("document caching disabled")

		return cache.Nop(), nil
	}

	return cachemem.NewLRUCache(numOfEntries)
}

// Ensure the queue channel contract is fully satisfied by the in-memory
// implementation shared by both services.
var _ queue.Queue = (*memqueue.InMemoryQueue)(nil)
