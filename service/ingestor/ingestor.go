package ingestor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mycok/docStream/cache"
	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/queue"
	"github.com/mycok/docStream/textindexer/index"
)

// ErrNilRecord is reported for deliveries that carry no record.
var ErrNilRecord = errors.New("nil document record")

// Service drains the document queue and projects each record into the
// system-of-record store and the search index. it satisfies the
// service.Service interface.
//
// The store and the index are independent systems with no cross-store
// transaction: a record whose index write fails is nacked after its
// store row was already written, and its redelivery produces a second
// store row. That duplication is an accepted, bounded cost of keeping
// the two views eventually consistent.
type Service struct {
	config Config
}

// New creates and returns a fully configured ingestion consumer
// service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("ingestor service: config validation failed: %w", err)
	}

	return &Service{config: config}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "ingestor" }

// Run executes the service and blocks until the context gets cancelled
// or an error occurs. Multiple service instances may safely consume
// the same topic concurrently.
func (svc *Service) Run(ctx context.Context) error {
	svc.config.Logger.WithField("topic", queue.DocumentTopic).Info("starting service")
	defer svc.config.Logger.Info("stopped service")

	return svc.config.QueueAPI.Consume(ctx, queue.DocumentTopic, svc.onRecord)
}

// onRecord processes a single delivered record: persist to the store,
// project the stored row into the index, then opportunistically warm
// the record cache. A nil return value acknowledges the delivery; any
// error triggers the broker's redelivery policy.
func (svc *Service) onRecord(record *store.Document) error {
	if record == nil {
		svc.config.Logger.WithField("err", ErrNilRecord).Error("discarding delivery")

		return ErrNilRecord
	}

	logger := svc.config.Logger.WithField("title", record.Title)

	if err := svc.config.StoreAPI.Save(record); err != nil {
		logger.WithFields(map[string]interface{}{
			"step": "store",
			"err":  err,
		}).Error("failed to process record")

		return err
	}

	logger.WithField("id", record.ID).Info("record saved to store")

	// The index entity is built from the record as returned by the
	// store, carries its own identifier and is stamped with the
	// indexing time rather than the intake timestamp.
	doc := &index.Document{
		ID:        uuid.New(),
		Title:     record.Title,
		Author:    record.Author,
		Type:      record.Type,
		Content:   record.Content,
		IndexedAt: svc.config.Clock.Now().UTC(),
	}

	if err := svc.config.IndexAPI.Index(doc); err != nil {
		logger.WithFields(map[string]interface{}{
			"step": "index",
			"err":  err,
		}).Error("failed to process record")

		return err
	}

	logger.Info("record projected into index")

	svc.warmCache(record)

	return nil
}

// warmCache stores the serialized record under its document key so
// subsequent lookups by id can skip the store. Serialization failures
// only cost the pre-warm.
func (svc *Service) warmCache(record *store.Document) {
	serialized, err := json.Marshal(record)
	if err != nil {
		return
	}

	svc.config.Cache.Put(cache.DocKey(record.ID), serialized)
}
