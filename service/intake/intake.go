package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/queue"
)

var (
	// ErrEmptyPayload is returned when a submission carries no bytes.
	ErrEmptyPayload = errors.New("empty upload payload")

	// ErrInvalidMetadata is returned when the submission metadata is
	// not a valid JSON object of string values.
	ErrInvalidMetadata = errors.New("malformed upload metadata")
)

// Service accepts uploaded document payloads, extracts their textual
// content off the caller's critical path and publishes assembled
// document records to the queue channel. it satisfies the
// service.Service interface.
type Service struct {
	config Config

	// Token pool that bounds the number of concurrently processed
	// submissions. Workers block while the pool is exhausted.
	tokenPool chan struct{}

	// Tracks in-flight submissions so Run can drain them on shutdown.
	wg sync.WaitGroup
}

// New creates and returns a fully configured intake service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("intake service: config validation failed: %w", err)
	}

	tokenPool := make(chan struct{}, config.NumOfWorkers)
	for i := 0; i < config.NumOfWorkers; i++ {
		tokenPool <- struct{}{}
	}

	return &Service{
		config:    config,
		tokenPool: tokenPool,
	}, nil
}

// Name returns the name of the service.
func (svc *Service) Name() string { return "intake" }

// Run blocks until the context gets cancelled, then waits for any
// in-flight submissions to complete before returning.
func (svc *Service) Run(ctx context.Context) error {
	svc.config.Logger.WithField(
		"num_of_workers", svc.config.NumOfWorkers,
	).Info("starting service")
	defer svc.config.Logger.Info("stopped service")

	<-ctx.Done()

	svc.wg.Wait()

	return nil
}

// Submit validates the uploaded payload and schedules its extraction
// and publication on a worker. Submit returns before extraction or
// publication complete: once the synchronous payload and metadata
// checks pass, the eventual appearance of the document in listings and
// search results is the only caller-visible effect.
func (svc *Service) Submit(payload []byte, filename, metadataJSON string) error {
	// The empty-payload check runs on the caller path so clients
	// receive an immediate error instead of an accepted submission
	// that can never produce a document.
	if len(payload) == 0 {
		return ErrEmptyPayload
	}

	metadata := map[string]string{}
	if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMetadata, err)
	}

	// The worker acquires a token before processing, which bounds the
	// number of concurrently open temporary files under load. A full
	// pool delays processing on the worker goroutine, never the caller.
	svc.wg.Add(1)

	go func() {
		defer svc.wg.Done()

		token := <-svc.tokenPool
		defer func() { svc.tokenPool <- token }()

		svc.process(payload, filename, metadata)
	}()

	return nil
}

// process runs on a worker goroutine and performs the extract and
// publish steps for a single submission. Failures here are no longer
// caller-visible; they are logged with the failing step for operator
// diagnosis.
func (svc *Service) process(
	payload []byte, filename string, metadata map[string]string,
) {
	logger := svc.config.Logger.WithField("title", filename)

	content, err := svc.extractToText(payload, filename)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"step": "extract",
			"err":  err,
		}).Error("failed submission")

		return
	}

	record := &store.Document{
		Title:        filename,
		Content:      content,
		Author:       metadata["author"],
		Type:         metadata["type"],
		SearchVector: content,
		CreatedAt:    svc.config.Clock.Now().Truncate(time.Millisecond).UTC(),
	}

	// A record that never reaches the queue is permanently lost, so a
	// publish failure is reported as its own failure step rather than
	// being folded into extraction errors.
	if err := svc.config.QueueAPI.Publish(queue.DocumentTopic, record); err != nil {
		logger.WithFields(map[string]interface{}{
			"step": "publish",
			"err":  err,
		}).Error("failed submission")

		return
	}

	logger.Info("submission published")
}

// extractToText writes the payload to a scoped temporary file and runs
// the content extractor against it. The temporary file is removed on
// every exit path.
func (svc *Service) extractToText(payload []byte, filename string) (string, error) {
	tempFile, err := os.CreateTemp(
		svc.config.TempDir, "upload-*-"+filepath.Base(filename),
	)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(payload); err != nil {
		tempFile.Close()

		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return svc.config.Extractor.ExtractText(
		context.Background(), tempFile.Name(), filename,
	)
}
