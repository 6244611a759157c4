package query

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mycok/docStream/cache"
	"github.com/mycok/docStream/docstore/store"
	"github.com/mycok/docStream/textindexer/index"
)

// Service serves paginated document listings from the system-of-record
// store and keyword searches from the index, consulting a best-effort
// cache along the way. Losing or disabling the cache changes query
// latency, never query results.
type Service struct {
	config Config
}

// New creates and returns a fully configured query service instance.
func New(config Config) (*Service, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("query service: config validation failed: %w", err)
	}

	return &Service{config: config}, nil
}

// ListDocuments returns a single page of document summaries. The sort
// expression uses the "field,direction" form; malformed expressions are
// rejected rather than silently replaced with a default order.
func (svc *Service) ListDocuments(
	author, docType string, page, size int, sortExpression string,
) (*store.SummaryPage, error) {

	order, err := store.ParseSort(sortExpression)
	if err != nil {
		return nil, err
	}

	return svc.config.StoreAPI.List(store.ListOptions{
		Author: author,
		Type:   docType,
		Page:   page,
		Size:   size,
		Sort:   order,
	})
}

// SearchDocuments returns the full bodies of indexed documents that
// match the keyword query. The raw query string doubles as a cache
// key: a hit serves the memoized result list without touching the
// index.
func (svc *Service) SearchDocuments(query string) ([]index.Document, error) {
	if serialized, hit := svc.config.Cache.Get(query); hit {
		var docs []index.Document
		if err := json.Unmarshal(serialized, &docs); err == nil {
			return docs, nil
		}
		// An undecodable entry degrades to a cache miss.
	}

	it, err := svc.config.IndexAPI.Search(index.Query{Expression: query})
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	// Result order is index-defined relevance.
	docs := []index.Document{}
	for it.Next() {
		docs = append(docs, *it.Document())
	}

	if err := it.Error(); err != nil {
		it.Close()

		return nil, fmt.Errorf("search documents: %w", err)
	}

	if err := it.Close(); err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	if serialized, err := json.Marshal(docs); err == nil {
		svc.config.Cache.Put(query, serialized)
	}

	return docs, nil
}

// GetDocument performs a cache-aside lookup of a single document row.
func (svc *Service) GetDocument(id uuid.UUID) (*store.Document, error) {
	key := cache.DocKey(id)

	if serialized, hit := svc.config.Cache.Get(key); hit {
		doc := new(store.Document)
		if err := json.Unmarshal(serialized, doc); err == nil {
			return doc, nil
		}
	}

	doc, err := svc.config.StoreAPI.Find(id)
	if err != nil {
		return nil, err
	}

	if serialized, err := json.Marshal(doc); err == nil {
		svc.config.Cache.Put(key, serialized)
	}

	return doc, nil
}
