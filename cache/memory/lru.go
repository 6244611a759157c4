package memory

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mycok/docStream/cache"
)

// Default number of entries retained by the cache before the least
// recently used ones are evicted.
const defaultNumOfEntries = 1024

// Static and compile-time check to ensure LRUCache implements
// the cache.Cache interface.
var _ cache.Cache = (*LRUCache)(nil)

// LRUCache is a cache.Cache implementation backed by a fixed-size,
// in-memory LRU. It is safe for concurrent use.
type LRUCache struct {
	entries *lru.Cache[string, []byte]
}

// NewLRUCache returns an LRUCache instance that retains up to
// numOfEntries values. A non-positive value selects the default size.
func NewLRUCache(numOfEntries int) (*LRUCache, error) {
	if numOfEntries <= 0 {
		numOfEntries = defaultNumOfEntries
	}

	entries, err := lru.New[string, []byte](numOfEntries)
	if err != nil {
		return nil, err
	}

	return &LRUCache{entries: entries}, nil
}

// Put stores a value under the specified key.
func (c *LRUCache) Put(key string, value []byte) {
	// Copy the value so later mutations by the caller cannot leak into
	// cached reads.
	vCopy := make([]byte, len(value))
	copy(vCopy, value)

	c.entries.Add(key, vCopy)
}

// Get looks up a value by key.
func (c *LRUCache) Get(key string) ([]byte, bool) {
	return c.entries.Get(key)
}
