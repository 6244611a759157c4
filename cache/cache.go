/*
	cache package defines a best-effort, cache-aside key / value
	contract. A cache is consulted opportunistically and is never
	required for correctness: implementations absorb their own
	transport or capacity failures and report them as misses, and the
	absence of an entry is always a valid state.
*/

package cache

import "github.com/google/uuid"

// Key prefix for cached document records.
const docKeyPrefix = "doc:"

// Cache should be implemented by types that can serve as a best-effort
// key / value cache.
type Cache interface {
	// Put stores a value under the specified key. Failures are
	// absorbed by the implementation and never surfaced to the caller.
	Put(key string, value []byte)

	// Get looks up a value by key. A false return value means the key
	// is absent or the cache is unavailable; the two cases are
	// deliberately indistinguishable to callers.
	Get(key string) ([]byte, bool)
}

// DocKey returns the cache key for a stored document record.
func DocKey(id uuid.UUID) string {
	return docKeyPrefix + id.String()
}

// Static and compile-time check to ensure nopCache implements Cache.
var _ Cache = (*nopCache)(nil)

type nopCache struct{}

func (nopCache) Put(_ string, _ []byte) {}

func (nopCache) Get(_ string) ([]byte, bool) { return nil, false }

// Nop returns a Cache whose lookups always miss. It stands in wherever
// no real cache has been configured.
func Nop() Cache {
	return nopCache{}
}
