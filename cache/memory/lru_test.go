package memory

import (
	"testing"

	check "gopkg.in/check.v1"
)

// Initialize and register an instance of the lruCacheTestSuite to be
// executed by check testing package.
var _ = check.Suite(new(lruCacheTestSuite))

// Test registers the [check] library with the go testing library and enables
// the running of the test suite using the go testing library.
func Test(t *testing.T) {
	check.TestingT(t)
}

type lruCacheTestSuite struct {
	c *LRUCache
}

func (s *lruCacheTestSuite) SetUpTest(c *check.C) {
	lruCache, err := NewLRUCache(2)
	c.Assert(err, check.IsNil)

	s.c = lruCache
}

func (s *lruCacheTestSuite) TestPutAndGet(c *check.C) {
	s.c.Put("doc:a", []byte("value-a"))

	value, hit := s.c.Get("doc:a")
	c.Assert(hit, check.Equals, true)
	c.Assert(string(value), check.Equals, "value-a")

	_, hit = s.c.Get("doc:missing")
	c.Assert(hit, check.Equals, false)
}

func (s *lruCacheTestSuite) TestValueIsolation(c *check.C) {
	value := []byte("original")
	s.c.Put("doc:a", value)

	// Mutations to the caller's slice must not leak into cached reads.
	value[0] = 'X'

	cached, hit := s.c.Get("doc:a")
	c.Assert(hit, check.Equals, true)
	c.Assert(string(cached), check.Equals, "original")
}

func (s *lruCacheTestSuite) TestLeastRecentlyUsedEviction(c *check.C) {
	s.c.Put("doc:a", []byte("a"))
	s.c.Put("doc:b", []byte("b"))
	s.c.Put("doc:c", []byte("c"))

	// The oldest entry is evicted once capacity is exceeded.
	_, hit := s.c.Get("doc:a")
	c.Assert(hit, check.Equals, false)

	_, hit = s.c.Get("doc:c")
	c.Assert(hit, check.Equals, true)
}
