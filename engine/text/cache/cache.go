/*
Package cache memoizes inline layout results.

Shaping and line-breaking are the most expensive steps of layout, and
most frames change only a fraction of the document. A bounded LRU cache
keyed by (content hash, constraint hash) lets unchanged paragraphs skip
the whole inline pipeline.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cache

import (
	"hash/fnv"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/vitrine/engine/text"
)

// tracer traces with key 'vitrine.text'.
func tracer() tracing.Trace {
	return tracing.Select("vitrine.text")
}

// Key identifies a cached inline layout result.
type Key struct {
	Content    uint64 // hash of the source text
	Constraint uint64 // hash of shape, style and typesetting parameters
}

// ContentHash hashes a paragraph's text.
func ContentHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// ConstraintHash folds a list of integer-valued constraints (dimensions,
// mode enums) into a hash.
func ConstraintHash(vals ...int64) uint64 {
	h := fnv.New64a()
	var b [8]byte
	for _, v := range vals {
		u := uint64(v)
		for i := 0; i < 8; i++ {
			b[i] = byte(u >> (8 * i))
		}
		h.Write(b[:])
	}
	return h.Sum64()
}

// Cache is a bounded LRU cache for inline layout results. It is safe
// for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  *linkedhashmap.Map // Key → *text.Result, in recency order
	capacity int
}

// New creates a cache holding up to capacity results. A non-positive
// capacity chooses a default of 128.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 128
	}
	return &Cache{
		entries:  linkedhashmap.New(),
		capacity: capacity,
	}
}

// Get returns a cached result, refreshing its recency.
func (c *Cache) Get(key Key) (*text.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	// re-insert to move the entry to the young end
	c.entries.Remove(key)
	c.entries.Put(key, v)
	return v.(*text.Result), true
}

// Put stores a result, evicting the least recently used entry when the
// cache is full.
func (c *Cache) Put(key Key, result *text.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries.Get(key); ok {
		c.entries.Remove(key)
	}
	for c.entries.Size() >= c.capacity {
		oldest := c.entries.Keys()[0]
		c.entries.Remove(oldest)
		tracer().Debugf("inline result cache evicts %v", oldest)
	}
	c.entries.Put(key, result)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Size()
}
