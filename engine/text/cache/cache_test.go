package cache

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/vitrine/engine/text"
)

func TestCacheEviction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	c := New(2)
	k1 := Key{Content: ContentHash("one")}
	k2 := Key{Content: ContentHash("two")}
	k3 := Key{Content: ContentHash("three")}
	c.Put(k1, &text.Result{})
	c.Put(k2, &text.Result{})
	c.Put(k3, &text.Result{})
	if c.Len() != 2 {
		t.Fatalf("expected the cache bounded at 2 entries, have %d", c.Len())
	}
	if _, ok := c.Get(k1); ok {
		t.Errorf("expected the oldest entry evicted")
	}
	if _, ok := c.Get(k3); !ok {
		t.Errorf("expected the youngest entry present")
	}
}

func TestCacheRecency(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	c := New(2)
	k1 := Key{Content: ContentHash("one")}
	k2 := Key{Content: ContentHash("two")}
	k3 := Key{Content: ContentHash("three")}
	c.Put(k1, &text.Result{})
	c.Put(k2, &text.Result{})
	c.Get(k1) // refreshes k1, k2 becomes the eviction candidate
	c.Put(k3, &text.Result{})
	if _, ok := c.Get(k2); ok {
		t.Errorf("expected the least recently used entry evicted")
	}
	if _, ok := c.Get(k1); !ok {
		t.Errorf("expected the refreshed entry kept")
	}
}

func TestConstraintHash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "vitrine.text")
	defer teardown()
	//
	if ConstraintHash(100, 2) != ConstraintHash(100, 2) {
		t.Errorf("expected the constraint hash deterministic")
	}
	if ConstraintHash(100, 2) == ConstraintHash(2, 100) {
		t.Errorf("expected the constraint hash order-sensitive")
	}
}
