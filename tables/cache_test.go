package tables

import "testing"

func TestCacheKeyIgnoresGroup(t *testing.T) {
	table := tableOf(1, "a", "b")
	stamped := table.WithAttr(GroupAttr, "g-1")

	if Key(table) != Key(stamped) {
		t.Error("group identity changed the cache key")
	}
}

func TestCacheKeySensitivity(t *testing.T) {
	base := tableOf(1, "a", "b")
	changed := map[string]uint64{
		"text":    Key(tableOf(1, "a", "c")),
		"rows":    Key(tableOf(1, "a", "b", "c")),
		"headers": Key(tableOf(2, "a", "b")),
	}
	key := Key(base)
	for name, k := range changed {
		if k == key {
			t.Errorf("%s change did not change the cache key", name)
		}
	}
}

func TestCacheStoreLookup(t *testing.T) {
	c := NewCache()
	table := tableOf(0, "ab", "ab")
	m := Measure(table, 0, runeHeight)
	key := Key(table)

	if _, ok := c.Lookup(key); ok {
		t.Fatal("lookup hit on an empty cache")
	}
	c.Store(key, m)
	got, ok := c.Lookup(key)
	if !ok || got.Total != m.Total {
		t.Errorf("lookup = %v, %v, want the stored measurement", got.Total, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheRejectsDegenerate(t *testing.T) {
	c := NewCache()
	c.Store(42, Measurement{})
	if c.Len() != 0 {
		t.Error("degenerate measurement was cached")
	}
}
