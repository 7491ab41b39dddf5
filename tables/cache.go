package tables

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"

	"pageflow/document"
)

// Cache avoids re-measuring tables whose content did not change between
// repagination passes. Keys are structural hashes of the table content, so
// any content change invalidates implicitly by changing the key. The cache
// is explicitly constructed and injected; it is never a source of truth for
// document structure.
type Cache struct {
	entries map[uint64]Measurement
}

func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]Measurement)}
}

func (c *Cache) Lookup(key uint64) (Measurement, bool) {
	m, ok := c.entries[key]
	return m, ok
}

// Store retains a measurement. Degenerate measurements (zero total) are
// never cached.
func (c *Cache) Store(key uint64, m Measurement) {
	if m.Total <= 0 {
		return
	}
	c.entries[key] = m
}

func (c *Cache) Len() int { return len(c.entries) }

// Key hashes a table's structure: kind, attributes, child layout and text.
// The split group identity is excluded so that a fragment and the identical
// standalone table hash alike.
func Key(table *document.Node) uint64 {
	d := xxhash.New()
	hashNode(d, table)
	return d.Sum64()
}

func hashNode(d *xxhash.Digest, n *document.Node) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n.Kind))
	_, _ = d.Write(buf[:])

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		if k == GroupAttr {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = d.WriteString(k)
		_, _ = fmt.Fprintf(d, "%v", n.Attrs[k])
	}

	_, _ = d.WriteString(n.Text)
	binary.LittleEndian.PutUint64(buf[:], uint64(len(n.Children)))
	_, _ = d.Write(buf[:])
	for _, ch := range n.Children {
		hashNode(d, ch)
		binary.LittleEndian.PutUint64(buf[:], uint64(ch.Size()))
		_, _ = d.Write(buf[:])
	}
}
