// Package rendercache stores highlighter snapshots at fixed line intervals
// so a render can resume close to the first visible line instead of
// re-parsing the document from the top.
package rendercache

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/vantage/internal/renderer/highlight"
)

// Stride is the line interval between snapshots.
const Stride = 100

// Entry is the highlighter state captured before a line is rendered.
type Entry struct {
	// Line is the line the state applies to.
	Line      int
	Parse     highlight.ParseState
	Highlight highlight.HighlightState
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Invalidations uint64
	Entries       int
}

// Cache holds snapshots for one document.
type Cache struct {
	mu      sync.RWMutex
	entries map[int]Entry

	hits          atomic.Uint64
	misses        atomic.Uint64
	invalidations atomic.Uint64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[int]Entry)}
}

// ShouldCapture reports whether a snapshot belongs at line.
func ShouldCapture(line int) bool {
	return line > 0 && line%Stride == 0
}

// Lookup returns the entry with the highest line strictly below upper.
func (c *Cache) Lookup(upper int) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	best, found := Entry{}, false
	for line, e := range c.entries {
		if line < upper && (!found || line > best.Line) {
			best, found = e, true
		}
	}
	if found {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return best, found
}

// Insert stores a snapshot taken before line was rendered, replacing any
// existing one.
func (c *Cache) Insert(line int, parse highlight.ParseState, hl highlight.HighlightState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[line] = Entry{Line: line, Parse: parse, Highlight: hl}
}

// Contains reports whether a snapshot exists for line.
func (c *Cache) Contains(line int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[line]
	return ok
}

// InvalidateFrom drops every entry at or after line.
func (c *Cache) InvalidateFrom(line int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for l := range c.entries {
		if l >= line {
			delete(c.entries, l)
		}
	}
	c.invalidations.Add(1)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.InvalidateFrom(0)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns the cached lines in ascending order.
func (c *Cache) Keys() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]int, 0, len(c.entries))
	for l := range c.entries {
		keys = append(keys, l)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the entry at exactly line.
func (c *Cache) Get(line int) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[line]
	return e, ok
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
		Entries:       c.Len(),
	}
}
