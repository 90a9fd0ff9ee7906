package langcopy

import (
	"fmt"
	"sync"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// Key identifies the table of one attribute of one record in one language.
type Key struct {
	RecordID string
	FieldID  string
	Language record.LanguageID
}

// String returns the key as "record/field/language".
func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%d", k.RecordID, k.FieldID, k.Language)
}

// entry is a loaded table with its rows at load time.
type entry struct {
	table record.Table
	rows  []record.Row
}

// Cache memoizes tables for one copy operation.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	cleared map[Key]bool
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]entry),
		cleared: make(map[Key]bool),
	}
}

// Table returns the table and its rows for key, loading them through obj
// the first time. Rows are those present at load time.
func (c *Cache) Table(obj record.Object, key Key) (record.Table, []record.Row, error) {
	// Fast path: already loaded
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.table, e.rows, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if e, ok := c.entries[key]; ok {
		return e.table, e.rows, nil
	}

	t, err := obj.Table(key.FieldID, key.Language)
	if err != nil {
		return nil, nil, fmt.Errorf("load table %s: %w", key, err)
	}
	e = entry{table: t, rows: t.Rows()}
	c.entries[key] = e
	return e.table, e.rows, nil
}

// MarkCleared records that the rows of key were deleted. It returns true
// the first time it is called for key.
func (c *Cache) MarkCleared(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleared[key] {
		return false
	}
	c.cleared[key] = true
	return true
}

// Cleared reports whether the rows of key were deleted.
func (c *Cache) Cleared(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cleared[key]
}

// Len returns the number of loaded tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
