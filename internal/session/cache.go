package session

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"

	"github.com/rocjay1/superstore-analytics/internal/csvparse"
	"github.com/rocjay1/superstore-analytics/internal/models"
)

// Key returns the SHA-256 hash of file content as a hex string.
func Key(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

type entry struct {
	table    *models.Table
	problems []string
}

// Cache holds parsed tables keyed by the hash of their file content.
// Parsing the same bytes twice returns the same table.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Load parses content, or returns the table already parsed from identical
// content. Files that fail validation are not cached.
func (c *Cache) Load(content string) (*models.Table, string, []string, error) {
	key := Key(content)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		slog.Info("table cache hit", "key", key, "rows", len(e.table.Rows))
		return e.table, key, e.problems, nil
	}
	c.mu.Unlock()

	table, problems, err := csvparse.ParseCSV(content)
	if err != nil {
		return nil, key, nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another request may have parsed the same file meanwhile.
	if e, ok := c.entries[key]; ok {
		return e.table, key, e.problems, nil
	}
	c.entries[key] = entry{table: table, problems: problems}
	slog.Info("table cached", "key", key, "rows", len(table.Rows), "skipped_rows", len(problems))
	return table, key, problems, nil
}

// Get returns the table stored under key.
func (c *Cache) Get(key string) (*models.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e.table, ok
}

// Restore stores table under key unless an entry is already there.
func (c *Cache) Restore(key string, table *models.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = entry{table: table}
		slog.Info("table restored to cache", "key", key, "rows", len(table.Rows))
	}
}

// Evict drops the table stored under key.
func (c *Cache) Evict(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		slog.Info("table evicted", "key", key)
	}
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
