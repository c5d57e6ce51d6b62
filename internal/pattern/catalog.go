package pattern

import (
	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// Catalog is the read-only table of known trend patterns. It is built once
// at startup and shared by every request without locking.
type Catalog struct {
	entries []models.Pattern
	index   map[string]int
}

// NewCatalog indexes entries by pattern id. Duplicate ids are kept as-is;
// lookups resolve to the first occurrence.
func NewCatalog(entries []models.Pattern) *Catalog {
	c := &Catalog{
		entries: make([]models.Pattern, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(c.entries, entries)
	for i, p := range c.entries {
		if _, seen := c.index[p.ID]; !seen {
			c.index[p.ID] = i
		}
	}
	return c
}

// Lookup finds the pattern whose id equals key exactly (case and format sensitive).
func (c *Catalog) Lookup(key string) (models.Pattern, bool) {
	if c == nil {
		return models.Pattern{}, false
	}
	i, ok := c.index[key]
	if !ok {
		return models.Pattern{}, false
	}
	return c.entries[i], true
}

// Len returns the number of catalog rows, duplicates included.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of all rows in load order.
func (c *Catalog) Entries() []models.Pattern {
	if c == nil {
		return nil
	}
	out := make([]models.Pattern, len(c.entries))
	copy(out, c.entries)
	return out
}
