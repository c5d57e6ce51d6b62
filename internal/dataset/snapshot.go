package dataset

import (
	"sort"
	"time"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// Snapshot is the in-memory, read-only copy of the transaction dataset.
// It is built once at startup; every request reads the same rows and none
// writes, so no locking is needed.
type Snapshot struct {
	rows     []models.Transaction
	options  models.FilterOptions
	loadedAt time.Time
}

// NewSnapshot copies rows and precomputes the filter options.
func NewSnapshot(rows []models.Transaction) *Snapshot {
	s := &Snapshot{
		rows:     make([]models.Transaction, len(rows)),
		loadedAt: time.Now().UTC(),
	}
	copy(s.rows, rows)
	s.options = buildOptions(s.rows)
	return s
}

// Rows returns the shared backing slice. Callers must treat it as read-only.
func (s *Snapshot) Rows() []models.Transaction { return s.rows }

// Len returns the number of transactions.
func (s *Snapshot) Len() int { return len(s.rows) }

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Options returns the filter options; the slices are copies.
func (s *Snapshot) Options() models.FilterOptions {
	o := s.options
	o.Areas = append([]string(nil), o.Areas...)
	o.PropertyTypes = append([]string(nil), o.PropertyTypes...)
	o.Rooms = append([]string(nil), o.Rooms...)
	return o
}

func buildOptions(rows []models.Transaction) models.FilterOptions {
	var o models.FilterOptions
	if len(rows) == 0 {
		return o
	}
	areas := map[string]struct{}{}
	types := map[string]struct{}{}
	rooms := map[string]struct{}{}

	o.MinWorth, o.MaxWorth = rows[0].Worth, rows[0].Worth
	o.MinDate, o.MaxDate = rows[0].Date, rows[0].Date
	for _, r := range rows {
		addNonEmpty(areas, r.Area)
		addNonEmpty(types, r.PropertyType)
		addNonEmpty(rooms, r.Rooms)
		if r.Worth < o.MinWorth {
			o.MinWorth = r.Worth
		}
		if r.Worth > o.MaxWorth {
			o.MaxWorth = r.Worth
		}
		if r.Date.Before(o.MinDate) {
			o.MinDate = r.Date
		}
		if r.Date.After(o.MaxDate) {
			o.MaxDate = r.Date
		}
	}
	o.Areas = sortedKeys(areas)
	o.PropertyTypes = sortedKeys(types)
	o.Rooms = sortedKeys(rooms)
	return o
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
