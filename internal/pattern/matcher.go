package pattern

import (
	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// Matcher joins trend signatures against a catalog.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher returns a Matcher over catalog.
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match renders the signature key and looks it up. A missing key is a valid
// outcome: the returned Match has Matched=false and still carries the key.
func (m *Matcher) Match(sig models.Signature) models.Match {
	key := sig.Key()
	p, ok := m.catalog.Lookup(key)
	return models.Match{Key: key, Matched: ok, Pattern: p}
}
