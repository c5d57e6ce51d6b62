package filter

import (
	"time"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// Predicate reports whether a transaction passes a filter.
type Predicate func(models.Transaction) bool

// Field extracts a categorical column from a transaction.
type Field func(models.Transaction) string

var (
	AreaField         Field = func(t models.Transaction) string { return t.Area }
	PropertyTypeField Field = func(t models.Transaction) string { return t.PropertyType }
	RoomsField        Field = func(t models.Transaction) string { return t.Rooms }
)

// All combines predicates with logical AND. Nil predicates are skipped, so
// All() with no active predicate accepts everything.
func All(preds ...Predicate) Predicate {
	active := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(t models.Transaction) bool {
		for _, p := range active {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// InSet accepts transactions whose field value is one of values, compared
// with exact string equality. An empty set means no restriction and yields nil.
func InSet(field Field, values []string) Predicate {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(t models.Transaction) bool {
		_, ok := set[field(t)]
		return ok
	}
}

// MaxWorth accepts transactions with worth <= limit.
func MaxWorth(limit float64) Predicate {
	return func(t models.Transaction) bool {
		return t.Worth <= limit
	}
}

// DateBetween accepts transactions dated within [from, to], both inclusive.
// Only the calendar date is compared.
func DateBetween(from, to time.Time) Predicate {
	from, to = dateOnly(from), dateOnly(to)
	return func(t models.Transaction) bool {
		d := dateOnly(t.Date)
		return !d.Before(from) && !d.After(to)
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
