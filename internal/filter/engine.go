package filter

import (
	"errors"
	"fmt"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// DefaultMaxResults is the largest filtered set the pipeline will aggregate.
const DefaultMaxResults = 300_000

// ErrOverCapacity is matched (errors.Is) by every *OverCapacityError.
var ErrOverCapacity = errors.New("filtered result exceeds capacity")

// OverCapacityError reports how many rows matched and the ceiling they broke.
type OverCapacityError struct {
	Count int
	Limit int
}

func (e *OverCapacityError) Error() string {
	return fmt.Sprintf("too many results: %d records matched, limit is %d; narrow your filters", e.Count, e.Limit)
}

func (e *OverCapacityError) Is(target error) bool { return target == ErrOverCapacity }

// Engine applies criteria to a dataset and enforces the result ceiling.
type Engine struct {
	limit int
}

// NewEngine returns an engine with the given ceiling. Non-positive values
// fall back to DefaultMaxResults.
func NewEngine(limit int) *Engine {
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	return &Engine{limit: limit}
}

// Limit returns the result ceiling.
func (e *Engine) Limit() int { return e.limit }

// Apply returns the rows matching c, in input order. rows is never modified.
//
// When more than Limit rows match, Apply returns nil and an *OverCapacityError
// carrying the exact match count.
func (e *Engine) Apply(rows []models.Transaction, c Criteria) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	count := 0
	for _, t := range rows {
		if !c.Match(t) {
			continue
		}
		count++
		if count <= e.limit {
			out = append(out, t)
		}
	}
	if count > e.limit {
		return nil, &OverCapacityError{Count: count, Limit: e.limit}
	}
	return out, nil
}
