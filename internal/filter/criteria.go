package filter

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// ErrInvalidCriteria is returned by New for inputs that cannot describe a filter.
var ErrInvalidCriteria = errors.New("invalid filter criteria")

// Input carries raw filter values from a caller. Nil pointers mean
// "use the dataset bound" (maximum worth, earliest and latest date).
type Input struct {
	Areas         []string
	PropertyTypes []string
	Rooms         []string
	MaxWorth      *float64
	From          *time.Time
	To            *time.Time
}

// Criteria is an immutable, fully resolved set of filter values.
// Build it with New; the zero value matches nothing.
type Criteria struct {
	areas         []string
	propertyTypes []string
	rooms         []string
	maxWorth      float64
	from          time.Time
	to            time.Time
	pred          Predicate
}

// New resolves in against the dataset bounds and builds the predicate tree.
//
// It fails when the budget is negative or NaN, or the date range is inverted.
func New(in Input, bounds models.FilterOptions) (Criteria, error) {
	c := Criteria{
		areas:         clone(in.Areas),
		propertyTypes: clone(in.PropertyTypes),
		rooms:         clone(in.Rooms),
		maxWorth:      bounds.MaxWorth,
		from:          dateOnly(bounds.MinDate),
		to:            dateOnly(bounds.MaxDate),
	}
	if in.MaxWorth != nil {
		if math.IsNaN(*in.MaxWorth) {
			return Criteria{}, fmt.Errorf("%w: max worth is not a number", ErrInvalidCriteria)
		}
		if *in.MaxWorth < 0 {
			return Criteria{}, fmt.Errorf("%w: max worth %.2f is negative", ErrInvalidCriteria, *in.MaxWorth)
		}
		c.maxWorth = *in.MaxWorth
	}
	if in.From != nil {
		c.from = dateOnly(*in.From)
	}
	if in.To != nil {
		c.to = dateOnly(*in.To)
	}
	if c.from.After(c.to) {
		return Criteria{}, fmt.Errorf("%w: start date %s is after end date %s",
			ErrInvalidCriteria, c.from.Format(time.DateOnly), c.to.Format(time.DateOnly))
	}

	c.pred = All(
		InSet(AreaField, c.areas),
		InSet(PropertyTypeField, c.propertyTypes),
		InSet(RoomsField, c.rooms),
		MaxWorth(c.maxWorth),
		DateBetween(c.from, c.to),
	)
	return c, nil
}

// Match reports whether t satisfies every active predicate.
func (c Criteria) Match(t models.Transaction) bool {
	if c.pred == nil {
		return false
	}
	return c.pred(t)
}

// Areas returns a copy of the allowed areas; nil means any area.
func (c Criteria) Areas() []string { return clone(c.areas) }

// PropertyTypes returns a copy of the allowed property types; nil means any.
func (c Criteria) PropertyTypes() []string { return clone(c.propertyTypes) }

// Rooms returns a copy of the allowed room categories; nil means any.
func (c Criteria) Rooms() []string { return clone(c.rooms) }

// MaxWorth is the inclusive budget ceiling.
func (c Criteria) MaxWorth() float64 { return c.maxWorth }

// From is the first included day.
func (c Criteria) From() time.Time { return c.from }

// To is the last included day.
func (c Criteria) To() time.Time { return c.to }

func clone(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
