package aggregate

import (
	"sort"
	"time"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// QuarterStart returns midnight UTC of the first day of the calendar quarter
// containing t.
func QuarterStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	first := time.Month((int(m)-1)/3*3 + 1)
	return time.Date(y, first, 1, 0, 0, 0, 0, time.UTC)
}

type acc struct {
	sum   float64
	count int
}

// Quarterly groups rows by calendar quarter and returns one bucket per
// non-empty quarter, oldest first. Quarters without rows are left out rather
// than zero-filled, so every bucket has Volume >= 1.
//
// Worths are summed in input order, which keeps the mean bit-identical
// across runs on the same input.
func Quarterly(rows []models.Transaction) []models.QuarterlyBucket {
	groups := make(map[time.Time]*acc)
	for _, r := range rows {
		q := QuarterStart(r.Date)
		a, ok := groups[q]
		if !ok {
			a = &acc{}
			groups[q] = a
		}
		a.sum += r.Worth
		a.count++
	}

	out := make([]models.QuarterlyBucket, 0, len(groups))
	for q, a := range groups {
		out = append(out, models.QuarterlyBucket{
			QuarterStart: q,
			AvgPrice:     a.sum / float64(a.count),
			Volume:       a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].QuarterStart.Before(out[j].QuarterStart)
	})
	return out
}
