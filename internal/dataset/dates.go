package dataset

import (
	"fmt"
	"time"
)

// dateLayouts lists the instance_date formats seen in transaction exports,
// tried in order.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02-01-2006",
	"02-01-2006 15:04",
	"02-01-2006 15:04:05",
	"02/01/2006",
}

// ParseDate parses a transaction date in any supported layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
