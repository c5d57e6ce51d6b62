package models

import (
	"fmt"
	"time"
)

// QuarterlyBucket holds the mean worth and the number of transactions of one
// calendar quarter. Buckets only exist for quarters with at least one record.
type QuarterlyBucket struct {
	QuarterStart time.Time `json:"quarter_start"`
	AvgPrice     float64   `json:"avg_price"`
	Volume       int       `json:"volume"`
}

// Label renders the bucket's quarter as "2024-Q3".
func (b QuarterlyBucket) Label() string {
	return fmt.Sprintf("%d-Q%d", b.QuarterStart.Year(), (int(b.QuarterStart.Month())-1)/3+1)
}
