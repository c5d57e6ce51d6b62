package models

import (
	"fmt"
	"strings"
)

// Direction is the classification of a percentage change.
type Direction string

const (
	Up   Direction = "Up"
	Down Direction = "Down"
	Flat Direction = "Flat"
)

// Change is a percentage change between two quarters.
// Defined is false when the baseline was zero; Percent is then 0.
type Change struct {
	Percent float64
	Defined bool
}

// String formats the change with one decimal, e.g. "+10.0%", or "n/a".
func (c Change) String() string {
	if !c.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", c.Percent)
}

// Signature is the trend signature in the order
// QoQ price, YoY price, QoQ volume, YoY volume.
type Signature [4]Direction

// Key joins the four directions with dashes, e.g. "Up-Down-Flat-Up".
// It is the lookup key into the pattern catalog.
func (s Signature) Key() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = string(d)
	}
	return strings.Join(parts, "-")
}

// Trend is the outcome of comparing the latest quarter with the previous one
// and with the one a year earlier.
//
// YoYFallback reports that fewer than five quarters were available, so the
// year-ago baseline is the previous quarter and YoY equals QoQ.
type Trend struct {
	Latest      QuarterlyBucket
	Previous    QuarterlyBucket
	YearAgo     QuarterlyBucket
	QoQPrice    Change
	YoYPrice    Change
	QoQVolume   Change
	YoYVolume   Change
	YoYFallback bool
	Signature   Signature
}
