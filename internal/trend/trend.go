package trend

import (
	"errors"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

const (
	// MinQuarters is the shortest series trend metrics are computed for.
	MinQuarters = 2
	// yearLag is the distance, in buckets, between the latest quarter and
	// its year-ago baseline.
	yearLag = 4
)

// ErrInsufficientData means the series has fewer than MinQuarters buckets.
// Callers report it as a degraded outcome, not as a failure.
var ErrInsufficientData = errors.New("not enough quarterly data for trend metrics")

// PctChange returns (newV-oldV)/oldV*100. A zero baseline yields an
// undefined change instead of ±Inf or NaN.
func PctChange(newV, oldV float64) models.Change {
	if oldV == 0 {
		return models.Change{}
	}
	return models.Change{Percent: (newV - oldV) / oldV * 100, Defined: true}
}

// Classify maps x to Up (x > 0), Down (x < 0) or Flat. Zero is Flat, with
// no tolerance band around it.
func Classify(x float64) models.Direction {
	switch {
	case x > 0:
		return models.Up
	case x < 0:
		return models.Down
	default:
		return models.Flat
	}
}

// ClassifyChange classifies a change; undefined changes are Flat.
func ClassifyChange(c models.Change) models.Direction {
	if !c.Defined {
		return models.Flat
	}
	return Classify(c.Percent)
}

// Analyze compares the latest bucket with the previous one (QoQ) and with
// the bucket four positions earlier (YoY). The series must be sorted oldest
// first.
//
// With fewer than five buckets the year-ago baseline falls back to the
// previous bucket, so YoY equals QoQ and YoYFallback is set.
func Analyze(series []models.QuarterlyBucket) (models.Trend, error) {
	n := len(series)
	if n < MinQuarters {
		return models.Trend{}, ErrInsufficientData
	}

	tr := models.Trend{
		Latest:   series[n-1],
		Previous: series[n-2],
	}
	if n > yearLag {
		tr.YearAgo = series[n-1-yearLag]
	} else {
		tr.YearAgo = tr.Previous
		tr.YoYFallback = true
	}

	tr.QoQPrice = PctChange(tr.Latest.AvgPrice, tr.Previous.AvgPrice)
	tr.YoYPrice = PctChange(tr.Latest.AvgPrice, tr.YearAgo.AvgPrice)
	tr.QoQVolume = PctChange(float64(tr.Latest.Volume), float64(tr.Previous.Volume))
	tr.YoYVolume = PctChange(float64(tr.Latest.Volume), float64(tr.YearAgo.Volume))

	tr.Signature = models.Signature{
		ClassifyChange(tr.QoQPrice),
		ClassifyChange(tr.YoYPrice),
		ClassifyChange(tr.QoQVolume),
		ClassifyChange(tr.YoYVolume),
	}
	return tr, nil
}
