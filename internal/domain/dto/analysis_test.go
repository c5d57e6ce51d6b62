package dto

import (
	"testing"
	"time"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

func bucket(y int, m time.Month, avg float64, vol int) models.QuarterlyBucket {
	return models.QuarterlyBucket{QuarterStart: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), AvgPrice: avg, Volume: vol}
}

func TestNewAnalysisResponse_OK(t *testing.T) {
	q1, q2 := bucket(2024, 1, 100, 10), bucket(2024, 4, 110, 8)
	a := &models.Analysis{
		Status:       models.StatusOK,
		MatchedCount: 18,
		Quarters:     []models.QuarterlyBucket{q1, q2},
		Trend: &models.Trend{
			Latest: q2, Previous: q1, YearAgo: q1,
			QoQPrice:    models.Change{Percent: 10, Defined: true},
			YoYPrice:    models.Change{Percent: 10, Defined: true},
			QoQVolume:   models.Change{Percent: -20, Defined: true},
			YoYVolume:   models.Change{},
			YoYFallback: true,
			Signature:   models.Signature{models.Up, models.Up, models.Down, models.Flat},
		},
		Match: &models.Match{Key: "Up-Up-Down-Flat"},
	}

	resp := NewAnalysisResponse(a)
	if resp.Status != "ok" || resp.MatchedCount != 18 || resp.PatternKey != "Up-Up-Down-Flat" {
		t.Fatalf("unexpected header fields %+v", resp)
	}
	m := resp.Metrics
	if m == nil || m.QoQPriceChange == nil || *m.QoQPriceChange != 10 || m.YoYVolumeChange != nil {
		t.Fatalf("unexpected metrics %+v", m)
	}
	if m.Display[2] != "-20.0%" || m.Display[3] != "n/a" {
		t.Fatalf("unexpected display %v", m.Display)
	}
	if m.LatestQuarter != "2024-Q2" || m.YearAgoQuarter != "2024-Q1" || !m.YoYFallback {
		t.Fatalf("unexpected quarters %+v", m)
	}
	if len(resp.Quarters) != 2 || resp.Quarters[1].QuarterStart != "2024-04-01" {
		t.Fatalf("unexpected buckets %+v", resp.Quarters)
	}
	if resp.Pattern == nil || resp.Pattern.Matched || resp.Pattern.Message != "no pattern found for Up-Up-Down-Flat" {
		t.Fatalf("unexpected pattern %+v", resp.Pattern)
	}
}

func TestNewAnalysisResponse_NonOK(t *testing.T) {
	cases := []struct {
		status models.AnalysisStatus
		msg    string
	}{
		{models.StatusInsufficientData, MsgInsufficientData},
		{models.StatusOverCapacity, MsgOverCapacity},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			resp := NewAnalysisResponse(&models.Analysis{Status: tc.status, MatchedCount: 5})
			if resp.Message != tc.msg || resp.Metrics != nil || resp.Pattern != nil || resp.PatternKey != "" {
				t.Fatalf("unexpected %+v", resp)
			}
		})
	}
}

func TestNewFilterOptionsResponse(t *testing.T) {
	empty := NewFilterOptionsResponse(models.FilterOptions{})
	if empty.Areas == nil || empty.MinDate != "" {
		t.Fatalf("unexpected empty options %+v", empty)
	}
	full := NewFilterOptionsResponse(models.FilterOptions{
		Areas:   []string{"Marina"},
		MinDate: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		MaxDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	if full.MinDate != "2020-01-02" || full.MaxDate != "2024-12-31" || full.Areas[0] != "Marina" {
		t.Fatalf("unexpected options %+v", full)
	}
}

func TestParseDate(t *testing.T) {
	if d, err := ParseDate(""); d != nil || err != nil {
		t.Fatalf("empty: got %v %v", d, err)
	}
	d, err := ParseDate("2024-02-29")
	if err != nil || d.Day() != 29 {
		t.Fatalf("valid: got %v %v", d, err)
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
