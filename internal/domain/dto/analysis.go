package dto

import (
	"time"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// DateLayout is the date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// AnalysisRequest is the body of POST /api/v1/analysis.
//
// Empty lists place no restriction on that attribute. A missing budget or
// date defaults to the dataset bounds.
type AnalysisRequest struct {
	Areas         []string `json:"areas" form:"areas" example:"Dubai Marina"`
	PropertyTypes []string `json:"property_types" form:"property_types" example:"Unit"`
	Rooms         []string `json:"rooms" form:"rooms" example:"1 B/R"`
	MaxBudget     *float64 `json:"max_budget,omitempty" form:"max_budget" example:"2000000"`
	StartDate     string   `json:"start_date,omitempty" form:"start_date" example:"2023-01-01"`
	EndDate       string   `json:"end_date,omitempty" form:"end_date" example:"2024-12-31"`
}

// AnalysisResponse is the result of a pipeline run.
//
// Metrics, PatternKey and Pattern are only present when Status is "ok".
type AnalysisResponse struct {
	Status       string            `json:"status" example:"ok"`
	MatchedCount int               `json:"matched_count" example:"1520"`
	Message      string            `json:"message,omitempty" example:"not enough quarterly data to compute trends"`
	Metrics      *TrendMetrics     `json:"metrics,omitempty"`
	Quarters     []QuarterResponse `json:"quarters,omitempty"`
	PatternKey   string            `json:"pattern_key,omitempty" example:"Up-Up-Down-Down"`
	Pattern      *PatternResult    `json:"pattern,omitempty"`
}

// TrendMetrics holds the four percentage changes. A nil value means the
// baseline was zero and the change is undefined.
type TrendMetrics struct {
	QoQPriceChange  *float64 `json:"qoq_price_change_pct" example:"10.0"`
	YoYPriceChange  *float64 `json:"yoy_price_change_pct" example:"4.2"`
	QoQVolumeChange *float64 `json:"qoq_volume_change_pct" example:"-20.0"`
	YoYVolumeChange *float64 `json:"yoy_volume_change_pct" example:"-3.5"`
	YoYFallback     bool     `json:"yoy_fallback"`
	Display         []string `json:"display" example:"+10.0%,+4.2%,-20.0%,-3.5%"`
	LatestQuarter   string   `json:"latest_quarter" example:"2024-Q2"`
	PreviousQuarter string   `json:"previous_quarter" example:"2024-Q1"`
	YearAgoQuarter  string   `json:"year_ago_quarter" example:"2023-Q2"`
}

// QuarterResponse is one quarterly bucket.
type QuarterResponse struct {
	Quarter      string  `json:"quarter" example:"2024-Q2"`
	QuarterStart string  `json:"quarter_start" example:"2024-04-01"`
	AvgPrice     float64 `json:"avg_price" example:"1250000"`
	Volume       int     `json:"volume" example:"812"`
}

// PatternResult is the catalog lookup outcome.
type PatternResult struct {
	Matched        bool   `json:"matched"`
	Insight        string `json:"insight,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Message        string `json:"message,omitempty" example:"no pattern found for Flat-Flat-Flat-Flat"`
}

// FilterOptionsResponse lists the values the analysis filters accept.
type FilterOptionsResponse struct {
	Areas         []string `json:"areas"`
	PropertyTypes []string `json:"property_types"`
	Rooms         []string `json:"rooms"`
	MinWorth      float64  `json:"min_worth" example:"150000"`
	MaxWorth      float64  `json:"max_worth" example:"25000000"`
	MinDate       string   `json:"min_date,omitempty" example:"2019-01-01"`
	MaxDate       string   `json:"max_date,omitempty" example:"2024-12-31"`
}

// Messages for non-ok outcomes.
const (
	MsgInsufficientData = "not enough quarterly data to compute trends"
	MsgOverCapacity     = "too many results, narrow your filters"
)

// NewAnalysisResponse maps a pipeline result onto the API contract.
func NewAnalysisResponse(a *models.Analysis) AnalysisResponse {
	resp := AnalysisResponse{
		Status:       string(a.Status),
		MatchedCount: a.MatchedCount,
	}
	for _, q := range a.Quarters {
		resp.Quarters = append(resp.Quarters, QuarterResponse{
			Quarter:      q.Label(),
			QuarterStart: q.QuarterStart.Format(DateLayout),
			AvgPrice:     q.AvgPrice,
			Volume:       q.Volume,
		})
	}

	switch a.Status {
	case models.StatusInsufficientData:
		resp.Message = MsgInsufficientData
	case models.StatusOverCapacity:
		resp.Message = MsgOverCapacity
	}
	if a.Trend == nil || a.Match == nil {
		return resp
	}

	tr := a.Trend
	resp.Metrics = &TrendMetrics{
		QoQPriceChange:  percent(tr.QoQPrice),
		YoYPriceChange:  percent(tr.YoYPrice),
		QoQVolumeChange: percent(tr.QoQVolume),
		YoYVolumeChange: percent(tr.YoYVolume),
		YoYFallback:     tr.YoYFallback,
		Display:         []string{tr.QoQPrice.String(), tr.YoYPrice.String(), tr.QoQVolume.String(), tr.YoYVolume.String()},
		LatestQuarter:   tr.Latest.Label(),
		PreviousQuarter: tr.Previous.Label(),
		YearAgoQuarter:  tr.YearAgo.Label(),
	}
	resp.PatternKey = a.Match.Key
	resp.Pattern = &PatternResult{
		Matched:        a.Match.Matched,
		Insight:        a.Match.Pattern.Insight,
		Recommendation: a.Match.Pattern.Recommendation,
		Message:        a.Match.Message(),
	}
	return resp
}

// NewFilterOptionsResponse renders dataset bounds; dates are omitted for an
// empty dataset.
func NewFilterOptionsResponse(o models.FilterOptions) FilterOptionsResponse {
	resp := FilterOptionsResponse{
		Areas:         nonNil(o.Areas),
		PropertyTypes: nonNil(o.PropertyTypes),
		Rooms:         nonNil(o.Rooms),
		MinWorth:      o.MinWorth,
		MaxWorth:      o.MaxWorth,
	}
	if !o.MinDate.IsZero() {
		resp.MinDate = o.MinDate.Format(DateLayout)
	}
	if !o.MaxDate.IsZero() {
		resp.MaxDate = o.MaxDate.Format(DateLayout)
	}
	return resp
}

// ParseDate parses an optional YYYY-MM-DD value; "" yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func percent(c models.Change) *float64 {
	if !c.Defined {
		return nil
	}
	v := c.Percent
	return &v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
