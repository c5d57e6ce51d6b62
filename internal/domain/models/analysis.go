package models

// AnalysisStatus tells which terminal state a pipeline run ended in.
type AnalysisStatus string

const (
	// StatusOK means trend metrics were computed and a pattern lookup ran.
	StatusOK AnalysisStatus = "ok"
	// StatusInsufficientData means fewer than two quarters matched.
	StatusInsufficientData AnalysisStatus = "insufficient_data"
	// StatusOverCapacity means the filter matched more rows than allowed.
	StatusOverCapacity AnalysisStatus = "over_capacity"
)

// Analysis is the result of one run of the
// filter → quarterly aggregate → trend → pattern pipeline.
//
// Trend and Match are only set for StatusOK. Quarters is empty for
// StatusOverCapacity since aggregation never runs in that case.
type Analysis struct {
	Status       AnalysisStatus
	MatchedCount int
	Limit        int
	Quarters     []QuarterlyBucket
	Trend        *Trend
	Match        *Match
}
