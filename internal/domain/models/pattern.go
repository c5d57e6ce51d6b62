package models

import "fmt"

// Pattern is one row of the pattern catalog.
type Pattern struct {
	ID             string `json:"pattern_id" yaml:"pattern_id"`
	Insight        string `json:"insight" yaml:"insight"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

// Match is the result of looking a signature key up in the catalog.
// When Matched is false, Pattern is the zero value.
type Match struct {
	Key     string
	Matched bool
	Pattern Pattern
}

// Message describes a missing pattern; it is empty for a match.
func (m Match) Message() string {
	if m.Matched {
		return ""
	}
	return fmt.Sprintf("no pattern found for %s", m.Key)
}
