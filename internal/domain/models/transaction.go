package models

import "time"

// Transaction represents a single registered sale from the transactions dataset.
// Only rows with a valid worth and date make it into memory; everything else
// is dropped while the dataset is loaded.
//
// Source columns:
//   - area_name_en      → Area
//   - property_type_en  → PropertyType
//   - rooms_en          → Rooms (categorical, e.g. "2 B/R", "Studio")
//   - actual_worth      → Worth
//   - instance_date     → Date (date only, UTC)
//   - transaction_id    → TransactionID
type Transaction struct {
	Area          string
	PropertyType  string
	Rooms         string
	Worth         float64
	Date          time.Time
	TransactionID string
}

// FilterOptions describes the values a caller can filter on, derived from
// the loaded dataset. The worth and date bounds double as defaults when a
// request leaves budget or date range empty.
type FilterOptions struct {
	Areas         []string  `json:"areas"`
	PropertyTypes []string  `json:"property_types"`
	Rooms         []string  `json:"rooms"`
	MinWorth      float64   `json:"min_worth"`
	MaxWorth      float64   `json:"max_worth"`
	MinDate       time.Time `json:"min_date"`
	MaxDate       time.Time `json:"max_date"`
}
