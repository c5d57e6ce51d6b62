package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// Dataset header names. Exports carry many more columns; only these are read
// and their order does not matter.
const (
	ColArea          = "area_name_en"
	ColPropertyType  = "property_type_en"
	ColRooms         = "rooms_en"
	ColWorth         = "actual_worth"
	ColDate          = "instance_date"
	ColTransactionID = "transaction_id"
)

var requiredColumns = []string{ColArea, ColPropertyType, ColRooms, ColWorth, ColDate, ColTransactionID}

// Stats summarizes one pass over a dataset file.
type Stats struct {
	Rows    int // data rows read, header excluded
	Kept    int // rows that became transactions
	Dropped int // rows with missing/invalid worth or date, or too few cells
}

// columnIndex maps required columns to their position in a header row.
type columnIndex struct {
	pos  map[string]int
	max  int
	date func(string) (time.Time, error)
}

func newColumnIndex(header []string, date func(string) (time.Time, error)) (columnIndex, error) {
	ci := columnIndex{pos: make(map[string]int, len(requiredColumns)), date: date}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := ci.pos[name]; !dup {
			ci.pos[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		i, ok := ci.pos[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		if i > ci.max {
			ci.max = i
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return ci, nil
}

// toTransaction converts one data row. ok is false when the row must be
// dropped: worth or date absent or unparsable, or a negative/non-finite worth.
func (ci columnIndex) toTransaction(rec []string) (models.Transaction, bool) {
	if len(rec) <= ci.max {
		return models.Transaction{}, false
	}
	cell := func(col string) string { return strings.TrimSpace(rec[ci.pos[col]]) }

	worth, err := strconv.ParseFloat(cell(ColWorth), 64)
	if err != nil || math.IsNaN(worth) || math.IsInf(worth, 0) || worth < 0 {
		return models.Transaction{}, false
	}
	s := cell(ColDate)
	if s == "" {
		return models.Transaction{}, false
	}
	d, err := ci.date(s)
	if err != nil {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Area:          cell(ColArea),
		PropertyType:  cell(ColPropertyType),
		Rooms:         cell(ColRooms),
		Worth:         worth,
		Date:          DateOnly(d),
		TransactionID: cell(ColTransactionID),
	}, true
}
