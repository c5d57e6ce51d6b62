package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// ScanCSV streams a comma separated dataset, calling fn for every valid row.
//
// It fails on:
//   - a header lacking any required column
//   - malformed CSV / I/O errors
//   - an error returned by fn, or ctx cancellation
//
// It tolerates (and counts as dropped):
//   - rows with an empty or invalid worth or date
//   - rows too short to hold the required columns
func ScanCSV(ctx context.Context, r io.Reader, fn func(models.Transaction) error) (Stats, error) {
	var st Stats

	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return st, fmt.Errorf("read header: %w", err)
	}
	ci, err := newColumnIndex(header, ParseDate)
	if err != nil {
		return st, err
	}

	line := 1
	for {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		default:
		}

		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return st, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++
		st.Rows++

		tr, ok := ci.toTransaction(rec)
		if !ok {
			st.Dropped++
			continue
		}
		if err := fn(tr); err != nil {
			return st, fmt.Errorf("line %d: %w", line, err)
		}
		st.Kept++
	}
	return st, nil
}
