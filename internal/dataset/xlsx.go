package dataset

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// ScanXLSX streams the first worksheet of an Excel workbook with the same
// rules as ScanCSV. Cells are read raw, so date cells arrive as Excel serial
// numbers and are converted here; text dates go through ParseDate.
func ScanXLSX(ctx context.Context, r io.Reader, fn func(models.Transaction) error) (Stats, error) {
	var st Stats

	f, err := excelize.OpenReader(r)
	if err != nil {
		return st, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return st, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		return st, fmt.Errorf("open sheet %q: %w", sheets[0], err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Error(); err != nil {
			return st, fmt.Errorf("read header: %w", err)
		}
		return st, fmt.Errorf("read header: sheet %q is empty", sheets[0])
	}
	header, err := rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		return st, fmt.Errorf("read header: %w", err)
	}
	ci, err := newColumnIndex(header, parseExcelDate)
	if err != nil {
		return st, err
	}

	line := 1
	for rows.Next() {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		default:
		}

		rec, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return st, fmt.Errorf("read row after %d: %w", line, err)
		}
		line++
		if len(rec) == 0 {
			continue
		}
		st.Rows++

		tr, ok := ci.toTransaction(rec)
		if !ok {
			st.Dropped++
			continue
		}
		if err := fn(tr); err != nil {
			return st, fmt.Errorf("row %d: %w", line, err)
		}
		st.Kept++
	}
	if err := rows.Error(); err != nil {
		return st, fmt.Errorf("read rows: %w", err)
	}
	return st, nil
}

func parseExcelDate(s string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	return ParseDate(s)
}
