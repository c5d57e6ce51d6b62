package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/dxbpulse/internal/domain/models"
	"github.com/guttosm/dxbpulse/internal/logger"
)

// ErrUnsupportedFormat is returned for dataset files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Scan streams the dataset file at path into fn, picking the reader from the
// file extension (.csv or .xlsx).
func Scan(ctx context.Context, path string, fn func(models.Transaction) error) (Stats, error) {
	scan, err := scannerFor(path)
	if err != nil {
		return Stats{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	st, err := scan(ctx, f, fn)
	if err != nil {
		return st, fmt.Errorf("dataset %s: %w", filepath.Base(path), err)
	}
	if st.Dropped > 0 {
		logger.L().Warn().Str("file", filepath.Base(path)).Int("dropped", st.Dropped).Int("rows", st.Rows).Msg("dropped invalid dataset rows")
	}
	return st, nil
}

// LoadFile reads every valid transaction of the dataset at path into memory.
func LoadFile(ctx context.Context, path string) ([]models.Transaction, Stats, error) {
	var rows []models.Transaction
	st, err := Scan(ctx, path, func(t models.Transaction) error {
		rows = append(rows, t)
		return nil
	})
	if err != nil {
		return nil, st, err
	}
	return rows, st, nil
}

type scanFunc func(context.Context, *os.File, func(models.Transaction) error) (Stats, error)

func scannerFor(path string) (scanFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return func(ctx context.Context, f *os.File, fn func(models.Transaction) error) (Stats, error) {
			return ScanCSV(ctx, f, fn)
		}, nil
	case ".xlsx":
		return func(ctx context.Context, f *os.File, fn func(models.Transaction) error) (Stats, error) {
			return ScanXLSX(ctx, f, fn)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}
