package pattern

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// ErrUnsupportedFormat is returned for catalog files that are neither CSV nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported pattern catalog format")

// Required CSV columns, matched after normalizeHeader.
const (
	colID             = "patternid"
	colInsight        = "insight"
	colRecommendation = "recommendation"
)

// LoadFile reads a pattern catalog from path. The format is picked from the
// extension: .csv, or .yaml / .yml.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []models.Pattern
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		entries, err = ReadCSV(f)
	case ".yaml", ".yml":
		entries, err = ReadYAML(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("read pattern catalog %s: %w", filepath.Base(path), err)
	}
	return NewCatalog(entries), nil
}

// ReadCSV parses a catalog with a PatternID, Insight and Recommendation
// header. Column order is free and extra columns are ignored; header names
// are matched ignoring case, spaces and underscores ("pattern_id" works).
// Cell text is kept verbatim.
func ReadCSV(r io.Reader) ([]models.Pattern, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{colID: -1, colInsight: -1, colRecommendation: -1}
	for i, h := range header {
		if pos, ok := idx[normalizeHeader(h)]; ok && pos < 0 {
			idx[normalizeHeader(h)] = i
		}
	}
	for _, col := range []string{colID, colInsight, colRecommendation} {
		if idx[col] < 0 {
			return nil, fmt.Errorf("missing column %q in header %v", col, header)
		}
	}

	var out []models.Pattern
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++
		if len(rec) != len(header) {
			return nil, fmt.Errorf("invalid column count on line %d: expected %d got %d", line, len(header), len(rec))
		}
		out = append(out, models.Pattern{
			ID:             rec[idx[colID]],
			Insight:        rec[idx[colInsight]],
			Recommendation: rec[idx[colRecommendation]],
		})
	}
	return out, nil
}

// ReadYAML parses a catalog written as a YAML list of
// {pattern_id, insight, recommendation} mappings.
func ReadYAML(r io.Reader) ([]models.Pattern, error) {
	var out []models.Pattern
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return out, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer("_", "", " ", "").Replace(h)
}
