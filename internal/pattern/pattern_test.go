package pattern

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

const sampleCSV = "PatternID,Insight,Recommendation\n" +
	"Up-Up-Up-Up,\"Strong momentum, prices and volumes rising\",Consider buying before further appreciation.\n" +
	"Down-Down-Down-Down,Broad cooling,Wait for stabilisation.\n" +
	"Up-Up-Up-Up,Duplicate row,Should never be returned.\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestReadCSV_TableDriven(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr bool
		wantLen int
	}{
		{name: "ok", content: sampleCSV, wantLen: 3},
		{name: "snake case header, reordered", content: "insight,pattern_id,recommendation\nx,Up-Up-Up-Up,y\n", wantLen: 1},
		{name: "bom header", content: "\ufeffPatternID,Insight,Recommendation\nA,B,C\n", wantLen: 1},
		{name: "header only", content: "PatternID,Insight,Recommendation\n", wantLen: 0},
		{name: "missing column", content: "PatternID,Insight\nA,B\n", wantErr: true},
		{name: "bad column count", content: "PatternID,Insight,Recommendation\nA,B\n", wantErr: true},
		{name: "empty file", content: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := ReadCSV(strings.NewReader(tc.content))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(out) != tc.wantLen {
				t.Fatalf("want %d rows, got %d", tc.wantLen, len(out))
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	doc := `
- pattern_id: Up-Down-Flat-Up
  insight: Prices rising on thin volume
  recommendation: Negotiate hard.
- pattern_id: Flat-Flat-Flat-Flat
  insight: Stagnant market
  recommendation: Hold.
`
	out, err := ReadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if len(out) != 2 || out[0].ID != "Up-Down-Flat-Up" || out[1].Recommendation != "Hold." {
		t.Fatalf("unexpected %+v", out)
	}

	if _, err := ReadYAML(strings.NewReader("- pattern: x\n")); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if out, err := ReadYAML(strings.NewReader("")); err != nil || out != nil {
		t.Fatalf("empty doc: out=%v err=%v", out, err)
	}
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile(writeTemp(t, "PatternMatrix.csv", sampleCSV))
	if err != nil || c.Len() != 3 {
		t.Fatalf("csv: len=%d err=%v", c.Len(), err)
	}

	y := writeTemp(t, "patterns.yml", "- pattern_id: A\n  insight: B\n  recommendation: C\n")
	if c, err := LoadFile(y); err != nil || c.Len() != 1 {
		t.Fatalf("yaml: err=%v", err)
	}

	if _, err := LoadFile(writeTemp(t, "patterns.json", "[]")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMatcher_Match(t *testing.T) {
	entries, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	m := NewMatcher(NewCatalog(entries))

	up := models.Signature{models.Up, models.Up, models.Up, models.Up}
	got := m.Match(up)
	if !got.Matched || got.Key != "Up-Up-Up-Up" {
		t.Fatalf("expected match, got %+v", got)
	}
	if got.Pattern.Insight != "Strong momentum, prices and volumes rising" || got.Pattern.Recommendation != "Consider buying before further appreciation." {
		t.Fatalf("first row must be returned verbatim, got %+v", got.Pattern)
	}
	if got.Message() != "" {
		t.Fatalf("matched result should have no message")
	}

	flat := models.Signature{models.Flat, models.Flat, models.Flat, models.Flat}
	miss := m.Match(flat)
	if miss.Matched || miss.Key != "Flat-Flat-Flat-Flat" || miss.Pattern != (models.Pattern{}) {
		t.Fatalf("expected no match, got %+v", miss)
	}
	if miss.Message() != "no pattern found for Flat-Flat-Flat-Flat" {
		t.Fatalf("unexpected message %q", miss.Message())
	}
}

func TestCatalog_LookupIsExact(t *testing.T) {
	c := NewCatalog([]models.Pattern{{ID: "Up-Up-Up-Up", Insight: "i", Recommendation: "r"}})
	for _, k := range []string{"up-up-up-up", "Up-Up-Up-Up ", "Up_Up_Up_Up", "Up-Up-Up"} {
		if _, ok := c.Lookup(k); ok {
			t.Fatalf("key %q must not match", k)
		}
	}
	if _, ok := c.Lookup("Up-Up-Up-Up"); !ok {
		t.Fatalf("exact key must match")
	}
	var nilCatalog *Catalog
	if _, ok := nilCatalog.Lookup("Up-Up-Up-Up"); ok || nilCatalog.Len() != 0 {
		t.Fatalf("nil catalog must be empty")
	}
}
