package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guttosm/dxbpulse/internal/api"
	"github.com/guttosm/dxbpulse/internal/domain/dto"
	"github.com/guttosm/dxbpulse/internal/service"
)

// listFlag is a repeatable flag; each occurrence adds one value as given,
// so names containing commas stay intact.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, "|") }

func (l *listFlag) Set(v string) error {
	if v = strings.TrimSpace(v); v != "" {
		*l = append(*l, v)
	}
	return nil
}

// analyzeFlags are the filter flags of --mode analyze.
type analyzeFlags struct {
	areas     listFlag
	types     listFlag
	rooms     listFlag
	maxBudget string
	from      string
	to        string
}

func (f *analyzeFlags) register(fs *flag.FlagSet) {
	fs.Var(&f.areas, "areas", "Area to include; repeat for several (none = all)")
	fs.Var(&f.types, "types", "Property type to include; repeat for several (none = all)")
	fs.Var(&f.rooms, "rooms", "Room category to include; repeat for several (none = all)")
	fs.StringVar(&f.maxBudget, "max-budget", "", "Maximum worth (empty = dataset maximum)")
	fs.StringVar(&f.from, "from", "", "Start date YYYY-MM-DD (empty = earliest)")
	fs.StringVar(&f.to, "to", "", "End date YYYY-MM-DD (empty = latest)")
}

func (f analyzeFlags) request() (dto.AnalysisRequest, error) {
	req := dto.AnalysisRequest{
		Areas:         f.areas,
		PropertyTypes: f.types,
		Rooms:         f.rooms,
		StartDate:     f.from,
		EndDate:       f.to,
	}
	if s := strings.TrimSpace(f.maxBudget); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return req, fmt.Errorf("invalid --max-budget %q: %w", f.maxBudget, err)
		}
		req.MaxBudget = &v
	}
	return req, nil
}

// runAnalyze runs one analysis and writes the API response shape as JSON.
// Over capacity is reported in the JSON, not as an error.
func runAnalyze(ctx context.Context, svc service.AnalysisService, f analyzeFlags, out io.Writer) error {
	req, err := f.request()
	if err != nil {
		return err
	}
	criteria, err := api.BuildCriteria(req, svc.Options())
	if err != nil {
		return err
	}
	res, err := svc.Analyze(ctx, criteria)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewAnalysisResponse(res))
}

// splitList splits the comma-separated --files flag, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
