package service

import (
	"context"
	"errors"

	"github.com/guttosm/dxbpulse/internal/aggregate"
	"github.com/guttosm/dxbpulse/internal/dataset"
	"github.com/guttosm/dxbpulse/internal/domain/models"
	"github.com/guttosm/dxbpulse/internal/filter"
	"github.com/guttosm/dxbpulse/internal/logger"
	"github.com/guttosm/dxbpulse/internal/pattern"
	"github.com/guttosm/dxbpulse/internal/trend"
)

// AnalysisService runs the filter → quarterly → trend → pattern pipeline.
type AnalysisService interface {
	Analyze(ctx context.Context, criteria filter.Criteria) (*models.Analysis, error)
	Options() models.FilterOptions
	Pattern(key string) (models.Pattern, bool)
}

type analysisService struct {
	snapshot *dataset.Snapshot
	catalog  *pattern.Catalog
	engine   *filter.Engine
	matcher  *pattern.Matcher
}

// NewAnalysisService builds the pipeline over a loaded snapshot and catalog.
// maxResults <= 0 uses filter.DefaultMaxResults.
func NewAnalysisService(snapshot *dataset.Snapshot, catalog *pattern.Catalog, maxResults int) AnalysisService {
	return &analysisService{
		snapshot: snapshot,
		catalog:  catalog,
		engine:   filter.NewEngine(maxResults),
		matcher:  pattern.NewMatcher(catalog),
	}
}

// Analyze never returns an error for data outcomes; over capacity and short
// history come back as a status. Only ctx cancellation is an error.
func (s *analysisService) Analyze(ctx context.Context, criteria filter.Criteria) (*models.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := logger.Component("pipeline")
	out := &models.Analysis{Limit: s.engine.Limit()}

	rows, err := s.engine.Apply(s.snapshot.Rows(), criteria)
	if err != nil {
		var oc *filter.OverCapacityError
		if errors.As(err, &oc) {
			out.Status = models.StatusOverCapacity
			out.MatchedCount = oc.Count
			log.Info().Int("matched", oc.Count).Int("limit", oc.Limit).Msg("over capacity")
			return out, nil
		}
		return nil, err
	}
	out.MatchedCount = len(rows)
	log.Debug().Int("matched", len(rows)).Msg("filtered")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out.Quarters = aggregate.Quarterly(rows)
	log.Debug().Int("quarters", len(out.Quarters)).Msg("aggregated")

	tr, err := trend.Analyze(out.Quarters)
	if errors.Is(err, trend.ErrInsufficientData) {
		out.Status = models.StatusInsufficientData
		log.Info().Int("matched", out.MatchedCount).Int("quarters", len(out.Quarters)).Msg("insufficient data")
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	m := s.matcher.Match(tr.Signature)
	out.Status = models.StatusOK
	out.Trend = &tr
	out.Match = &m
	log.Info().Str("key", m.Key).Bool("pattern_matched", m.Matched).Int("matched", out.MatchedCount).Msg("analysis done")
	return out, nil
}

func (s *analysisService) Options() models.FilterOptions {
	return s.snapshot.Options()
}

func (s *analysisService) Pattern(key string) (models.Pattern, bool) {
	return s.catalog.Lookup(key)
}
