package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/dxbpulse/internal/dataset"
	"github.com/guttosm/dxbpulse/internal/domain/models"
	"github.com/guttosm/dxbpulse/internal/logger"
	"github.com/guttosm/dxbpulse/internal/pattern"
)

// ErrEmptyDataset is returned when the source holds no valid transaction.
var ErrEmptyDataset = errors.New("dataset has no valid transactions")

// Source provides the reference data the pipeline runs on.
// storage.Repository satisfies it for the Postgres source.
type Source interface {
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	LoadPatterns(ctx context.Context) ([]models.Pattern, error)
}

type fileSource struct {
	datasetPath  string
	patternsPath string
}

// NewFileSource reads the dataset (.csv/.xlsx) and catalog (.csv/.yaml) from disk.
func NewFileSource(datasetPath, patternsPath string) Source {
	return &fileSource{datasetPath: datasetPath, patternsPath: patternsPath}
}

func (s *fileSource) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, _, err := dataset.LoadFile(ctx, s.datasetPath)
	return rows, err
}

func (s *fileSource) LoadPatterns(_ context.Context) ([]models.Pattern, error) {
	catalog, err := pattern.LoadFile(s.patternsPath)
	if err != nil {
		return nil, err
	}
	return catalog.Entries(), nil
}

// LoadReferenceData loads the dataset and the catalog concurrently and builds
// the shared read-only snapshot and catalog. The first failure cancels the
// other load.
func LoadReferenceData(ctx context.Context, src Source) (*dataset.Snapshot, *pattern.Catalog, error) {
	start := time.Now()
	var (
		rows     []models.Transaction
		patterns []models.Pattern
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if rows, err = src.LoadTransactions(gctx); err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if patterns, err = src.LoadPatterns(gctx); err != nil {
			return fmt.Errorf("load patterns: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	snap := dataset.NewSnapshot(rows)
	catalog := pattern.NewCatalog(patterns)
	if catalog.Len() == 0 {
		logger.L().Warn().Msg("pattern catalog is empty; every analysis will report no pattern")
	}
	logger.L().Info().
		Int("transactions", snap.Len()).
		Int("patterns", catalog.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("reference data loaded")
	return snap, catalog, nil
}
