package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/dxbpulse/internal/logger"
	"github.com/guttosm/dxbpulse/internal/storage"
)

const (
	defaultBatchSize = 5000
	maxParallelFiles = 4
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.Repository {
	return storage.NewRepository(db)
}

// Options selects what ProcessFiles loads.
type Options struct {
	DatasetPaths []string // .csv or .xlsx transaction exports
	PatternsPath string   // .csv or .yaml catalog; empty skips the catalog
	BatchSize    int      // rows per COPY batch; <= 0 uses defaultBatchSize
	Parallel     int      // concurrent dataset files; <= 0 uses min(4, NumCPU)
	Force        bool     // re-ingest files already recorded in ingestion_log
}

// ProcessFiles loads dataset files and the pattern catalog into Postgres.
//
// Behavior:
//   - Every input file must exist; missing files fail before anything is written.
//   - Each file is keyed in ingestion_log by its base name, so two inputs
//     with the same base name are refused up front. Files already logged
//     are skipped unless opts.Force is set.
//   - Dataset files are streamed and inserted in batches, in parallel.
//   - The catalog replaces the patterns table as a whole.
//   - The first error cancels the remaining files and is returned.
func ProcessFiles(ctx context.Context, db *sql.DB, opts Options) error {
	if len(opts.DatasetPaths) == 0 && opts.PatternsPath == "" {
		return errors.New("nothing to ingest: no dataset or pattern files given")
	}

	all := append([]string{}, opts.DatasetPaths...)
	if opts.PatternsPath != "" {
		all = append(all, opts.PatternsPath)
	}
	var missing []string
	for _, p := range all {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, p)
				continue
			}
			return fmt.Errorf("stat failed for %s: %w", p, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %v", missing)
	}

	// Base names key both transactions.source and ingestion_log.
	seen := make(map[string]string, len(all))
	for _, p := range all {
		base := filepath.Base(p)
		if prev, ok := seen[base]; ok {
			return fmt.Errorf("duplicate source name %q: %s and %s", base, prev, p)
		}
		seen[base] = p
	}

	// use indirection to allow tests to swap repository constructor
	repo := repoCtor(db)

	batch := opts.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	maxParallel := maxParallelFiles
	if opts.Parallel > 0 {
		maxParallel = opts.Parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().
		Int("datasets", len(opts.DatasetPaths)).
		Bool("patterns", opts.PatternsPath != "").
		Int("max_parallel", maxParallel).
		Msg("ingestion start")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel + 1)

	if opts.PatternsPath != "" {
		path := opts.PatternsPath
		g.Go(func() error {
			return ingestPatterns(repo, path, opts.Force)
		})
	}

	for i, p := range opts.DatasetPaths {
		idx, path := i, p
		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(path)
			log := logger.L().With().Int("idx", idx+1).Int("total", len(opts.DatasetPaths)).Str("file", base).Logger()
			log.Info().Msg("file start")

			// Idempotency: skip if already ingested, unless force
			exists, err := repo.HasIngestionForSource(base)
			if err != nil {
				log.Error().Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", path, err)
			}
			if exists && !opts.Force {
				log.Info().Bool("skipped", true).Msg("already ingested")
				return nil
			}

			// Clears a previous forced load as well as leftovers of a failed run.
			if err := repo.DeleteTransactionsBySource(base); err != nil {
				log.Error().Err(err).Msg("delete existing failed")
				return fmt.Errorf("file %s: delete existing: %w", path, err)
			}

			st, err := persistDataset(gctx, path, base, repo, batch)
			if err != nil {
				log.Error().Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", path, err)
			}
			if err := repo.UpsertIngestionLog(base, storage.KindTransactions, st.Kept, st.Dropped); err != nil {
				log.Error().Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("file %s: upsert ingestion log: %w", path, err)
			}
			log.Info().Int("rows", st.Kept).Int("dropped", st.Dropped).Dur("elapsed", time.Since(start)).Bool("force", opts.Force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}
