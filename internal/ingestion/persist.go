package ingestion

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/guttosm/dxbpulse/internal/dataset"
	"github.com/guttosm/dxbpulse/internal/domain/models"
	"github.com/guttosm/dxbpulse/internal/logger"
	"github.com/guttosm/dxbpulse/internal/pattern"
	"github.com/guttosm/dxbpulse/internal/storage"
)

// persistDataset streams one dataset file into the repository in batches of
// at most batch rows. Invalid rows are dropped by the dataset reader and
// only counted.
func persistDataset(ctx context.Context, path, source string, repo storage.Repository, batch int) (dataset.Stats, error) {
	buf := make([]models.Transaction, 0, batch)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertTransactionsBatch(source, buf); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}
		buf = buf[:0]
		return nil
	}

	st, err := dataset.Scan(ctx, path, func(t models.Transaction) error {
		buf = append(buf, t)
		if len(buf) >= batch {
			return flush()
		}
		return nil
	})
	if err != nil {
		return st, err
	}
	if err := flush(); err != nil {
		return st, err
	}
	return st, nil
}

// ingestPatterns replaces the stored catalog with the one at path.
func ingestPatterns(repo storage.Repository, path string, force bool) error {
	base := filepath.Base(path)

	exists, err := repo.HasIngestionForSource(base)
	if err != nil {
		return fmt.Errorf("catalog %s: check ingestion log: %w", path, err)
	}
	if exists && !force {
		logger.L().Info().Str("file", base).Bool("skipped", true).Msg("already ingested")
		return nil
	}

	catalog, err := pattern.LoadFile(path)
	if err != nil {
		return err
	}
	if err := repo.ReplacePatterns(catalog.Entries()); err != nil {
		return fmt.Errorf("catalog %s: replace patterns: %w", path, err)
	}
	if err := repo.UpsertIngestionLog(base, storage.KindPatterns, catalog.Len(), 0); err != nil {
		return fmt.Errorf("catalog %s: upsert ingestion log: %w", path, err)
	}
	logger.L().Info().Str("file", base).Int("patterns", catalog.Len()).Msg("catalog done")
	return nil
}
