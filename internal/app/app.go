package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/dxbpulse/config"
	"github.com/guttosm/dxbpulse/internal/api"
	"github.com/guttosm/dxbpulse/internal/dataset"
	"github.com/guttosm/dxbpulse/internal/middleware"
	"github.com/guttosm/dxbpulse/internal/service"
	"github.com/guttosm/dxbpulse/internal/storage"
)

// Runtime is the wired pipeline plus what readiness needs to know about it.
type Runtime struct {
	Service  service.AnalysisService
	Snapshot *dataset.Snapshot
	db       *sql.DB
}

// Ready reports whether the service can answer analysis requests.
func (r *Runtime) Ready() error {
	if r.Snapshot == nil || r.Snapshot.Len() == 0 {
		return errors.New("dataset not loaded")
	}
	if r.db != nil {
		if err := r.db.Ping(); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

// Close releases the database connection, if any.
func (r *Runtime) Close() {
	if r.db != nil {
		_ = r.db.Close()
	}
}

// InitializeService loads the reference data from the configured source and
// builds the analysis pipeline over it.
//
// Responsibilities:
//   - Opens PostgreSQL when DATASET_SOURCE=postgres, otherwise reads files.
//   - Loads dataset and catalog once (LoadReferenceData).
//   - Creates the AnalysisService with the configured result ceiling.
func InitializeService(ctx context.Context) (*Runtime, error) {
	cfg := config.AppConfig

	var (
		src Source
		db  *sql.DB
	)
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		var err error
		// indirection for unit testing
		db, err = postgresOpener(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		src = storage.NewRepository(db)
	default:
		src = NewFileSource(cfg.Dataset.Path, cfg.Dataset.PatternsPath)
	}

	snap, catalog, err := LoadReferenceData(ctx, src)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	return &Runtime{
		Service:  service.NewAnalysisService(snap, catalog, cfg.Analysis.MaxResults),
		Snapshot: snap,
		db:       db,
	}, nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the pipeline with InitializeService().
//   - Applies the configured rate limit.
//   - Creates the HTTP handler layer and the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	rt, err := InitializeService(ctx)
	if err != nil {
		return nil, nil, err
	}

	middleware.ConfigureRateLimit(config.AppConfig.Server.RateLimitPerMinute, time.Minute)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(rt.Service)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(rt.Ready)
	healthHandler.Register(router)

	return router, rt.Close, nil
}
