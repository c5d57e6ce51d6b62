package main

//
//  @title           dxbpulse API
//  @version         1.0
//  @description     Dubai real-estate transaction trends: quarterly price and volume signals matched against a pattern catalog.
//  @termsOfService  https://github.com/guttosm/dxbpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/dxbpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        analysis
//  @tag.description Filter transactions and compute trend signals
//
//  @tag.name        patterns
//  @tag.description Pattern catalog lookups
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/dxbpulse/config"
	"github.com/guttosm/dxbpulse/db"
	_ "github.com/guttosm/dxbpulse/docs" // swagger docs
	"github.com/guttosm/dxbpulse/internal/app"
	"github.com/guttosm/dxbpulse/internal/ingestion"
	"github.com/guttosm/dxbpulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the dxbpulse application.
//
// Modes (selected via --mode flag):
//   - api:     Loads the reference data and serves the REST API.
//   - analyze: Runs one analysis with the filter flags and prints JSON to stdout.
//   - ingest:  Loads dataset files and the pattern catalog into Postgres.
//   - migrate: Applies the embedded database migrations.
//
// Flags:
//   - --mode: Execution mode. Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
//   - --files, --patterns, --force, --parallel: ingest inputs (default: DATASET_PATH, PATTERNS_PATH).
//   - --areas, --types, --rooms (repeatable), --max-budget, --from, --to: analyze filters.
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, analyze, ingest or migrate")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	files := flag.String("files", config.AppConfig.Dataset.Path, "Comma-separated dataset files to ingest (.csv, .xlsx)")
	patterns := flag.String("patterns", config.AppConfig.Dataset.PatternsPath, "Pattern catalog to ingest (.csv, .yaml); empty skips it")
	force := flag.Bool("force", false, "Re-ingest files already recorded in the ingestion log")
	parallel := flag.Int("parallel", 0, "How many dataset files to ingest concurrently (0=auto)")
	var af analyzeFlags
	af.register(flag.CommandLine)
	flag.Parse()

	switch *mode {
	case "api":
		logger.L().Info().Str("source", config.AppConfig.Dataset.Source).Msg("starting API server")

		router, cleanup, err := app.InitializeApp(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "analyze":
		rt, err := app.InitializeService(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer rt.Close()

		if err := runAnalyze(ctx, rt.Service, af, os.Stdout); err != nil {
			logger.L().Fatal().Err(err).Msg("analysis failed")
		}

	case "ingest":
		logger.L().Info().Msg("running ingestion")

		// Direct DB connection for ingestion
		conn, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = conn.Close() }()

		opts := ingestion.Options{
			DatasetPaths: splitList(*files),
			PatternsPath: *patterns,
			BatchSize:    config.AppConfig.Ingest.BatchSize,
			Parallel:     *parallel,
			Force:        *force,
		}
		if err := ingestion.ProcessFiles(ctx, conn, opts); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "migrate":
		conn, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = conn.Close() }()

		if err := db.Migrate(conn); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}
		logger.L().Info().Msg("migrations applied")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
