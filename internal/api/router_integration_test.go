//go:build integration
// +build integration

package api_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/dxbpulse/config"
	"github.com/guttosm/dxbpulse/db"
	"github.com/guttosm/dxbpulse/internal/app"
	"github.com/guttosm/dxbpulse/internal/domain/dto"
	"github.com/guttosm/dxbpulse/internal/ingestion"
)

func startPG(t *testing.T) (dsn string, host string, port nat.Port, terminate func()) {
	t.Helper()
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "dxbpulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(h string, p nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=dxbpulse sslmode=disable", h, p.Port())
		}).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container: %v", err)
	}
	h, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", h, mp.Port(), "dxbpulse")
	terminate = func() { _ = c.Terminate(context.Background()) }
	return dsn, h, mp, terminate
}

func openAndMigrate(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	database, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := database.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

// seedFiles writes five quarters of Dubai Marina sales with rising prices and
// falling volume, plus a catalog holding that signature.
func seedFiles(t *testing.T) (datasetPath, catalogPath string) {
	t.Helper()
	dir := t.TempDir()
	content := "transaction_id,instance_date,area_name_en,property_type_en,rooms_en,actual_worth\n"
	id := 0
	for q := 0; q < 5; q++ {
		month := time.Date(2023, time.Month(1+3*q), 15, 0, 0, 0, 0, time.UTC)
		for n := 0; n < 10-q; n++ {
			id++
			content += fmt.Sprintf("%d,%s,Dubai Marina,Unit,1 B/R,%d\n", id, month.Format("2006-01-02"), 1000000+q*50000)
		}
	}
	datasetPath = filepath.Join(dir, "transactions.csv")
	if err := os.WriteFile(datasetPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	catalogPath = filepath.Join(dir, "PatternMatrix.csv")
	catalog := "PatternID,Insight,Recommendation\nUp-Up-Down-Down,Prices up on thinner volume,Negotiate hard\n"
	if err := os.WriteFile(catalogPath, []byte(catalog), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return datasetPath, catalogPath
}

func TestAPI_E2E_Analysis_PostgresSource(t *testing.T) {
	dsn, host, port, term := startPG(t)
	defer term()
	database := openAndMigrate(t, dsn)
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ds, cat := seedFiles(t)
	if err := ingestion.ProcessFiles(ctx, database, ingestion.Options{DatasetPaths: []string{ds}, PatternsPath: cat}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	// Point application config to containerized DB
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	p, _ := nat.ParsePort(port.Port())
	config.AppConfig = config.Config{
		Server: config.ServerConfig{Port: "0", RateLimitPerMinute: 100},
		Postgres: config.PostgresConfig{
			Host: host, Port: p, User: "postgres", Password: "postgres", DBName: "dxbpulse", SSLMode: "disable",
		},
		Dataset:  config.DatasetConfig{Source: config.SourcePostgres},
		Analysis: config.AnalysisConfig{MaxResults: 1000},
	}

	router, cleanup, err := app.InitializeApp(ctx)
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", bytes.NewBufferString(`{"areas":["Dubai Marina"],"start_date":"2023-01-01"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var body dto.AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.MatchedCount != 40 || body.PatternKey != "Up-Up-Down-Down" || !body.Pattern.Matched {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Metrics.YoYFallback || body.Metrics.YearAgoQuarter != "2023-Q1" {
		t.Fatalf("expected a real year-ago quarter, got %+v", body.Metrics)
	}
}
