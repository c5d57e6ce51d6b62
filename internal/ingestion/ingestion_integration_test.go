//go:build integration
// +build integration

package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/dxbpulse/db"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
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
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=dxbpulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "dxbpulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	database, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return database
}

func TestIngestion_EndToEnd_ProcessFiles(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	database := openDB(t, dsn)
	defer database.Close()
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	dir := t.TempDir()
	ds := filepath.Join(dir, "transactions.csv")
	content := "transaction_id,instance_date,area_name_en,property_type_en,rooms_en,actual_worth\n"
	for i := 0; i < 7; i++ {
		content += fmt.Sprintf("%d,2024-%02d-10,Dubai Marina,Unit,1 B/R,%d\n", i, i+1, 900000+i*1000)
	}
	if err := os.WriteFile(ds, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	cat := filepath.Join(dir, "patterns.yaml")
	yml := "- pattern_id: Up-Up-Up-Up\n  insight: rising\n  recommendation: buy\n"
	if err := os.WriteFile(cat, []byte(yml), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	opts := Options{DatasetPaths: []string{ds}, PatternsPath: cat, BatchSize: 3}
	if err := ProcessFiles(ctx, database, opts); err != nil {
		t.Fatalf("ProcessFiles: %v", err)
	}
	// second run is a no-op; forced run replaces instead of duplicating
	if err := ProcessFiles(ctx, database, opts); err != nil {
		t.Fatalf("ProcessFiles again: %v", err)
	}
	opts.Force = true
	if err := ProcessFiles(ctx, database, opts); err != nil {
		t.Fatalf("ProcessFiles force: %v", err)
	}

	var cnt int
	if err := database.QueryRow("SELECT COUNT(*) FROM transactions WHERE source=$1", "transactions.csv").Scan(&cnt); err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if cnt != 7 {
		t.Fatalf("expected 7 transactions, got %d", cnt)
	}
	if err := database.QueryRow("SELECT COUNT(*) FROM patterns").Scan(&cnt); err != nil {
		t.Fatalf("count patterns: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected 1 pattern, got %d", cnt)
	}

	var rows int
	if err := database.QueryRow("SELECT row_count FROM ingestion_log WHERE source=$1", "transactions.csv").Scan(&rows); err != nil {
		t.Fatalf("check ingestion_log: %v", err)
	}
	if rows != 7 {
		t.Fatalf("expected row_count 7, got %d", rows)
	}
}
