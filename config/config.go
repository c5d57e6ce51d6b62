package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Dataset sources.
const (
	SourceFile     = "file"     // read dataset and pattern catalog from local files
	SourcePostgres = "postgres" // read both from Postgres (populated by --mode ingest)
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	RATE_LIMIT_PER_MINUTE=60
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=dxbpulse
//	POSTGRES_SSLMODE=disable
//	DATASET_SOURCE=file
//	DATASET_PATH=./data/transactions.csv
//	PATTERNS_PATH=./data/PatternMatrix.csv
//	MAX_RESULTS=300000
//	INGEST_BATCH_SIZE=5000
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Dataset  DatasetConfig  // where reference data is read from
	Analysis AnalysisConfig // pipeline limits
	Ingest   IngestConfig   // file → Postgres loading
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // The TCP port the HTTP server will listen on (e.g., "8080")
	RateLimitPerMinute int    // Requests per client IP per minute
}

// PostgresConfig defines connection details for PostgreSQL.
//
// URL is the computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// DatasetConfig selects the reference data source.
//
// With Source=file, Path and PatternsPath point at the transactions file
// (.csv or .xlsx) and the pattern catalog (.csv, .yaml or .yml). With
// Source=postgres both are read from the database and the paths are only
// used by the ingest mode.
type DatasetConfig struct {
	Source       string
	Path         string
	PatternsPath string
}

// AnalysisConfig bounds the pipeline.
type AnalysisConfig struct {
	MaxResults int // filtered rows above this are refused (over capacity)
}

// IngestConfig tunes file ingestion.
type IngestConfig struct {
	BatchSize int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "dxbpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("DATASET_SOURCE", SourceFile)
	viper.SetDefault("DATASET_PATH", "./data/transactions.csv")
	viper.SetDefault("PATTERNS_PATH", "./data/PatternMatrix.csv")
	viper.SetDefault("MAX_RESULTS", 300000)
	viper.SetDefault("INGEST_BATCH_SIZE", 5000)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Dataset: DatasetConfig{
			Source:       strings.ToLower(strings.TrimSpace(viper.GetString("DATASET_SOURCE"))),
			Path:         viper.GetString("DATASET_PATH"),
			PatternsPath: viper.GetString("PATTERNS_PATH"),
		},
		Analysis: AnalysisConfig{
			MaxResults: viper.GetInt("MAX_RESULTS"),
		},
		Ingest: IngestConfig{
			BatchSize: viper.GetInt("INGEST_BATCH_SIZE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the postgres:// connection string for database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// problems lists every missing or invalid setting of c.
func (c Config) problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if c.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if c.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if c.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	switch c.Dataset.Source {
	case SourceFile:
		if c.Dataset.Path == "" {
			missing = append(missing, "DATASET_PATH")
		}
		if c.Dataset.PatternsPath == "" {
			missing = append(missing, "PATTERNS_PATH")
		}
	case SourcePostgres:
	default:
		missing = append(missing, "DATASET_SOURCE (file|postgres)")
	}
	if c.Analysis.MaxResults <= 0 {
		missing = append(missing, "MAX_RESULTS")
	}
	if c.Ingest.BatchSize <= 0 {
		missing = append(missing, "INGEST_BATCH_SIZE")
	}

	return missing
}

// validateConfig terminates the application when AppConfig is incomplete.
func validateConfig() {
	if missing := AppConfig.problems(); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
