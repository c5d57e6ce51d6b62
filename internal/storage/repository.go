package storage

import (
	"context"
	"database/sql"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/dxbpulse/internal/domain/models"
)

// Ingestion log kinds.
const (
	KindTransactions = "transactions"
	KindPatterns     = "patterns"
)

// Repository defines the contract for reference-data persistence.
type Repository interface {
	InsertTransactionsBatch(source string, rows []models.Transaction) error
	DeleteTransactionsBySource(source string) error
	ReplacePatterns(patterns []models.Pattern) error
	HasIngestionForSource(source string) (bool, error)
	UpsertIngestionLog(source, kind string, rowCount, droppedCount int) error
	LoadTransactions(ctx context.Context) ([]models.Transaction, error)
	LoadPatterns(ctx context.Context) ([]models.Pattern, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// InsertTransactionsBatch copies rows into transactions in a single transaction,
// tagging each with the file it came from.
func (r *repository) InsertTransactionsBatch(source string, rows []models.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"transactions",
		"source",
		"transaction_id",
		"area",
		"property_type",
		"rooms",
		"worth",
		"transaction_date",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range rows {
		if _, err := stmt.Exec(
			source,
			rec.TransactionID,
			rec.Area,
			rec.PropertyType,
			rec.Rooms,
			rec.Worth,
			rec.Date,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// DeleteTransactionsBySource removes every row previously ingested from source.
func (r *repository) DeleteTransactionsBySource(source string) error {
	_, err := r.db.Exec(`DELETE FROM transactions WHERE source = $1`, source)
	return err
}

// ReplacePatterns swaps the whole catalog atomically, keeping the given order.
func (r *repository) ReplacePatterns(patterns []models.Pattern) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM patterns`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn("patterns", "pattern_id", "insight", "recommendation"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, p := range patterns {
		if _, err := stmt.Exec(p.ID, p.Insight, p.Recommendation); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasIngestionForSource checks if a file was already ingested.
func (r *repository) HasIngestionForSource(source string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE source = $1)`, source).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a file.
func (r *repository) UpsertIngestionLog(source, kind string, rowCount, droppedCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (source, kind, row_count, dropped_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (source)
		DO UPDATE SET kind = EXCLUDED.kind,
					  row_count = EXCLUDED.row_count,
					  dropped_count = EXCLUDED.dropped_count,
					  ingested_at = NOW()
	`, source, kind, rowCount, droppedCount)
	return err
}

// LoadTransactions reads the full dataset in insertion order.
func (r *repository) LoadTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT area, property_type, rooms, worth, transaction_date, transaction_id
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var d time.Time
		if err := rows.Scan(&t.Area, &t.PropertyType, &t.Rooms, &t.Worth, &d, &t.TransactionID); err != nil {
			return nil, err
		}
		y, m, dd := d.Date()
		t.Date = time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
		out = append(out, t)
	}
	return out, rows.Err()
}

// LoadPatterns reads the catalog in the order it was written.
func (r *repository) LoadPatterns(ctx context.Context) ([]models.Pattern, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT pattern_id, insight, recommendation FROM patterns ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Pattern
	for rows.Next() {
		var p models.Pattern
		if err := rows.Scan(&p.ID, &p.Insight, &p.Recommendation); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
