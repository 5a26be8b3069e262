// Package sqlite persists an append-only history of produced analysis and
// prediction results. Writes are best-effort; the engine never blocks on or
// fails from recorder errors.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"stock-advisor/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// RecorderConfig configures the SQLite recorder.
type RecorderConfig struct {
	DBPath string // path to SQLite database file, e.g. "data/advisor.db"
}

// Recorder is a SQLite-backed model.Recorder.
type Recorder struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (r *Recorder) DB() *sql.DB { return r.db }

// New opens the database in WAL mode and creates the schema.
func New(cfg RecorderConfig) (*Recorder, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single writer keeps WAL contention away.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened database at %s", cfg.DBPath)
	return &Recorder{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			symbol         TEXT    NOT NULL,
			ts             INTEGER NOT NULL,
			bar_count      INTEGER NOT NULL,
			recommendation TEXT    NOT NULL,
			confidence     TEXT    NOT NULL,
			strategies     TEXT,
			notes          TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, ts);

		CREATE TABLE IF NOT EXISTS predictions (
			symbol       TEXT    NOT NULL,
			ts           INTEGER NOT NULL,
			bar_count    INTEGER NOT NULL,
			direction    TEXT    NOT NULL,
			target_price TEXT    NOT NULL,
			confidence   TEXT    NOT NULL,
			interpretation TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_predictions_symbol_ts ON predictions(symbol, ts);
	`)
	return err
}

// RecordAnalysis appends one analysis row. Strategies are stored as JSON so
// the per-indicator breakdown stays queryable.
func (r *Recorder) RecordAnalysis(ctx context.Context, res model.AnalysisResult, barCount int) error {
	strategies, err := json.Marshal(res.Strategies)
	if err != nil {
		return fmt.Errorf("encode strategies: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analyses (symbol, ts, bar_count, recommendation, confidence, strategies, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Symbol, time.Now().Unix(), barCount,
		string(res.Recommendation), res.Confidence.String(), string(strategies), res.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// RecordPrediction appends one prediction row.
func (r *Recorder) RecordPrediction(ctx context.Context, res model.PredictionResult, barCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions (symbol, ts, bar_count, direction, target_price, confidence, interpretation)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Symbol, time.Now().Unix(), barCount,
		string(res.Direction), res.TargetPrice.String(), res.Confidence.String(), res.Interpretation,
	)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *Recorder) Close() error { return r.db.Close() }
