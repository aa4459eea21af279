// Package history appends validation outcomes to a local sqlite database so
// repeated sessions can be compared over time.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/amarghioali/psi-testing-tool/internal/models"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS validation_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		strategy TEXT NOT NULL,
		runs INTEGER NOT NULL,
		successes INTEGER NOT NULL,
		cls_min REAL,
		cls_avg REAL,
		cls_max REAL,
		perf_min REAL,
		perf_avg REAL,
		perf_max REAL,
		passed INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_validation_results_url_created
		ON validation_results(url, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordSummary appends one row per aggregation bucket.
func (s *Store) RecordSummary(summary *models.ValidationSummary) error {
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, b := range summary.Buckets {
		_, err := tx.Exec(`INSERT INTO validation_results
			(url, strategy, runs, successes, cls_min, cls_avg, cls_max, perf_min, perf_avg, perf_max, passed, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.URL, string(b.Strategy), b.Runs, b.Successes,
			b.CLS.Min, b.CLS.Avg, b.CLS.Max,
			b.Performance.Min, b.Performance.Avg, b.Performance.Max,
			b.Passed, now,
		)
		if err != nil {
			return fmt.Errorf("insert validation result for %s: %w", b.URL, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit most recent rows for url, newest first.
func (s *Store) Recent(url string, limit int) ([]models.BucketSummary, error) {
	rows, err := s.db.Query(`SELECT url, strategy, runs, successes,
		cls_min, cls_avg, cls_max, perf_min, perf_avg, perf_max, passed
		FROM validation_results WHERE url = ? ORDER BY created_at DESC LIMIT ?`,
		url, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BucketSummary
	for rows.Next() {
		var b models.BucketSummary
		var strategy string
		if err := rows.Scan(&b.URL, &strategy, &b.Runs, &b.Successes,
			&b.CLS.Min, &b.CLS.Avg, &b.CLS.Max,
			&b.Performance.Min, &b.Performance.Avg, &b.Performance.Max,
			&b.Passed,
		); err != nil {
			return nil, err
		}
		b.Strategy = models.Strategy(strategy)
		out = append(out, b)
	}
	return out, rows.Err()
}
