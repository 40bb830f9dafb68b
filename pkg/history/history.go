// Package history persists run reports in a local sqlite database.
package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/showsync/showsync/pkg/manager"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type Store struct {
	db *sql.DB
}

var _ manager.RunRecorder = (*Store)(nil)

// New opens the run history database at filePath and applies pending
// migrations.
func New(filePath string) (*Store, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{
		MigrationsTable: "schema_migrations",
		NoTxWrap:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores one run report.
func (s *Store) RecordRun(ctx context.Context, report *manager.RunReport) error {
	changes, err := json.Marshal(report.Changes)
	if err != nil {
		return err
	}

	examined, err := json.Marshal(report.Examined)
	if err != nil {
		return err
	}

	failures, err := json.Marshal(report.SoftFailures)
	if err != nil {
		return err
	}

	query := `INSERT INTO runs (run_id, started_at, finished_at, outcome, wrote, changes, examined, soft_failures, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		report.RunID,
		report.StartedAt.UTC(),
		report.FinishedAt.UTC(),
		string(report.Outcome),
		report.Wrote,
		string(changes),
		string(examined),
		string(failures),
		report.Error,
	)
	return err
}

// GetRun returns one run report by id.
func (s *Store) GetRun(ctx context.Context, runID string) (*manager.RunReport, error) {
	query := `SELECT run_id, started_at, finished_at, outcome, wrote, changes, examined, soft_failures, error
		FROM runs WHERE run_id = ?`
	row := s.db.QueryRowContext(ctx, query, runID)
	return scanRun(row)
}

// ListRuns returns up to limit of the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*manager.RunReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT run_id, started_at, finished_at, outcome, wrote, changes, examined, soft_failures, error
		FROM runs ORDER BY started_at DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*manager.RunReport
	for rows.Next() {
		report, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*manager.RunReport, error) {
	var report manager.RunReport
	var outcome, changes, examined, failures string
	var startedAt, finishedAt time.Time

	err := row.Scan(&report.RunID, &startedAt, &finishedAt, &outcome, &report.Wrote, &changes, &examined, &failures, &report.Error)
	if err != nil {
		return nil, err
	}

	report.StartedAt = startedAt
	report.FinishedAt = finishedAt
	report.Outcome = manager.Outcome(outcome)

	if err := json.Unmarshal([]byte(changes), &report.Changes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(examined), &report.Examined); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(failures), &report.SoftFailures); err != nil {
		return nil, err
	}

	return &report, nil
}
