package export

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pommes-public/pommesevaluation/internal/results"
)

// Store persists evaluation runs and their aggregates in SQLite so that
// scenario variants stay queryable side by side.
type Store struct {
	db *sql.DB
}

// Run identifies one recorded aggregation pass.
type Run struct {
	ID         string
	Mode       string
	GroupBy    string
	Scenario   string
	CreatedAt  time.Time
	SourceFile string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	group_by TEXT NOT NULL,
	scenario TEXT NOT NULL,
	source_file TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS aggregates (
	run_id TEXT NOT NULL REFERENCES runs(id),
	tbl TEXT NOT NULL,
	category TEXT NOT NULL,
	recognized INTEGER NOT NULL,
	period TEXT NOT NULL,
	value REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_aggregates_run ON aggregates(run_id);
`

// OpenStore opens (and if needed initializes) the run store at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records one aggregation pass and both of its tables in a
// single transaction, returning the generated run id.
func (s *Store) SaveRun(run Run, agg *results.Aggregation) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs (id, mode, group_by, scenario, source_file, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.GroupBy, run.Scenario, run.SourceFile, run.CreatedAt,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO aggregates (run_id, tbl, category, recognized, period, value)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(table string, rows []results.AggregatedRow) error {
		for _, r := range rows {
			recognized := r.EnergyCarrier.Recognized || r.Technology.Recognized
			if _, err := stmt.Exec(
				run.ID, table, r.Label(), recognized, r.Period, r.Value,
			); err != nil {
				return fmt.Errorf("insert aggregate %s: %w", r.Label(), err)
			}
		}
		return nil
	}
	if err := insert("results", agg.Results); err != nil {
		return "", err
	}
	if err := insert("storages", agg.Storages); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return run.ID, nil
}

// Runs lists recorded runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, mode, group_by, scenario, source_file, created_at
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Mode, &r.GroupBy, &r.Scenario, &r.SourceFile, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Aggregates returns the stored rows of one run and table
// ("results" or "storages").
func (s *Store) Aggregates(runID, table string) ([]results.AggregatedRow, error) {
	rows, err := s.db.Query(
		`SELECT category, recognized, period, value FROM aggregates
		 WHERE run_id = ? AND tbl = ? ORDER BY category, period`,
		runID, table)
	if err != nil {
		return nil, fmt.Errorf("query aggregates: %w", err)
	}
	defer rows.Close()

	var out []results.AggregatedRow
	for rows.Next() {
		var category, period string
		var recognized bool
		var value float64
		if err := rows.Scan(&category, &recognized, &period, &value); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		out = append(out, results.AggregatedRow{
			EnergyCarrier: results.Category{Name: category, Recognized: recognized},
			Period:        period,
			Value:         value,
		})
	}
	return out, rows.Err()
}
