// SPDX-License-Identifier: MIT

// Package store records solver runs in a SQL database. SQLite (pure Go
// driver) is the default; PostgreSQL is reached through pgx's database/sql
// driver. Every run keeps its per-simulation and per-reaction rows plus a
// gob-encoded copy of the full result document.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	// ErrUnknownDriver is returned by Open for an unsupported driver.
	ErrUnknownDriver = errors.New("store: unknown driver")
	// ErrRunNotFound is returned when a run id has no row.
	ErrRunNotFound = errors.New("store: run not found")
)

// Store is a handle on the result database. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and creates the tables if needed. For
// sqlite the dsn is a file path whose directory is created.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var sqlDriver string
	switch driver {
	case DriverSQLite, "":
		driver, sqlDriver = DriverSQLite, "sqlite"
		if dsn == "" {
			dsn = "metatwin.db"
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil {
			return nil, fmt.Errorf("store: create dirs: %w", err)
		}
	case DriverPostgres:
		sqlDriver = "pgx"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver}
	if err = s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// Driver returns "sqlite" or "postgres".
func (s *Store) Driver() string { return s.driver }

func (s *Store) migrate(ctx context.Context) error {
	blob := "BLOB"
	if s.driver == DriverPostgres {
		blob = "BYTEA"
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			mode TEXT NOT NULL,
			network TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_ms BIGINT NOT NULL,
			simulations INTEGER NOT NULL,
			payload ` + blob + `
		)`,
		`CREATE TABLE IF NOT EXISTS simulations (
			run_id TEXT NOT NULL,
			label TEXT NOT NULL,
			sim INTEGER NOT NULL,
			condition TEXT NOT NULL,
			status TEXT NOT NULL,
			objective DOUBLE PRECISION,
			threshold DOUBLE PRECISION,
			PRIMARY KEY (run_id, label, sim)
		)`,
		`CREATE TABLE IF NOT EXISTS fluxes (
			run_id TEXT NOT NULL,
			label TEXT NOT NULL,
			sim INTEGER NOT NULL,
			reaction TEXT NOT NULL,
			flux DOUBLE PRECISION,
			min_flux DOUBLE PRECISION,
			max_flux DOUBLE PRECISION,
			PRIMARY KEY (run_id, label, sim, reaction)
		)`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}

	return nil
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func (s *Store) rebind(q string) string {
	if s.driver != DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// timeLayout is fixed-width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one stored solver invocation.
type Run struct {
	ID          string
	Kind        string // "fba", "fva" or "knockout"
	Mode        string
	Network     string
	StartedAt   time.Time
	Duration    time.Duration
	Simulations int
}

// NewRun starts a run record with a fresh id and the current time.
func NewRun(kind, mode, network string) Run {
	return Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Mode:      mode,
		Network:   network,
		StartedAt: time.Now().UTC(),
	}
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, mode, network, started_at, duration_ms, simulations
		FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("store: select runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var res []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}

	return res, rows.Err()
}

// Run returns the run with id.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT id, kind, mode, network, started_at, duration_ms, simulations
		FROM runs WHERE id = ?`), id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var started string
	var ms int64
	if err := sc.Scan(&r.ID, &r.Kind, &r.Mode, &r.Network, &started, &ms, &r.Simulations); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("store: scan run: %w", err)
	}
	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return r, fmt.Errorf("store: run %s: started_at: %w", r.ID, err)
	}
	r.StartedAt = t
	r.Duration = time.Duration(ms) * time.Millisecond

	return r, nil
}
