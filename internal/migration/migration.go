// Package migration brings a SQL store's collections schema up to the
// version embedded in the binary.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/migrations"
)

// Dialect is the SQL flavour of a store.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// placeholder is the first bind parameter in this dialect.
func (d Dialect) placeholder() string {
	if d == Postgres {
		return "$1"
	}
	return "?"
}

// ErrSchemaTooNew means the database was written by a newer studyplan.
var ErrSchemaTooNew = errors.New("database schema is newer than this version of studyplan supports")

// Step is one NNN_name.sql file.
type Step struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db      *sql.DB
	files   fs.FS
	dialect Dialect
}

// New returns a runner over the schema files embedded for dialect.
func New(db *sql.DB, dialect Dialect) (*Runner, error) {
	files, err := fs.Sub(migrations.FS, dialect.String())
	if err != nil {
		return nil, fmt.Errorf("no embedded %s migrations: %w", dialect, err)
	}
	return NewFromFS(db, files, dialect), nil
}

// NewFromFS returns a runner over an arbitrary directory of step files.
func NewFromFS(db *sql.DB, files fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, files: files, dialect: dialect}
}

// parseStepName splits "002_add_index.sql" into 2 and "add_index".
func parseStepName(file string) (int, string, error) {
	prefix, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("migration %s: expected NNN_name.sql", file)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 1 {
		return 0, "", fmt.Errorf("migration %s: version must be a positive number", file)
	}
	return version, name, nil
}

// Steps returns every step file ordered by version.
func (r *Runner) Steps() ([]Step, error) {
	entries, err := fs.ReadDir(r.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	var steps []Step
	seen := map[int]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		version, name, err := parseStepName(e.Name())
		if err != nil {
			return nil, err
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", other, e.Name(), version)
		}
		seen[version] = e.Name()

		body, err := fs.ReadFile(r.files, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", e.Name(), err)
		}
		steps = append(steps, Step{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(steps, func(i, j int) bool { return steps[i].Version < steps[j].Version })
	return steps, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}
	return nil
}

// Version is the schema version recorded in the database, 0 when fresh.
func (r *Runner) Version() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}
	var v int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// writeVersion keeps schema_version at a single row.
func (r *Runner) writeVersion(ex execer, v int) error {
	if _, err := ex.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err := ex.Exec("INSERT INTO schema_version (version) VALUES ("+r.dialect.placeholder()+")", v)
	return err
}

// SetVersion overwrites the recorded schema version.
func (r *Runner) SetVersion(v int) error {
	if err := r.ensureVersionTable(); err != nil {
		return err
	}
	if err := r.writeVersion(r.db, v); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// pending returns the steps above the recorded version, and that version.
func (r *Runner) pending() ([]Step, int, error) {
	current, err := r.Version()
	if err != nil {
		return nil, 0, err
	}
	steps, err := r.Steps()
	if err != nil {
		return nil, 0, err
	}
	if n := len(steps); n > 0 && current > steps[n-1].Version {
		return nil, current, fmt.Errorf("%w (database %d, supported %d)", ErrSchemaTooNew, current, steps[n-1].Version)
	}

	var out []Step
	for _, s := range steps {
		if s.Version > current {
			out = append(out, s)
		}
	}
	return out, current, nil
}

// Up applies each pending step in its own transaction together with the
// version bump, and returns how many were applied. A failing step leaves
// the database at the previous version.
func (r *Runner) Up() (int, error) {
	steps, current, err := r.pending()
	if err != nil {
		return 0, err
	}
	if len(steps) == 0 {
		logger.Debug("Schema up to date", "dialect", r.dialect, "version", current)
		return 0, nil
	}

	for i, s := range steps {
		tx, err := r.db.Begin()
		if err != nil {
			return i, fmt.Errorf("migration %d: %w", s.Version, err)
		}
		if _, err := tx.Exec(s.SQL); err != nil {
			_ = tx.Rollback()
			return i, fmt.Errorf("migration %d (%s) failed: %w", s.Version, s.Name, err)
		}
		if err := r.writeVersion(tx, s.Version); err != nil {
			_ = tx.Rollback()
			return i, fmt.Errorf("migration %d: failed to record version: %w", s.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return i, fmt.Errorf("migration %d: %w", s.Version, err)
		}
		logger.Info("Applied migration", "dialect", r.dialect, "version", s.Version, "name", s.Name)
	}
	return len(steps), nil
}

// Check fails when the database schema is newer than the embedded steps.
func (r *Runner) Check() error {
	_, _, err := r.pending()
	return err
}
