package database

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("database: not found")

// Config selects the driver and data source.
type Config struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Open connects to the configured database and creates missing tables.
func Open(cfg Config) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite:
		if err := ensureDataDir(cfg.DSN); err != nil {
			return nil, err
		}
	case DriverPostgres:
	default:
		return nil, errors.Errorf("database: unsupported driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}

	if cfg.Driver == DriverSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "enable foreign keys")
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureDataDir(dsn string) error {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
		return errors.Wrap(err, "create data directory")
	}
	return nil
}

type table struct {
	name string
	ddl  string
}

// schema returns the table definitions for driver. Postgres REAL is single
// precision, so float columns use DOUBLE PRECISION there.
func schema(driver string) []table {
	id, ts, double := "INTEGER PRIMARY KEY AUTOINCREMENT", "TIMESTAMP", "REAL"
	if driver == DriverPostgres {
		id, ts, double = "BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ", "DOUBLE PRECISION"
	}

	return []table{
		{"items", `
			CREATE TABLE IF NOT EXISTS items (
				id ` + id + `,
				deck TEXT NOT NULL,
				question TEXT NOT NULL,
				answer TEXT NOT NULL,
				last_interval ` + double + ` NOT NULL DEFAULT -1,
				repetitions INTEGER NOT NULL DEFAULT 0,
				ease_factor ` + double + `,
				failures INTEGER NOT NULL DEFAULT 0,
				mean_quality ` + double + `,
				total_repeats INTEGER NOT NULL DEFAULT 0,
				last_quality INTEGER,
				due_at ` + ts + `,
				last_reviewed_at ` + ts + `,
				created_at ` + ts + ` NOT NULL,
				updated_at ` + ts + ` NOT NULL,
				UNIQUE(deck, question)
			)`},
		{"of_matrix", `
			CREATE TABLE IF NOT EXISTS of_matrix (
				repetition INTEGER NOT NULL,
				ease_factor ` + double + ` NOT NULL,
				optimal_factor ` + double + ` NOT NULL,
				PRIMARY KEY (repetition, ease_factor)
			)`},
		{"review_logs", `
			CREATE TABLE IF NOT EXISTS review_logs (
				id ` + id + `,
				item_id BIGINT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
				algorithm TEXT NOT NULL,
				quality INTEGER NOT NULL,
				delta_days ` + double + ` NOT NULL,
				interval_before ` + double + ` NOT NULL,
				interval_after ` + double + ` NOT NULL,
				ease_factor ` + double + `,
				reviewed_at ` + ts + ` NOT NULL
			)`},
	}
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	for _, t := range schema(db.DriverName()) {
		if _, err := db.Exec(t.ddl); err != nil {
			return errors.Wrapf(err, "create %s table", t.name)
		}
	}
	return nil
}
