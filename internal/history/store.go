// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion attempts in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scene-convert/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20

	// timeLayout has fixed-width fractions so stored times sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the conversion history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.Dir/history.db and
// creates the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := DBPath(cfg)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// DBPath returns the database file for cfg. An empty Dir means the current
// directory.
func DBPath(cfg types.HistoryConfig) string {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, dbFile)
}

// Exists reports whether a history database has been created for cfg.
// Read-only commands check it so they never create one.
func Exists(cfg types.HistoryConfig) bool {
	fi, err := os.Stat(DBPath(cfg))
	return err == nil && !fi.IsDir()
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			tool TEXT NOT NULL,
			status TEXT NOT NULL,
			stdout TEXT,
			stderr TEXT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER,
			output_bytes INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one conversion attempt and returns its row ID.
func (s *Store) Record(ctx context.Context, c types.Conversion) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (input, output, tool, status, stdout, stderr, started_at, duration_ms, output_bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Input, c.Output, c.Tool, string(c.Status), c.Stdout, c.Stderr,
		c.StartedAt.UTC().Format(timeLayout), c.Duration.Milliseconds(), c.OutputBytes,
	)
	if err != nil {
		return 0, fmt.Errorf("recording conversion of %s: %w", c.Input, err)
	}
	return res.LastInsertId()
}

// List returns up to limit recorded attempts, newest first. A limit of zero
// or less uses the configured maximum.
func (s *Store) List(ctx context.Context, limit int) ([]types.Conversion, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	return s.query(ctx, limit)
}

func (s *Store) query(ctx context.Context, limit int) ([]types.Conversion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, output, tool, status, stdout, stderr, started_at, duration_ms, output_bytes
		 FROM conversions ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var out []types.Conversion
	for rows.Next() {
		var (
			c          types.Conversion
			status     string
			stdout     sql.NullString
			stderr     sql.NullString
			startedAt  string
			durationMS sql.NullInt64
			size       sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Input, &c.Output, &c.Tool, &status,
			&stdout, &stderr, &startedAt, &durationMS, &size); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.Status = types.ConversionStatus(status)
		c.Stdout = stdout.String
		c.Stderr = stderr.String
		if t, err := time.Parse(timeLayout, startedAt); err == nil {
			c.StartedAt = t
		}
		c.Duration = time.Duration(durationMS.Int64) * time.Millisecond
		c.OutputBytes = size.Int64
		out = append(out, c)
	}
	return out, rows.Err()
}
