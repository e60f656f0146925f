package dataset

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSink persists accepted SPNs (bin coordinates and a steady-state
// summary) to a SQLite database, an alternative to CSVSink for callers
// that want queryable storage instead of a flat metadata file.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens (creating if absent) the database at path and
// migrates its schema.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open sqlite: %w", err)
	}
	s := &SQLiteSink{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("dataset: migrate sqlite: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS accepted_spns (
		id TEXT PRIMARY KEY,
		places INTEGER NOT NULL,
		transitions INTEGER NOT NULL,
		bucket INTEGER NOT NULL,
		states INTEGER NOT NULL,
		edges INTEGER NOT NULL,
		mu_total REAL NOT NULL,
		mu_json TEXT NOT NULL
	);`)
	return err
}

func (s *SQLiteSink) Write(a Accepted) error {
	muJSON, err := json.Marshal(a.Record.Mu)
	if err != nil {
		return fmt.Errorf("dataset: marshaling mu: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO accepted_spns (id, places, transitions, bucket, states, edges, mu_total, mu_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.P, a.T, a.Bucket,
		a.Record.Graph.StateCount(), a.Record.Graph.EdgeCount(),
		a.Record.MuTotal, string(muJSON),
	)
	if err != nil {
		return fmt.Errorf("dataset: inserting accepted spn: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteSink) Close() error { return s.db.Close() }
