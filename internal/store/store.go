// Package store persists analysis runs in a SQLite database.
//
// Build modes:
//   - Default (CGO_ENABLED=0): pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3
//
// Each run keeps its options, corpus and report fingerprints, the full JSON
// report, the top entries of every group table and every anomaly flag.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/versestats/core/analysis"
	"github.com/FocuswithJustin/versestats/core/anomaly"
	"github.com/FocuswithJustin/versestats/core/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                 TEXT PRIMARY KEY,
	started_at         TEXT NOT NULL,
	finished_at        TEXT NOT NULL,
	corpus_path        TEXT NOT NULL,
	corpus_fingerprint TEXT NOT NULL,
	report_fingerprint TEXT NOT NULL,
	verses             INTEGER NOT NULL,
	tokens             INTEGER NOT NULL,
	options            TEXT NOT NULL,
	report             TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	dimension TEXT NOT NULL,
	scope     TEXT NOT NULL,
	grp       TEXT NOT NULL,
	rank      INTEGER NOT NULL,
	entry_key TEXT NOT NULL,
	count     INTEGER NOT NULL,
	PRIMARY KEY (run_id, dimension, scope, grp, rank)
);
CREATE TABLE IF NOT EXISTS flags (
	run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	source    TEXT NOT NULL,
	grp       TEXT NOT NULL,
	value     REAL NOT NULL,
	z         REAL NOT NULL,
	direction TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS flags_run ON flags(run_id, source);
`

// DriverType returns "cgo" for mattn/go-sqlite3 or "purego" for modernc.org/sqlite.
func DriverType() string { return driverType }

// Store is a SQLite result store. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	// A single connection keeps ":memory:" databases intact across calls.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.NewIO("initialize", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Run describes one stored analysis run.
type Run struct {
	ID                string    `json:"id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	CorpusPath        string    `json:"corpus_path"`
	CorpusFingerprint string    `json:"corpus_fingerprint"`
	ReportFingerprint string    `json:"report_fingerprint"`
	Verses            int       `json:"verses"`
	Tokens            int       `json:"tokens"`
	Options           string    `json:"options"`
}

// Entry is one ranked key of a stored group table.
type Entry struct {
	Group string `json:"group"`
	Rank  int    `json:"rank"`
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Flag is one stored anomaly flag. Source is a dimension name, a scalar
// aggregate name, or "dimension@group" for a key flagged inside one chapter
// or verse. Group holds the flagged key for dimension sources.
type Flag struct {
	Source    string  `json:"source"`
	Group     string  `json:"group"`
	Value     float64 `json:"value"`
	Z         float64 `json:"z"`
	Direction string  `json:"direction"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// Save stores run and its report in one transaction. An empty run.ID is
// assigned a new one; the stored run is returned.
func (s *Store) Save(ctx context.Context, run Run, r *analysis.Report) (Run, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return run, errors.NewValidation("run.id", run.ID, "must be a UUID")
	}
	fp, err := r.Fingerprint()
	if err != nil {
		return run, errors.Wrap(err, "fingerprint report")
	}
	report, err := json.Marshal(r)
	if err != nil {
		return run, errors.Wrap(err, "encode report")
	}
	run.CorpusFingerprint = r.Corpus.Fingerprint
	run.ReportFingerprint = fp
	run.Verses = r.Corpus.Verses
	run.Tokens = r.Corpus.Tokens

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, corpus_path, corpus_fingerprint,
			report_fingerprint, verses, tokens, options, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt), run.CorpusPath,
		run.CorpusFingerprint, run.ReportFingerprint, run.Verses, run.Tokens, run.Options, string(report),
	); err != nil {
		return run, errors.Wrapf(err, "insert run %s", run.ID)
	}
	if err := insertEntries(ctx, tx, run.ID, r); err != nil {
		return run, err
	}
	if err := insertFlags(ctx, tx, run.ID, r); err != nil {
		return run, err
	}
	if err := tx.Commit(); err != nil {
		return run, errors.Wrap(err, "commit run")
	}
	return run, nil
}

func insertEntries(ctx context.Context, tx *sql.Tx, runID string, r *analysis.Report) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (run_id, dimension, scope, grp, rank, entry_key, count) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare entries")
	}
	defer stmt.Close()

	for _, d := range r.Dimensions {
		for _, sr := range d.Scopes {
			for _, g := range sr.Groups {
				for rank, e := range g.Summary.Top {
					if _, err := stmt.ExecContext(ctx, runID, d.Name, sr.Scope.String(), g.Group.String(), rank+1, e.Key, e.Count); err != nil {
						return errors.Wrapf(err, "insert entry %s/%s", d.Name, g.Group)
					}
				}
			}
		}
	}
	return nil
}

func insertFlags(ctx context.Context, tx *sql.Tx, runID string, r *analysis.Report) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO flags (run_id, source, grp, value, z, direction) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare flags")
	}
	defer stmt.Close()

	insert := func(source string, o *anomaly.Outcome[string]) error {
		if o == nil {
			return nil
		}
		for _, f := range o.Flags {
			if _, err := stmt.ExecContext(ctx, runID, source, f.Key, f.Value, f.Z, string(f.Direction)); err != nil {
				return errors.Wrapf(err, "insert flag %s", source)
			}
		}
		return nil
	}
	for _, d := range r.Dimensions {
		for _, sr := range d.Scopes {
			if err := insert(d.Name, sr.Anomaly); err != nil {
				return err
			}
			for _, g := range sr.Groups {
				if err := insert(d.Name+"@"+g.Group.String(), g.Anomaly); err != nil {
					return err
				}
			}
		}
	}
	for _, sa := range r.Scalars {
		for _, f := range sa.Outcome.Flags {
			if _, err := stmt.ExecContext(ctx, runID, sa.Name, f.Key.String(), f.Value, f.Z, string(f.Direction)); err != nil {
				return errors.Wrapf(err, "insert flag %s", sa.Name)
			}
		}
	}
	return nil
}

// Runs lists stored runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, corpus_path, corpus_fingerprint, report_fingerprint,
			verses, tokens, options
		 FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.CorpusPath, &run.CorpusFingerprint,
			&run.ReportFingerprint, &run.Verses, &run.Tokens, &run.Options); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, run)
	}
	return out, rows.Err()
}

// Entries returns the stored top entries of one dimension at one scope, in
// group then rank order.
func (s *Store) Entries(ctx context.Context, runID, dimension, scope string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grp, rank, entry_key, count FROM entries
		 WHERE run_id = ? AND dimension = ? AND scope = ?
		 ORDER BY rowid`, runID, dimension, scope)
	if err != nil {
		return nil, errors.Wrap(err, "query entries")
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Group, &e.Rank, &e.Key, &e.Count); err != nil {
			return nil, errors.Wrap(err, "scan entry")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Flags returns every anomaly flag stored for a run.
func (s *Store) Flags(ctx context.Context, runID string) ([]Flag, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, grp, value, z, direction FROM flags WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query flags")
	}
	defer rows.Close()

	var out []Flag
	for rows.Next() {
		var f Flag
		if err := rows.Scan(&f.Source, &f.Group, &f.Value, &f.Z, &f.Direction); err != nil {
			return nil, errors.Wrap(err, "scan flag")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Report returns the stored JSON report of a run.
func (s *Store) Report(ctx context.Context, runID string) (json.RawMessage, error) {
	var report string
	err := s.db.QueryRowContext(ctx, `SELECT report FROM runs WHERE id = ?`, runID).Scan(&report)
	if err == sql.ErrNoRows {
		return nil, errors.NewValidation("run.id", runID, "no such run")
	}
	if err != nil {
		return nil, errors.Wrap(err, "query report")
	}
	return json.RawMessage(report), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
