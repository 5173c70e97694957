// Package persistence provides SQLite-based run storage: one row per
// run holding the full JSON snapshot, with an optimistic version column
// so a stale caller can never clobber a newer save.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/blake365/promisance-rogue-sub000/internal/game"
)

var (
	ErrNotFound        = errors.New("persistence: run not found")
	ErrVersionConflict = errors.New("persistence: run modified by another writer")
)

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		round INTEGER NOT NULL,
		phase INTEGER NOT NULL,
		version INTEGER NOT NULL,
		state TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes the full run snapshot. version is the version the
// caller loaded (0 for a new run); the row's version becomes version+1.
// A mismatch means someone else saved first and returns
// ErrVersionConflict with no write.
func (db *DB) SaveRun(r *game.Run, version int64) error {
	state, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	if version == 0 {
		_, err = db.conn.Exec(
			`INSERT INTO runs (id, seed, round, phase, version, state) VALUES (?, ?, ?, ?, 1, ?)`,
			r.ID.String(), r.Seed, r.Round, r.Phase, string(state))
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		slog.Debug("run created", "id", r.ID, "round", r.Round)
		return nil
	}

	res, err := db.conn.Exec(
		`UPDATE runs SET round = ?, phase = ?, version = ?, state = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND version = ?`,
		r.Round, r.Phase, version+1, string(state), r.ID.String(), version)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		var exists int
		if err := db.conn.Get(&exists, `SELECT COUNT(*) FROM runs WHERE id = ?`, r.ID.String()); err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if exists == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	slog.Debug("run saved", "id", r.ID, "round", r.Round, "phase", r.Phase, "version", version+1)
	return nil
}

// LoadRun reads a run snapshot and its current version.
func (db *DB) LoadRun(id string) (*game.Run, int64, error) {
	var row struct {
		Version int64  `db:"version"`
		State   string `db:"state"`
	}
	err := db.conn.Get(&row, `SELECT version, state FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("load run: %w", err)
	}

	var r game.Run
	if err := json.Unmarshal([]byte(row.State), &r); err != nil {
		return nil, 0, fmt.Errorf("unmarshal run: %w", err)
	}
	return &r, row.Version, nil
}

// LatestRunID returns the most recently saved run, or ErrNotFound when
// the database is empty.
func (db *DB) LatestRunID() (string, error) {
	var id string
	err := db.conn.Get(&id, `SELECT id FROM runs ORDER BY updated_at DESC, id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}
