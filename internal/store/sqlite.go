// internal/store/sqlite.go
//
// SQLite implementation of the Store interface.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Insert-only saved_games rows; the primary key refuses overwrites.
//
// Each row carries a BLAKE2b-256 digest of its JSON record, checked on load.

package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/memory/assets"
	"github.com/robalobadob/memory/internal/game"
)

// SQLiteStore keeps saved games in a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and creates if missing) the database at dsn
// and brings its schema up to date.
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// openDB ensures the parent directory exists for file DSNs, then opens the
// database with a busy timeout and WAL journaling.
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases from splitting per conn.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies embedded migrations not yet listed in _migrations,
// each in its own transaction, in lexical order.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	migrations, err := assets.Migrations()
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, m.Name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", m.Name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.Name, err)
		}
		log.Info().Str("migration", m.Name).Msg("applied")
	}
	return nil
}

// Save inserts rec under name. An existing row is reported as
// ErrAlreadyExists, whether found by the pre-check or by the primary key.
func (s *SQLiteStore) Save(ctx context.Context, name string, rec game.Game) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return alreadyExists(name)
	}

	b, err := json.Marshal(rec.Snapshot())
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO saved_games (name, record, digest, created_at)
        VALUES (?, ?, ?, ?)`,
		name, string(b), digest(b), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return alreadyExists(name)
		}
		return fmt.Errorf("insert %s: %w", name, err)
	}
	log.Info().Str("name", name).Str("backend", "sqlite").Msg("game saved")
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) (game.Game, error) {
	if err := ValidateName(name); err != nil {
		return game.Game{}, err
	}
	var record, sum string
	err := s.db.QueryRowContext(ctx,
		`SELECT record, digest FROM saved_games WHERE name=?`, name,
	).Scan(&record, &sum)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Game{}, notFound(name)
	}
	if err != nil {
		return game.Game{}, fmt.Errorf("query %s: %w", name, err)
	}
	if !strings.EqualFold(digest([]byte(record)), sum) {
		return game.Game{}, fmt.Errorf("digest mismatch for '%s': %w", name, ErrCorrupt)
	}

	var rec game.Game
	if err := json.Unmarshal([]byte(record), &rec); err != nil {
		return game.Game{}, fmt.Errorf("decode %s: %v: %w", name, err, ErrCorrupt)
	}
	log.Info().Str("name", name).Str("backend", "sqlite").Msg("game loaded")
	return rec, nil
}

func (s *SQLiteStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM saved_games WHERE name=?`, name,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func digest(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
