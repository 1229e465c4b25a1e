// internal/store/store.go
//
// Persistence interface for saved memory games.
// A saved game is an immutable snapshot keyed by an alphanumeric name:
// saving never overwrites, and there is no update or delete path.
//
// Backends:
//   - file.go:   one memory_<name>.json file per save (default).
//   - sqlite.go: rows in a saved_games table.
//   - memory.go: process-local map, for tests and throwaway sessions.

package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/robalobadob/memory/internal/game"
)

var (
	ErrInvalidName   = errors.New("invalid save name")
	ErrAlreadyExists = errors.New("saved game already exists")
	ErrNotFound      = errors.New("saved game not found")
	ErrCorrupt       = errors.New("saved game is corrupt")
)

var namePattern = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// Store defines the persistence interface for saved games.
type Store interface {
	// Save persists rec under name.
	// Returns ErrInvalidName or ErrAlreadyExists without writing anything.
	Save(ctx context.Context, name string, rec game.Game) error

	// Load returns the record saved under name.
	// Returns ErrInvalidName or ErrNotFound.
	Load(ctx context.Context, name string) (game.Game, error)

	// Exists reports whether a record is saved under name.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// ValidateName rejects anything but a non-empty ASCII alphanumeric name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("name '%s' is not alphanumeric: %w", name, ErrInvalidName)
	}
	return nil
}

// FileName is the deterministic artifact name for a saved game.
func FileName(name string) string {
	return "memory_" + name + ".json"
}

func alreadyExists(name string) error {
	return fmt.Errorf("saved game '%s' already exists: %w", name, ErrAlreadyExists)
}

func notFound(name string) error {
	return fmt.Errorf("no saved game '%s': %w", name, ErrNotFound)
}
