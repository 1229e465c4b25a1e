// memory.go
//
// Package memory is the entry point for the word-memory game.
// A Session owns one live game and one save store; UIs and CLIs drive it
// through the methods below. Sessions share nothing, so any number can
// run side by side.
//
// Sessions are not safe for concurrent use; callers serialize calls.
package memory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory/internal/config"
	"github.com/robalobadob/memory/internal/game"
	"github.com/robalobadob/memory/internal/store"
)

// Re-exported failure kinds, for matching with errors.Is.
var (
	ErrGameInactive     = game.ErrGameInactive
	ErrDuplicateWord    = game.ErrDuplicateWord
	ErrWordNotFound     = game.ErrWordNotFound
	ErrNoCluesRemaining = game.ErrNoCluesRemaining
	ErrInvalidRecord    = game.ErrInvalidRecord
	ErrInvalidName      = store.ErrInvalidName
	ErrAlreadyExists    = store.ErrAlreadyExists
	ErrNotFound         = store.ErrNotFound
	ErrCorrupt          = store.ErrCorrupt
)

// GameInfo is the game summary returned by GetGameInfo.
type GameInfo = game.Info

// Session bundles the live game and the store used by SaveGame/LoadGame.
type Session struct {
	game  *game.Game
	store store.Store
}

// NewSession starts a fresh game backed by st.
func NewSession(st store.Store) *Session {
	return &Session{game: game.New(), store: st}
}

// OpenFromEnv loads configuration from the environment (and .env) and
// starts a fresh game on the configured store.
func OpenFromEnv(ctx context.Context) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	log.Info().Str("backend", cfg.Backend).Msg("memory session ready")
	return NewSession(st), nil
}

// GetGameInfo returns score and remaining budgets. Never fails.
func (s *Session) GetGameInfo() GameInfo { return s.game.Info() }

// AddWord appends word. A duplicate costs a mistake; an inactive game refuses.
func (s *Session) AddWord(word string) error { return s.game.AddWord(word) }

// RemoveWord deletes word. A missing word costs a mistake; an inactive game refuses.
func (s *Session) RemoveWord(word string) error { return s.game.RemoveWord(word) }

// ViewDictionary returns a copy of the words, spending a clue while the game is active.
func (s *Session) ViewDictionary() ([]string, error) { return s.game.ViewDictionary() }

// ResetGame discards the live game and starts over with default budgets.
func (s *Session) ResetGame() {
	s.game.Reset()
	log.Debug().Msg("game reset")
}

// SaveGame writes the whole live game under name. Existing saves are never replaced.
func (s *Session) SaveGame(ctx context.Context, name string) error {
	return s.store.Save(ctx, name, s.game.Snapshot())
}

// LoadGame replaces the whole live game with the one saved under name.
// On any error the live game is unchanged.
func (s *Session) LoadGame(ctx context.Context, name string) error {
	rec, err := s.store.Load(ctx, name)
	if err != nil {
		return err
	}
	if err := s.game.Restore(rec); err != nil {
		return fmt.Errorf("load '%s': %w", name, err)
	}
	return nil
}

// Close releases the store.
func (s *Session) Close() error { return s.store.Close() }
