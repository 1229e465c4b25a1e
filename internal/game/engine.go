// internal/game/engine.go
//
// Core game engine for a single memory game.
// Responsibilities:
//   - Create games with the default budgets (3 mistakes, 3 clues).
//   - Apply word additions/removals, charging a mistake on every failure.
//   - Gate dictionary views on the clue budget while the game is active.
//   - Snapshot/restore the full record for persistence.
//
// State transitions:
//   - active (MistakesRemaining > 0) → inactive on the third mistake.
//   - inactive → active only through Reset or Restore.
//
// A failed AddWord/RemoveWord on an active game still mutates it: the
// mistake counter is decremented before the error is returned.
package game

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

// New constructs a fresh game with default budgets and an empty dictionary.
func New() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// Active reports whether mutating operations may still succeed.
func (g *Game) Active() bool { return g.MistakesRemaining > 0 }

// Info returns the score and budgets. It never fails and has no side effects.
func (g *Game) Info() Info {
	return Info{
		Score:             g.Score,
		MistakesRemaining: g.MistakesRemaining,
		CluesRemaining:    g.CluesRemaining,
	}
}

// AddWord appends word to the dictionary.
//
// Errors:
//   - ErrGameInactive if no mistakes remain (no mutation).
//   - ErrDuplicateWord if word is already present (costs one mistake).
func (g *Game) AddWord(word string) error {
	if !g.Active() {
		return ErrGameInactive
	}
	if slices.Contains(g.Dictionary, word) {
		g.mistake()
		return fmt.Errorf("word '%s' is already in the dictionary: %w", word, ErrDuplicateWord)
	}
	g.Dictionary = append(g.Dictionary, word)
	g.Score++
	log.Debug().Str("word", word).Int("score", g.Score).Msg("word added")
	return nil
}

// RemoveWord deletes word from the dictionary.
//
// Errors:
//   - ErrGameInactive if no mistakes remain (no mutation).
//   - ErrWordNotFound if word is absent (costs one mistake).
func (g *Game) RemoveWord(word string) error {
	if !g.Active() {
		return ErrGameInactive
	}
	i := slices.Index(g.Dictionary, word)
	if i < 0 {
		g.mistake()
		return fmt.Errorf("word '%s' is not in the dictionary: %w", word, ErrWordNotFound)
	}
	g.Dictionary = slices.Delete(g.Dictionary, i, i+1)
	g.Score++
	log.Debug().Str("word", word).Int("score", g.Score).Msg("word removed")
	return nil
}

// ViewDictionary returns the words in insertion order.
// While active each view costs a clue; once inactive viewing is free.
// The returned slice is a copy.
func (g *Game) ViewDictionary() ([]string, error) {
	if g.Active() {
		if g.CluesRemaining <= 0 {
			return nil, ErrNoCluesRemaining
		}
		g.CluesRemaining--
		log.Debug().Int("cluesRemaining", g.CluesRemaining).Msg("clue used")
	}
	return slices.Clone(g.Dictionary), nil
}

// Reset restores the default budgets, zeroes the score and empties the dictionary.
func (g *Game) Reset() {
	g.Score = 0
	g.MistakesRemaining = MaxMistakes
	g.CluesRemaining = MaxClues
	g.Dictionary = []string{}
}

// Snapshot returns a deep copy of the record, safe to hand to a store.
func (g *Game) Snapshot() Game {
	s := *g
	s.Dictionary = slices.Clone(g.Dictionary)
	if s.Dictionary == nil {
		s.Dictionary = []string{}
	}
	return s
}

// Restore overwrites every field of g with rec.
// rec is validated first; on error g is left unchanged.
func (g *Game) Restore(rec Game) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	g.Score = rec.Score
	g.MistakesRemaining = rec.MistakesRemaining
	g.CluesRemaining = rec.CluesRemaining
	g.Dictionary = slices.Clone(rec.Dictionary)
	if g.Dictionary == nil {
		g.Dictionary = []string{}
	}
	return nil
}

// Validate checks the record invariants: budgets within [0,3],
// a non-negative score, and no repeated words.
func (g *Game) Validate() error {
	switch {
	case g.Score < 0:
		return fmt.Errorf("score %d is negative: %w", g.Score, ErrInvalidRecord)
	case g.MistakesRemaining < 0 || g.MistakesRemaining > MaxMistakes:
		return fmt.Errorf("mistakesRemaining %d out of range: %w", g.MistakesRemaining, ErrInvalidRecord)
	case g.CluesRemaining < 0 || g.CluesRemaining > MaxClues:
		return fmt.Errorf("cluesRemaining %d out of range: %w", g.CluesRemaining, ErrInvalidRecord)
	}
	seen := make(map[string]struct{}, len(g.Dictionary))
	for _, w := range g.Dictionary {
		if _, dup := seen[w]; dup {
			return fmt.Errorf("word '%s' repeated: %w", w, ErrInvalidRecord)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// mistake charges one mistake. Callers check Active first, so the
// counter never drops below zero.
func (g *Game) mistake() {
	g.MistakesRemaining--
	log.Debug().Int("mistakesRemaining", g.MistakesRemaining).Msg("mistake")
	if !g.Active() {
		log.Info().Int("score", g.Score).Msg("game over")
	}
}
