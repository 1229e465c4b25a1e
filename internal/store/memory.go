// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for tests, or when saves only need to outlive a reset within
// one process.
//
// Characteristics:
//   - Stores deep copies of game.Game records keyed by name.
//   - Concurrency-safe via RWMutex.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/memory/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex         // guards games map
	games map[string]game.Game // keyed by save name
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]game.Game)}
}

// Save stores a copy of rec, refusing to replace an existing entry.
func (m *memory) Save(ctx context.Context, name string, rec game.Game) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[name]; ok {
		return alreadyExists(name)
	}
	m.games[name] = rec.Snapshot()
	return nil
}

// Load returns a copy, so callers never share the stored dictionary.
func (m *memory) Load(ctx context.Context, name string) (game.Game, error) {
	if err := ValidateName(name); err != nil {
		return game.Game{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[name]
	if !ok {
		return game.Game{}, notFound(name)
	}
	return g.Snapshot(), nil
}

func (m *memory) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.games[name]
	return ok, nil
}

func (m *memory) Close() error { return nil }
