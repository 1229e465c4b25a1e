package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory/internal/game"
)

// FileStore keeps each saved game in its own memory_<name>.json file
// under Dir. The file holds the bare game record, 2-space indented.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if missing.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, FileName(name))
}

// Save writes rec to a new file. O_EXCL makes the existence check and the
// create a single step, so an existing save is never truncated.
func (s *FileStore) Save(ctx context.Context, name string, rec game.Game) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	b, err := json.MarshalIndent(rec.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	p := s.path(name)
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return alreadyExists(name)
		}
		return fmt.Errorf("create %s: %w", p, err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("write %s: %w", p, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(p)
		return fmt.Errorf("sync %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p, err)
	}
	log.Info().Str("name", name).Str("path", p).Msg("game saved")
	return nil
}

func (s *FileStore) Load(ctx context.Context, name string) (game.Game, error) {
	if err := ValidateName(name); err != nil {
		return game.Game{}, err
	}
	p := s.path(name)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return game.Game{}, notFound(name)
		}
		return game.Game{}, fmt.Errorf("read %s: %w", p, err)
	}
	var rec game.Game
	if err := json.Unmarshal(b, &rec); err != nil {
		return game.Game{}, fmt.Errorf("decode %s: %v: %w", p, err, ErrCorrupt)
	}
	log.Info().Str("name", name).Str("path", p).Msg("game loaded")
	return rec, nil
}

func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	_, err := os.Stat(s.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *FileStore) Close() error { return nil }
