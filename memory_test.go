package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/memory/internal/store"
)

func newFileSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.NewFileStore(dir)
	require.NoError(t, err)
	s := NewSession(st)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func TestSession_Scenarios(t *testing.T) {
	t.Run("add three words", func(t *testing.T) {
		s := NewSession(store.NewMemoryStore())
		require.NoError(t, s.AddWord("one"))
		require.NoError(t, s.AddWord("two"))
		require.NoError(t, s.AddWord("three"))
		assert.Equal(t, GameInfo{Score: 3, MistakesRemaining: 3, CluesRemaining: 3}, s.GetGameInfo())

		words, err := s.ViewDictionary()
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, words)
		assert.Equal(t, 2, s.GetGameInfo().CluesRemaining)
	})

	t.Run("repeated word ends the game", func(t *testing.T) {
		s := NewSession(store.NewMemoryStore())
		require.NoError(t, s.AddWord("same"))
		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, s.AddWord("same"), ErrDuplicateWord)
		}
		assert.Equal(t, 0, s.GetGameInfo().MistakesRemaining)
		assert.ErrorIs(t, s.AddWord("different"), ErrGameInactive)
		assert.Equal(t, 0, s.GetGameInfo().MistakesRemaining)
	})

	t.Run("reset", func(t *testing.T) {
		s := NewSession(store.NewMemoryStore())
		require.NoError(t, s.AddWord("one"))
		require.Error(t, s.AddWord("one"))
		s.ResetGame()
		assert.Equal(t, GameInfo{Score: 0, MistakesRemaining: 3, CluesRemaining: 3}, s.GetGameInfo())
		words, err := s.ViewDictionary()
		require.NoError(t, err)
		assert.Empty(t, words)
	})
}

func TestSession_SaveGame(t *testing.T) {
	ctx := context.Background()

	t.Run("double save", func(t *testing.T) {
		s, dir := newFileSession(t)
		require.NoError(t, s.SaveGame(ctx, "g1"))
		assert.ErrorIs(t, s.SaveGame(ctx, "g1"), ErrAlreadyExists)
		assert.FileExists(t, filepath.Join(dir, "memory_g1.json"))
	})

	t.Run("invalid names", func(t *testing.T) {
		s, dir := newFileSession(t)
		for _, name := range []string{"", " ", "!", "a-z0-9A-Z"} {
			assert.ErrorIs(t, s.SaveGame(ctx, name), ErrInvalidName, "name %q", name)
		}
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("save does not spend state", func(t *testing.T) {
		s, _ := newFileSession(t)
		require.NoError(t, s.AddWord("x"))
		before := s.GetGameInfo()
		require.NoError(t, s.SaveGame(ctx, "valid123"))
		assert.Equal(t, before, s.GetGameInfo())
	})
}

func TestSession_LoadGame(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		s, _ := newFileSession(t)
		assert.ErrorIs(t, s.LoadGame(ctx, "missing"), ErrNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		s, _ := newFileSession(t)
		assert.ErrorIs(t, s.LoadGame(ctx, "no!"), ErrInvalidName)
	})

	t.Run("save reset load round trip", func(t *testing.T) {
		s, _ := newFileSession(t)
		require.NoError(t, s.AddWord("one"))
		require.NoError(t, s.AddWord("two"))
		require.Error(t, s.RemoveWord("zzz"))
		_, err := s.ViewDictionary()
		require.NoError(t, err)

		info := s.GetGameInfo()
		require.NoError(t, s.SaveGame(ctx, "snap"))
		s.ResetGame()
		require.NoError(t, s.LoadGame(ctx, "snap"))

		assert.Equal(t, info, s.GetGameInfo())
		assert.Equal(t, GameInfo{Score: 2, MistakesRemaining: 2, CluesRemaining: 2}, info)

		// Compare dictionaries on a copy so the view's clue cost applies to both.
		other := NewSession(store.NewMemoryStore())
		require.NoError(t, other.AddWord("one"))
		require.NoError(t, other.AddWord("two"))
		want, err := other.ViewDictionary()
		require.NoError(t, err)
		got, err := s.ViewDictionary()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("load overwrites, not merges", func(t *testing.T) {
		s, _ := newFileSession(t)
		require.NoError(t, s.AddWord("saved"))
		require.NoError(t, s.SaveGame(ctx, "base"))

		require.NoError(t, s.AddWord("later"))
		require.Error(t, s.AddWord("later"))
		require.NoError(t, s.LoadGame(ctx, "base"))

		assert.Equal(t, GameInfo{Score: 1, MistakesRemaining: 3, CluesRemaining: 3}, s.GetGameInfo())
		words, err := s.ViewDictionary()
		require.NoError(t, err)
		assert.Equal(t, []string{"saved"}, words)
	})

	t.Run("load reactivates an ended game", func(t *testing.T) {
		s, _ := newFileSession(t)
		require.NoError(t, s.SaveGame(ctx, "start"))
		for i := 0; i < 3; i++ {
			require.Error(t, s.RemoveWord("nope"))
		}
		require.ErrorIs(t, s.AddWord("a"), ErrGameInactive)
		require.NoError(t, s.LoadGame(ctx, "start"))
		assert.NoError(t, s.AddWord("a"))
	})

	t.Run("invalid record leaves game untouched", func(t *testing.T) {
		s, dir := newFileSession(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "memory_bad.json"),
			[]byte(`{"score":1,"mistakesRemaining":9,"cluesRemaining":3,"dictionary":[]}`), 0o644))
		require.NoError(t, s.AddWord("keep"))

		assert.ErrorIs(t, s.LoadGame(ctx, "bad"), ErrInvalidRecord)
		assert.Equal(t, GameInfo{Score: 1, MistakesRemaining: 3, CluesRemaining: 3}, s.GetGameInfo())
	})
}

func TestSession_Independent(t *testing.T) {
	a := NewSession(store.NewMemoryStore())
	b := NewSession(store.NewMemoryStore())
	require.NoError(t, a.AddWord("only-a"))
	assert.Equal(t, 0, b.GetGameInfo().Score)
}

func TestOpenFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("MEMORY_STORE", "sqlite")
	t.Setenv("MEMORY_DB", filepath.Join(dir, "memory.db"))

	s, err := OpenFromEnv(context.Background())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.AddWord("persisted"))
	require.NoError(t, s.SaveGame(ctx, "env"))
	s.ResetGame()
	require.NoError(t, s.LoadGame(ctx, "env"))
	assert.Equal(t, 1, s.GetGameInfo().Score)
}
