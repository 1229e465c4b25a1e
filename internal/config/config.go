// internal/config/config.go
//
// Environment-driven configuration.
// Values come from the process environment, optionally seeded from a .env
// file in the working directory.
//
//   LOG_LEVEL        zerolog level name (default "info")
//   MEMORY_STORE     "file" | "sqlite" | "memory" (default "file")
//   MEMORY_SAVE_DIR  directory for memory_<name>.json files (default ".")
//   MEMORY_DB        SQLite database path (default "./data/memory.db")

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory/internal/store"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	LogLevel string
	Backend  string
	SaveDir  string
	DBPath   string
}

// Load reads .env (if present) and the environment, and applies the log level.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Backend:  strings.ToLower(getEnv("MEMORY_STORE", BackendFile)),
		SaveDir:  getEnv("MEMORY_SAVE_DIR", "."),
		DBPath:   getEnv("MEMORY_DB", "./data/memory.db"),
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)

	switch cfg.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return cfg, fmt.Errorf("MEMORY_STORE: unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}

// OpenStore constructs the configured backend.
func (c Config) OpenStore(ctx context.Context) (store.Store, error) {
	log.Debug().Str("backend", c.Backend).Msg("opening store")
	switch c.Backend {
	case BackendFile:
		fs, err := store.NewFileStore(c.SaveDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case BackendSQLite:
		db, err := store.NewSQLiteStore(ctx, c.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendMemory:
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", c.Backend)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
