package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rentfolio/property-management-service/internal/model"
	"github.com/rentfolio/property-management-service/internal/storage"
)

// snapshot is the on-disk export format: both collections plus the time
// the export was taken.
type snapshot struct {
	Properties []model.Property `json:"properties"`
	Tenants    []model.Tenant   `json:"tenants"`
	ExportedAt time.Time        `json:"exportedAt"`
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	_ = godotenv.Load()

	var (
		backendName = flag.String("backend", envDefault("PM_BACKEND", "sqlite"), "Storage backend (sqlite, redis)")
		dbPath      = flag.String("db-path", envDefault("PM_DB_PATH", "portfolio.db"), "SQLite database path")
		redisAddr   = flag.String("redis-addr", envDefault("PM_REDIS_ADDR", "localhost:6379"), "Redis address")
		command     = flag.String("command", "export", "Backup command (export, import)")
		file        = flag.String("file", "portfolio-backup.json", "Snapshot file")
		force       = flag.Bool("force", false, "Allow import over existing data")
	)
	flag.Parse()

	var backend storage.Backend
	var err error
	switch *backendName {
	case "sqlite":
		backend, err = storage.OpenSQLite(*dbPath)
	case "redis":
		backend, err = storage.OpenRedis(*redisAddr)
	default:
		log.Fatal().Msgf("Unknown backend: %s", *backendName)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}
	defer backend.Close()

	ctx := context.Background()
	switch *command {
	case "export":
		if err := exportSnapshot(ctx, backend, *file); err != nil {
			log.Fatal().Err(err).Msg("Export failed")
		}
		log.Info().Str("file", *file).Msg("Export complete")
	case "import":
		if err := importSnapshot(ctx, backend, *file, *force); err != nil {
			log.Fatal().Err(err).Msg("Import failed")
		}
		log.Info().Str("file", *file).Msg("Import complete")
	default:
		log.Fatal().Msgf("Unknown command: %s", *command)
	}
}

func exportSnapshot(ctx context.Context, backend storage.Backend, file string) error {
	snap := snapshot{ExportedAt: time.Now()}

	if err := readEntry(ctx, backend, storage.PropertiesKey, &snap.Properties); err != nil {
		return err
	}
	if err := readEntry(ctx, backend, storage.TenantsKey, &snap.Tenants); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, payload, 0o600)
}

func importSnapshot(ctx context.Context, backend storage.Backend, file string, force bool) error {
	if !force {
		if _, err := backend.Read(ctx, storage.PropertiesKey); !errors.Is(err, storage.ErrNotFound) {
			return errors.New("target already holds data, re-run with -force to overwrite")
		}
	}

	payload, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return err
	}

	properties, err := json.Marshal(snap.Properties)
	if err != nil {
		return err
	}
	tenants, err := json.Marshal(snap.Tenants)
	if err != nil {
		return err
	}
	if err := backend.Write(ctx, storage.PropertiesKey, properties); err != nil {
		return err
	}
	return backend.Write(ctx, storage.TenantsKey, tenants)
}

func readEntry[T any](ctx context.Context, backend storage.Backend, key string, out *[]T) error {
	payload, err := backend.Read(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}
