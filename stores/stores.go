// Package stores opens the snapshot store selected by configuration.
package stores

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/league-tracker/config"
	"github.com/Dosada05/league-tracker/db"
	"github.com/Dosada05/league-tracker/repositories"
	"github.com/Dosada05/league-tracker/storage"
)

const dbConnectTimeout = 5 * time.Second

// Open returns the configured store and a function releasing whatever it holds.
// The release function is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.SnapshotStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case config.BackendFile:
		store := storage.NewFileStore(cfg.DataFile)
		logger.Info("using file storage", slog.String("path", store.Path()))
		return store, noop, nil

	case config.BackendPostgres:
		conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
		if err != nil {
			return nil, noop, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, noop, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("using postgres storage", slog.String("key", cfg.StorageKey))
		repo := repositories.NewPostgresSnapshotRepository(conn)
		return repositories.NewSnapshotStore(repo, cfg.StorageKey), conn.Close, nil

	case config.BackendR2:
		store, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2StoreConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			Key:             cfg.StorageKey,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("init Cloudflare R2 store: %w", err)
		}
		logger.Info("using Cloudflare R2 storage", slog.String("bucket", cfg.R2BucketName), slog.String("key", cfg.StorageKey))
		return store, noop, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage, league will not survive a restart")
		return storage.NewMemoryStore(), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
