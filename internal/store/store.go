// Package store opens the configured backend and returns its repositories.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/isdelr/content-creator-be/internal/config"
	"github.com/isdelr/content-creator-be/internal/database"
	"github.com/isdelr/content-creator-be/internal/repository"
	"github.com/rs/zerolog/log"
)

// Open connects to the store named by cfg.Store, applies migrations and returns
// the repositories with a function that releases the connection.
func Open(ctx context.Context, cfg *config.Config) (repository.Repositories, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return openSQLite(ctx, cfg.DatabasePath)
	case config.StoreMongo:
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return repository.Repositories{}, nil, fmt.Errorf("unsupported store %q", cfg.Store)
	}
}

func openSQLite(ctx context.Context, path string) (repository.Repositories, func(), error) {
	db, err := database.New(ctx, path)
	if err != nil {
		return repository.Repositories{}, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return repository.Repositories{}, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	log.Info().Str("path", path).Msg("Database connection established and migrations complete")

	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}
	return repository.NewSQLite(db), closeDB, nil
}

func openMongo(ctx context.Context, uri, name string) (repository.Repositories, func(), error) {
	client, err := database.ConnectMongo(ctx, uri)
	if err != nil {
		return repository.Repositories{}, nil, err
	}

	db := client.Database(name)
	if err := database.MigrateMongo(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return repository.Repositories{}, nil, fmt.Errorf("failed to create mongo indexes: %w", err)
	}
	log.Info().Str("database", name).Msg("MongoDB connection established and indexes ensured")

	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}
	return repository.NewMongo(db), disconnect, nil
}
