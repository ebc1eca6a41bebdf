package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/isdelr/content-creator-be/internal/config"
	"github.com/isdelr/content-creator-be/internal/logger"
	"github.com/isdelr/content-creator-be/internal/seed"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/isdelr/content-creator-be/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("Failed to open store")
	}
	defer closeStore()

	ds, err := seed.Sample()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load sample data")
	}

	_, err = seed.Run(ctx, seed.Services{
		Users:      services.NewUserService(repos.Users),
		Categories: services.NewCategoryService(repos.Categories),
		Themes:     services.NewThemeService(repos.Themes),
		Contents:   services.NewContentService(repos.Contents),
	}, ds)
	if errors.Is(err, seed.ErrNotEmpty) {
		log.Warn().Err(err).Msg("Store holds records outside the sample data; skipping seed")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Error seeding database")
		closeStore()
		os.Exit(1)
	}
}
