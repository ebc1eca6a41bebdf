package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/isdelr/content-creator-be/internal/api"
	"github.com/isdelr/content-creator-be/internal/auth"
	"github.com/isdelr/content-creator-be/internal/config"
	"github.com/isdelr/content-creator-be/internal/logger"
	"github.com/isdelr/content-creator-be/internal/monitoring"
	"github.com/isdelr/content-creator-be/internal/relay"
	"github.com/isdelr/content-creator-be/internal/services"
	"github.com/isdelr/content-creator-be/internal/store"
	"github.com/isdelr/content-creator-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the store
	repos, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("Failed to open store")
	}
	defer closeStore()

	var background sync.WaitGroup
	goBackground := func(run func()) {
		background.Add(1)
		go func() {
			defer background.Done()
			run()
		}()
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	goBackground(func() { hub.Run(ctx) })

	// Broadcasts go straight to the hub unless a relay fans them out across processes.
	var broadcaster services.Broadcaster = hub
	if cfg.RedisURL != "" {
		redisClient, err := relay.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		redisRelay := relay.NewRedis(redisClient, hub)
		goBackground(func() {
			if err := redisRelay.Run(ctx); err != nil {
				log.Error().Err(err).Msg("Relay stopped")
			}
		})
		broadcaster = redisRelay
	}

	// Set up services
	userService := services.NewUserService(repos.Users)
	authService := services.NewAuthService(userService)
	categoryService := services.NewCategoryService(repos.Categories)
	themeService := services.NewThemeService(repos.Themes)
	contentService := services.NewContentService(repos.Contents)
	explorerService := services.NewExplorerService(contentService, categoryService, themeService, broadcaster)

	// Set up and run the periodic snapshot resync
	if cfg.ResyncCron != "" {
		resyncer, err := monitoring.NewResyncer(cfg.ResyncCron, explorerService, hub)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure resync schedule")
		}
		goBackground(func() { resyncer.Run(ctx) })
	}

	// Set up router
	router := api.NewRouter(api.Dependencies{
		Hub:         hub,
		Tokens:      auth.NewManager(cfg.JWTSecret, auth.WithTTL(cfg.TokenTTL)),
		Users:       userService,
		Auth:        authService,
		Categories:  categoryService,
		Themes:      themeService,
		Contents:    contentService,
		Explorer:    explorerService,
		Ping:        repos.Ping,
		CORSOrigins: cfg.CORSOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop the hub, relay and resyncer
	cancel()
	background.Wait()

	log.Info().Msg("Server exiting")
}
