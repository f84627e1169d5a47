package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mealmaster/internal/app"
	"mealmaster/internal/config"
	"mealmaster/internal/database"
	"mealmaster/internal/ghost"
	"mealmaster/internal/logging"
	"mealmaster/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := cfg.RequireTelegram(); err != nil {
		logging.Fatal().Err(err).Msg("telegram is not configured")
	}

	// 2. Database
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	// 3. Optional Ghost client
	var ghostClient ghost.Client
	if cfg.GhostEnabled() {
		ghostClient = ghost.NewClient(cfg)
	}

	application := app.NewApp(cfg, db, ghostClient)

	// 4. Telegram Bot
	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}

	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Start Server with Graceful Shutdown
	go func() {
		logging.Info().Str("port", cfg.Port).Msg("telegram bot server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
	}

	logging.Info().Msg("server exiting")
}
