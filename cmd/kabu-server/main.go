// Command kabu-server is the reference backend for the investment dashboard.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/server"
	"github.com/bobmcallan/kabu/internal/storage"
)

func main() {
	configPath := os.Getenv("KABU_CONFIG")

	config, err := common.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := common.NewLogger(config.Logging.Level)

	common.PrintBanner(config, logger)

	fileStore, err := storage.NewFileStore(logger, config.Server.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open data directory")
	}
	users := storage.NewUserStore(fileStore)
	portfolios := storage.NewPortfolioStore(fileStore)

	ctx := context.Background()
	if err := server.Seed(ctx, users, portfolios, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed demo data")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.NewServer(config, logger, users, portfolios).Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", config.Server.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d/api/v1", config.Server.Port)).
		Msg("Server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	common.PrintShutdownBanner(logger)
}
