package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/app"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logger"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

func main() {
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dashboard, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := dashboard.Close(); err != nil {
			log.Errorw("shutdown failed", "error", err)
		}
	}()

	if err := dashboard.Session.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(dashboard.Services(), cfg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("starting server", "addr", cfg.Server.Addr, "version", version.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Infow("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Infow("server exited")
	return nil
}
