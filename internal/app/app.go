// Package app wires configuration, storage, the AI client and services into one
// running dashboard. Both the HTTP server and the CLI build on it.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/gemini"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/scheduler"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/store"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// App holds every long-lived component of the dashboard.
type App struct {
	Config  *config.Config
	DB      *sql.DB
	Store   *store.AssetStore
	Engine  *valuation.Engine
	Session *scheduler.Session

	System    *service.SystemService
	Assets    *service.AssetService
	Lookup    *service.LookupService
	Portfolio *service.PortfolioService
	Refresh   *service.PriceRefreshService
	Insights  *service.InsightService

	logger *zap.SugaredLogger
}

// New opens and migrates the database, loads the asset collection and builds
// the services. The session is created but not started.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	state, err := repository.NewStateRepository(db).WithEncryptionKey(cfg.Storage.EncryptionKey)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure state encryption: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, cfg.Gemini)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	if !cfg.Gemini.Enabled() {
		logger.Warnw("GEMINI_API_KEY not set, price refresh and insights are disabled")
	}
	client := gemini.NewClient(generator)

	assets, err := store.New(ctx, repository.NewAssetRepository(state), logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	engine := valuation.New(cfg.Valuation.USDToINR)

	refresh := service.NewPriceRefreshService(assets, client, logger)
	insights := service.NewInsightService(assets, engine, client, logger)

	a := &App{
		Config:    cfg,
		DB:        db,
		Store:     assets,
		Engine:    engine,
		Session:   scheduler.New(refresh, insights, cfg.Refresh.Schedule, logger),
		System:    service.NewSystemService(db, features(cfg, state)),
		Assets:    service.NewAssetService(assets),
		Lookup:    service.NewLookupService(client, logger),
		Portfolio: service.NewPortfolioService(assets, engine, refresh),
		Refresh:   refresh,
		Insights:  insights,
		logger:    logger,
	}

	logger.Infow("dashboard ready",
		"database", cfg.Database.Path,
		"assets", len(assets.Assets()),
		"encrypted_state", state.Encrypted(),
		"usd_inr", engine.Rate(),
	)
	return a, nil
}

// Services returns the dependencies of the HTTP router.
func (a *App) Services() api.Services {
	return api.Services{
		System:    a.System,
		Assets:    a.Assets,
		Lookup:    a.Lookup,
		Portfolio: a.Portfolio,
		Refresh:   a.Refresh,
		Insights:  a.Insights,
		Triggers:  a.Session,
	}
}

// Close stops the session and closes the database.
func (a *App) Close() error {
	a.Session.Stop()
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func features(cfg *config.Config, state *repository.StateRepository) map[string]bool {
	return map[string]bool{
		"ai_insights":     cfg.Gemini.Enabled(),
		"price_refresh":   cfg.Gemini.Enabled(),
		"symbol_search":   cfg.Gemini.Enabled(),
		"encrypted_state": state.Encrypted(),
	}
}
