package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// Triggers starts background work on behalf of HTTP clients.
// *scheduler.Session implements it.
type Triggers interface {
	handlers.RefreshTrigger
	handlers.InsightTrigger
}

// Services groups the dependencies the HTTP handlers are built from.
type Services struct {
	System    *service.SystemService
	Assets    *service.AssetService
	Lookup    *service.LookupService
	Portfolio *service.PortfolioService
	Refresh   *service.PriceRefreshService
	Insights  *service.InsightService
	Triggers  Triggers
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Assets, svc.Lookup)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)
			r.Get("/search", assetHandler.Search)
			r.Get("/quote", assetHandler.Quote)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.Asset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/performance", portfolioHandler.Performance)
			r.Get("/allocation", portfolioHandler.Allocation)
		})

		r.Route("/price", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(svc.Refresh, svc.Triggers)
			r.Get("/status", priceHandler.Status)
			r.Post("/refresh", priceHandler.Refresh)
		})

		r.Route("/insight", func(r chi.Router) {
			insightHandler := handlers.NewInsightHandler(svc.Insights, svc.Triggers)
			r.Get("/", insightHandler.Insights)
			r.Post("/generate", insightHandler.Generate)
		})
	})

	return r
}
