package service

import (
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/store"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// PortfolioService exposes the derived portfolio views: totals, per-asset
// performance and allocation. Every call values the current snapshot of the
// store, so figures are always consistent with each other within one call.
type PortfolioService struct {
	store   *store.AssetStore
	engine  *valuation.Engine
	refresh *PriceRefreshService
}

// NewPortfolioService creates a new PortfolioService. refresh may be nil, in which
// case summaries never report a refresh time.
func NewPortfolioService(assets *store.AssetStore, engine *valuation.Engine, refresh *PriceRefreshService) *PortfolioService {
	return &PortfolioService{
		store:   assets,
		engine:  engine,
		refresh: refresh,
	}
}

// GetSummary returns total value, invested cost, profit and refresh status.
func (s *PortfolioService) GetSummary() model.PortfolioSummary {
	summary := s.engine.Summary(s.store.Assets())
	if s.refresh != nil {
		summary.LastUpdated = s.refresh.LastUpdated()
		summary.Refreshing = s.refresh.InProgress()
	}
	return summary
}

// GetPerformance returns the top holdings by market value.
func (s *PortfolioService) GetPerformance() []model.AssetPerformance {
	return s.engine.PerAssetPerformance(s.store.Assets())
}

// GetAllocation returns market value per asset type.
func (s *PortfolioService) GetAllocation() []model.AllocationBucket {
	return s.engine.AllocationByType(s.store.Assets())
}

// Rate returns the USD→INR rate used for valuation.
func (s *PortfolioService) Rate() float64 {
	return s.engine.Rate()
}
