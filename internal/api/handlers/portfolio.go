package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the valuation endpoints.
// Every figure is derived from the current assets on each request.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Summary handles GET requests for the headline figures: net worth, invested
// cost and overall profit in INR, plus the refresh state.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
func (h *PortfolioHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.GetSummary())
}

// Performance handles GET requests for the top holdings by market value.
//
// Endpoint: GET /api/portfolio/performance
// Response: 200 OK with array of AssetPerformance (at most eight entries)
func (h *PortfolioHandler) Performance(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.GetPerformance())
}

// Allocation handles GET requests for market value grouped by asset type.
//
// Endpoint: GET /api/portfolio/allocation
// Response: 200 OK with array of AllocationBucket
func (h *PortfolioHandler) Allocation(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.portfolioService.GetAllocation())
}
