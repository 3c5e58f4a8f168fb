package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// RefreshTrigger starts a background price refresh.
type RefreshTrigger interface {
	TriggerRefresh() model.RefreshStatus
}

// PriceHandler handles HTTP requests for the price refresh endpoints.
type PriceHandler struct {
	refreshService *service.PriceRefreshService
	trigger        RefreshTrigger
}

// NewPriceHandler creates a new PriceHandler. Manual refreshes go through
// trigger so they share the session's lifetime with scheduled ones.
func NewPriceHandler(refreshService *service.PriceRefreshService, trigger RefreshTrigger) *PriceHandler {
	return &PriceHandler{
		refreshService: refreshService,
		trigger:        trigger,
	}
}

// Status handles GET requests for the refresh state.
//
// Endpoint: GET /api/price/status
// Response: 200 OK with RefreshStatus
func (h *PriceHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.refreshService.Status())
}

// Refresh handles POST requests to refresh prices now. The refresh runs in the
// background; triggered is false when one was already running.
//
// Endpoint: POST /api/price/refresh
// Response: 202 Accepted with RefreshStatus
func (h *PriceHandler) Refresh(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusAccepted, h.trigger.TriggerRefresh())
}
