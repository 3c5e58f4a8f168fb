package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// InsightTrigger starts a background insight generation.
type InsightTrigger interface {
	TriggerInsights() bool
}

// InsightHandler handles HTTP requests for the AI insight endpoints.
type InsightHandler struct {
	insightService *service.InsightService
	trigger        InsightTrigger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService *service.InsightService, trigger InsightTrigger) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		trigger:        trigger,
	}
}

// GenerateInsightsResponse reports whether a generation was started along with
// the insight state at the time of the request.
type GenerateInsightsResponse struct {
	Triggered bool `json:"triggered"`
	model.InsightState
}

// Insights handles GET requests for the current insights.
//
// Endpoint: GET /api/insight
// Response: 200 OK with InsightState
func (h *InsightHandler) Insights(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.insightService.State())
}

// Generate handles POST requests to regenerate insights now.
//
// Endpoint: POST /api/insight/generate
// Response: 202 Accepted with GenerateInsightsResponse
func (h *InsightHandler) Generate(w http.ResponseWriter, _ *http.Request) {
	triggered := h.trigger.TriggerInsights()
	response.RespondJSON(w, http.StatusAccepted, GenerateInsightsResponse{
		Triggered:    triggered,
		InsightState: h.insightService.State(),
	})
}
