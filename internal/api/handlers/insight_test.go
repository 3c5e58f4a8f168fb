package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func TestInsightHandler_Insights(t *testing.T) {
	t.Run("returns empty list before generation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := testutil.NewTestStore(t, db)
		insights := testutil.NewTestInsightService(t, st, testutil.NewMockGenerator())
		handler := NewInsightHandler(insights, &fakeTriggers{})

		req := httptest.NewRequest(http.MethodGet, "/api/insight", nil)
		w := httptest.NewRecorder()

		handler.Insights(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.InsightState
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Insights == nil || len(response.Insights) != 0 {
			t.Errorf("Expected empty insights, got %v", response.Insights)
		}
		if response.GeneratedAt != nil {
			t.Error("Expected no generation time")
		}
	})

	t.Run("returns generated insights", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := testutil.NewTestStore(t, db)
		gen := testutil.NewMockGenerator().WithResponse(`{"insights":[
			{"title":"Crypto heavy","content":"Over 70% of net worth sits in crypto.","type":"warning"},
			{"title":"Solid gains","content":"Overall return is above 35%.","type":"positive"}]}`)
		insights := testutil.NewTestInsightService(t, st, gen)
		handler := NewInsightHandler(insights, &fakeTriggers{})

		if !insights.Generate(t.Context()) {
			t.Fatal("Expected generation to run")
		}

		req := httptest.NewRequest(http.MethodGet, "/api/insight", nil)
		w := httptest.NewRecorder()

		handler.Insights(w, req)

		var response model.InsightState
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response.Insights) != 2 {
			t.Fatalf("Expected 2 insights, got %d", len(response.Insights))
		}
		if response.Insights[0].Type != model.InsightWarning {
			t.Errorf("Expected warning, got %s", response.Insights[0].Type)
		}
		if response.GeneratedAt == nil {
			t.Error("Expected generation time")
		}
	})
}

func TestInsightHandler_Generate(t *testing.T) {
	t.Run("returns 202 with trigger outcome", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := testutil.NewTestStore(t, db)
		insights := testutil.NewTestInsightService(t, st, testutil.NewMockGenerator())
		triggers := &fakeTriggers{insightResult: true}
		handler := NewInsightHandler(insights, triggers)

		req := httptest.NewRequest(http.MethodPost, "/api/insight/generate", nil)
		w := httptest.NewRecorder()

		handler.Generate(w, req)

		if w.Code != http.StatusAccepted {
			t.Fatalf("Expected 202, got %d: %s", w.Code, w.Body.String())
		}
		if triggers.insightCalls != 1 {
			t.Errorf("Expected 1 trigger, got %d", triggers.insightCalls)
		}

		var response GenerateInsightsResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Triggered {
			t.Error("Expected triggered to be true")
		}
		if response.Insights == nil {
			t.Error("Expected insights array in response")
		}
	})
}
