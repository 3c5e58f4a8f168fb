package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

// fakeTriggers records manual triggers without starting background work.
type fakeTriggers struct {
	refreshCalls  int
	insightCalls  int
	refreshStatus model.RefreshStatus
	insightResult bool
}

func (f *fakeTriggers) TriggerRefresh() model.RefreshStatus {
	f.refreshCalls++
	return f.refreshStatus
}

func (f *fakeTriggers) TriggerInsights() bool {
	f.insightCalls++
	return f.insightResult
}

func TestPriceHandler_Status(t *testing.T) {
	t.Run("reports refresh state", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := testutil.NewTestStore(t, db)
		gen := testutil.NewMockGenerator().WithResponse(`{"BTC": 70000}`)
		refresh := testutil.NewTestPriceRefreshService(t, st, gen)
		handler := NewPriceHandler(refresh, &fakeTriggers{})

		req := httptest.NewRequest(http.MethodGet, "/api/price/status", nil)
		w := httptest.NewRecorder()

		handler.Status(w, req)

		var before model.RefreshStatus
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&before)

		if before.LastUpdated != nil {
			t.Error("Expected no last update before the first refresh")
		}

		refresh.Refresh(t.Context())

		w = httptest.NewRecorder()
		handler.Status(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var after model.RefreshStatus
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&after)

		if after.LastUpdated == nil || time.Since(*after.LastUpdated) > time.Minute {
			t.Errorf("Expected a recent last update, got %v", after.LastUpdated)
		}
		if after.InProgress {
			t.Error("Expected no refresh in progress")
		}
	})
}

func TestPriceHandler_Refresh(t *testing.T) {
	t.Run("returns 202 with trigger outcome", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := testutil.NewTestStore(t, db)
		refresh := testutil.NewTestPriceRefreshService(t, st, testutil.NewMockGenerator())
		triggers := &fakeTriggers{refreshStatus: model.RefreshStatus{Triggered: true, InProgress: true}}
		handler := NewPriceHandler(refresh, triggers)

		req := httptest.NewRequest(http.MethodPost, "/api/price/refresh", nil)
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		if w.Code != http.StatusAccepted {
			t.Fatalf("Expected 202, got %d: %s", w.Code, w.Body.String())
		}
		if triggers.refreshCalls != 1 {
			t.Errorf("Expected 1 trigger, got %d", triggers.refreshCalls)
		}

		var response model.RefreshStatus
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Triggered {
			t.Error("Expected triggered to be true")
		}
	})

	t.Run("reports dropped trigger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := testutil.NewTestStore(t, db)
		refresh := testutil.NewTestPriceRefreshService(t, st, testutil.NewMockGenerator())
		handler := NewPriceHandler(refresh, &fakeTriggers{refreshStatus: model.RefreshStatus{InProgress: true}})

		req := httptest.NewRequest(http.MethodPost, "/api/price/refresh", nil)
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		var response model.RefreshStatus
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Triggered {
			t.Error("Expected triggered to be false")
		}
		if !response.InProgress {
			t.Error("Expected in progress to be true")
		}
	})
}
