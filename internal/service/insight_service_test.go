package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

const twoInsights = `[
	{"title": "Crypto concentration", "content": "Over half of the portfolio is crypto.", "type": "warning"},
	{"title": "Strong returns", "content": "The portfolio is up 35%.", "type": "positive"}
]`

func TestInsightService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores parsed insights", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		gen := testutil.NewMockGenerator().WithResponse(twoInsights)
		svc := testutil.NewTestInsightService(t, testutil.NewTestStore(t, db), gen)

		// Execute
		if !svc.Generate(ctx) {
			t.Fatal("Expected generation to run")
		}

		// Assert
		state := svc.State()
		if len(state.Insights) != 2 {
			t.Fatalf("Expected 2 insights, got %d", len(state.Insights))
		}
		if state.Insights[0].Type != model.InsightWarning {
			t.Errorf("Expected warning, got %s", state.Insights[0].Type)
		}
		if state.Loading {
			t.Error("Expected loading to be false")
		}
		if state.GeneratedAt == nil {
			t.Error("Expected GeneratedAt to be set")
		}
	})

	t.Run("failure clears previous insights", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gen := testutil.NewMockGenerator().WithResponse(twoInsights)
		svc := testutil.NewTestInsightService(t, testutil.NewTestStore(t, db), gen)
		svc.Generate(ctx)

		gen.WithError(errors.New("quota exceeded"))
		svc.Generate(ctx)

		state := svc.State()
		if len(state.Insights) != 0 {
			t.Errorf("Expected insights to be cleared, got %d", len(state.Insights))
		}
		if state.Insights == nil {
			t.Error("Expected an empty list, not nil")
		}
	})

	t.Run("malformed response clears insights", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		gen := testutil.NewMockGenerator().WithResponse(twoInsights).WithResponse("Here are some thoughts...")
		svc := testutil.NewTestInsightService(t, testutil.NewTestStore(t, db), gen)

		svc.Generate(ctx)
		if err := svc.LastError(); err != nil {
			t.Errorf("Expected no recorded error after a valid response, got %v", err)
		}
		svc.Generate(ctx)

		if n := len(svc.State().Insights); n != 0 {
			t.Errorf("Expected no insights, got %d", n)
		}
		if svc.LastError() == nil {
			t.Error("Expected the failure to be recorded")
		}
	})

	t.Run("empty portfolio needs no request", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		st := testutil.NewTestStore(t, db, testutil.NewAsset().Build())
		if err := st.Delete(ctx, st.Assets()[0].ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		gen := testutil.NewMockGenerator()
		svc := testutil.NewTestInsightService(t, st, gen)

		svc.Generate(ctx)

		if gen.CallCount() != 0 {
			t.Errorf("Expected no AI call, got %d", gen.CallCount())
		}
	})
}

// TestInsightService_LoadingKeepsPreviousList tests the loading state.
//
// WHY: while a new request is outstanding the panel must keep showing the previous
// insights with a loading indicator, and concurrent triggers must be dropped
// instead of racing each other.
func TestInsightService_LoadingKeepsPreviousList(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	gen := testutil.NewMockGenerator().WithResponse(twoInsights)
	svc := testutil.NewTestInsightService(t, testutil.NewTestStore(t, db), gen)
	svc.Generate(ctx)

	gen.WithResponse(`[{"title": "Fresh", "content": "New take.", "type": "neutral"}]`).Blocking()
	if !svc.Trigger(ctx) {
		t.Fatal("Expected trigger to start a generation")
	}
	select {
	case <-gen.Started():
	case <-time.After(5 * time.Second):
		t.Fatal("generation never reached the AI service")
	}

	loading := svc.State()
	dropped := svc.Trigger(ctx)

	gen.Release()
	svc.Wait()

	if !loading.Loading {
		t.Error("Expected loading state while a request is outstanding")
	}
	if len(loading.Insights) != 2 {
		t.Errorf("Expected previous 2 insights while loading, got %d", len(loading.Insights))
	}
	if dropped {
		t.Error("Expected second trigger to be dropped")
	}
	if gen.CallCount() != 2 {
		t.Errorf("Expected 2 AI calls in total, got %d", gen.CallCount())
	}

	final := svc.State()
	if len(final.Insights) != 1 || final.Insights[0].Title != "Fresh" {
		t.Errorf("Expected the fresh insight, got %+v", final.Insights)
	}
}

func TestInsightService_Watch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	st := testutil.NewTestStore(t, db)
	gen := testutil.NewMockGenerator().WithResponse(twoInsights)
	svc := testutil.NewTestInsightService(t, st, gen)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := svc.Watch(ctx)
	if _, err := st.ApplyPrices(ctx, map[string]float64{"BTC": 1}); err != nil {
		t.Fatalf("ApplyPrices() error = %v", err)
	}
	svc.Wait()

	if gen.CallCount() != 1 {
		t.Fatalf("Expected a generation after the store changed, got %d calls", gen.CallCount())
	}

	stop()
	if _, err := st.ApplyPrices(ctx, map[string]float64{"BTC": 2}); err != nil {
		t.Fatalf("ApplyPrices() error = %v", err)
	}
	svc.Wait()

	if gen.CallCount() != 1 {
		t.Errorf("Expected no generation after stop, got %d calls", gen.CallCount())
	}
}
