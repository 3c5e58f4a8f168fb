package testutil

import (
	"context"
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/gemini"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/store"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// Logger returns a logger that discards everything. Background goroutines may
// still log after a test has finished, so a test-bound logger is not safe here.
func Logger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// NewTestAssetRepository creates an AssetRepository on db.
func NewTestAssetRepository(t *testing.T, db *sql.DB) *repository.AssetRepository {
	t.Helper()
	return repository.NewAssetRepository(repository.NewStateRepository(db))
}

// NewTestStore creates an asset store on db. With no assets the store starts
// from the seed portfolio; otherwise assets are persisted first and loaded.
//
// Example usage:
//
//	st := testutil.NewTestStore(t, db, testutil.NewAsset().Crypto("BTC").Build())
func NewTestStore(t *testing.T, db *sql.DB, assets ...model.Asset) *store.AssetStore {
	t.Helper()

	repo := NewTestAssetRepository(t, db)
	if len(assets) > 0 {
		if err := repo.Save(context.Background(), assets); err != nil {
			t.Fatalf("Failed to persist test assets: %v", err)
		}
	}
	st, err := store.New(context.Background(), repo, Logger())
	if err != nil {
		t.Fatalf("Failed to load test store: %v", err)
	}
	return st
}

// NewTestEngine returns a valuation engine using the default USD→INR rate.
func NewTestEngine() *valuation.Engine {
	return valuation.New(config.DefaultUSDToINR)
}

func NewTestAssetService(t *testing.T, st *store.AssetStore) *service.AssetService {
	t.Helper()
	return service.NewAssetService(st)
}

func NewTestPriceRefreshService(t *testing.T, st *store.AssetStore, gen gemini.Generator) *service.PriceRefreshService {
	t.Helper()
	return service.NewPriceRefreshService(st, gemini.NewClient(gen), Logger())
}

func NewTestPortfolioService(t *testing.T, st *store.AssetStore, refresh *service.PriceRefreshService) *service.PortfolioService {
	t.Helper()
	return service.NewPortfolioService(st, NewTestEngine(), refresh)
}

func NewTestInsightService(t *testing.T, st *store.AssetStore, gen gemini.Generator) *service.InsightService {
	t.Helper()
	return service.NewInsightService(st, NewTestEngine(), gemini.NewClient(gen), Logger())
}

func NewTestLookupService(t *testing.T, gen gemini.Generator) *service.LookupService {
	t.Helper()
	return service.NewLookupService(gemini.NewClient(gen), Logger())
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, map[string]bool{"ai_insights": true, "price_refresh": true})
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
