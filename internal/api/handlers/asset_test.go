package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/testutil"
)

func setupAssetHandler(t *testing.T, gen *testutil.MockGenerator, assets ...model.Asset) (*AssetHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	st := testutil.NewTestStore(t, db, assets...)
	return NewAssetHandler(testutil.NewTestAssetService(t, st), testutil.NewTestLookupService(t, gen)), db
}

func TestAssetHandler_Assets(t *testing.T) {
	t.Run("returns the seed portfolio on first start", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator())

		req := httptest.NewRequest(http.MethodGet, "/api/asset", nil)
		w := httptest.NewRecorder()

		handler.Assets(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Asset
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 6 {
			t.Errorf("Expected 6 seed assets, got %d", len(response))
		}
	})

	t.Run("returns assets in collection order", func(t *testing.T) {
		first := testutil.NewAsset().Crypto("BTC").Build()
		second := testutil.NewAsset().IndianStock("INFY").Build()
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), first, second)

		req := httptest.NewRequest(http.MethodGet, "/api/asset", nil)
		w := httptest.NewRecorder()

		handler.Assets(w, req)

		var response []model.Asset
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 assets, got %d", len(response))
		}
		if response[0].ID != first.ID || response[1].ID != second.ID {
			t.Errorf("Expected order [%s %s], got [%s %s]", first.ID, second.ID, response[0].ID, response[1].ID)
		}
	})
}

func TestAssetHandler_Asset(t *testing.T) {
	t.Run("returns asset by id", func(t *testing.T) {
		asset := testutil.NewAsset().USStock("MSFT").Build()
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), asset)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/"+asset.ID, map[string]string{"uuid": asset.ID})
		w := httptest.NewRecorder()

		handler.Asset(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Asset
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Symbol != "MSFT" {
			t.Errorf("Expected symbol MSFT, got %s", response.Symbol)
		}
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator())
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.Asset(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAssetHandler_CreateAsset(t *testing.T) {
	t.Run("creates asset with default currency", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), testutil.NewAsset().Build())

		body := map[string]any{
			"type":         "INDIAN_STOCK",
			"name":         "Infosys",
			"symbol":       "INFY",
			"quantity":     10,
			"averagePrice": 1400,
			"currentPrice": 1500,
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/asset", body, nil)
		w := httptest.NewRecorder()

		handler.CreateAsset(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Asset
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID == "" {
			t.Error("Expected generated ID")
		}
		if response.Currency != model.CurrencyINR {
			t.Errorf("Expected INR, got %s", response.Currency)
		}
	})

	// WHY: the add form sends a balance for bank accounts. It must be stored as
	// a single unit valued at that balance, otherwise net worth double counts.
	t.Run("bank account stores balance as one unit", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), testutil.NewAsset().Build())

		body := map[string]any{
			"type":         "BANK_ACCOUNT",
			"name":         "Emergency Fund",
			"quantity":     3,
			"averagePrice": 120000,
			"bankName":     "ICICI",
		}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/asset", body, nil)
		w := httptest.NewRecorder()

		handler.CreateAsset(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Asset
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Quantity != 1 {
			t.Errorf("Expected quantity 1, got %v", response.Quantity)
		}
		if response.CurrentPrice != 120000 {
			t.Errorf("Expected current price 120000, got %v", response.CurrentPrice)
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator())

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/asset", "{not json", nil)
		w := httptest.NewRecorder()

		handler.CreateAsset(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for validation failures", func(t *testing.T) {
		tests := []struct {
			name string
			body map[string]any
		}{
			{"missing type", map[string]any{"name": "X", "symbol": "X"}},
			{"unknown type", map[string]any{"type": "BOND", "name": "X", "symbol": "X"}},
			{"missing symbol", map[string]any{"type": "CRYPTO", "name": "Bitcoin"}},
			{"negative quantity", map[string]any{"type": "CRYPTO", "name": "Bitcoin", "symbol": "BTC", "quantity": -1}},
			{"unknown currency", map[string]any{"type": "CRYPTO", "name": "Bitcoin", "symbol": "BTC", "currency": "EUR"}},
			{"unknown field", map[string]any{"type": "CRYPTO", "name": "Bitcoin", "symbol": "BTC", "colour": "red"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				handler, _ := setupAssetHandler(t, testutil.NewMockGenerator())

				req := testutil.NewJSONRequest(t, http.MethodPost, "/api/asset", tt.body, nil)
				w := httptest.NewRecorder()

				handler.CreateAsset(w, req)

				if w.Code != http.StatusBadRequest {
					t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
				}
			})
		}
	})
}

func TestAssetHandler_UpdateAsset(t *testing.T) {
	t.Run("updates only provided fields", func(t *testing.T) {
		asset := testutil.NewAsset().Crypto("ETH").WithQuantity(2).WithPrices(2000, 3000).Build()
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), asset)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/asset/"+asset.ID, map[string]any{"quantity": 5}, map[string]string{"uuid": asset.ID})
		w := httptest.NewRecorder()

		handler.UpdateAsset(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Asset
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Quantity != 5 {
			t.Errorf("Expected quantity 5, got %v", response.Quantity)
		}
		if response.AveragePrice != 2000 || response.CurrentPrice != 3000 {
			t.Errorf("Expected prices unchanged, got %v/%v", response.AveragePrice, response.CurrentPrice)
		}
	})

	t.Run("rejects type change as unknown field", func(t *testing.T) {
		asset := testutil.NewAsset().Crypto("ETH").Build()
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), asset)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/asset/"+asset.ID, map[string]any{"type": "US_STOCK"}, map[string]string{"uuid": asset.ID})
		w := httptest.NewRecorder()

		handler.UpdateAsset(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator())
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/asset/"+id, map[string]any{"quantity": 1}, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.UpdateAsset(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for negative price", func(t *testing.T) {
		asset := testutil.NewAsset().Build()
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), asset)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/asset/"+asset.ID, map[string]any{"currentPrice": -3}, map[string]string{"uuid": asset.ID})
		w := httptest.NewRecorder()

		handler.UpdateAsset(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAssetHandler_DeleteAsset(t *testing.T) {
	t.Run("deletes asset", func(t *testing.T) {
		asset := testutil.NewAsset().Build()
		other := testutil.NewAsset().Build()
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator(), asset, other)

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/asset/"+asset.ID, map[string]string{"uuid": asset.ID})
		w := httptest.NewRecorder()

		handler.DeleteAsset(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		req = testutil.NewRequestWithURLParams(http.MethodGet, "/api/asset/"+asset.ID, map[string]string{"uuid": asset.ID})
		w = httptest.NewRecorder()

		handler.Asset(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected deleted asset to be gone, got %d", w.Code)
		}
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator())
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/asset/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.DeleteAsset(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAssetHandler_Search(t *testing.T) {
	t.Run("returns candidates from the AI service", func(t *testing.T) {
		gen := testutil.NewMockGenerator().
			WithResponse(`[{"name":"Infosys Limited","symbol":"INFY","exchange":"NSE"},{"name":"Infosys ADR","symbol":"INFY.NS"}]`)
		handler, _ := setupAssetHandler(t, gen)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset/search", map[string]string{"q": "infosys", "type": "indian_stock"})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.SearchCandidate
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 candidates, got %d", len(response))
		}
		if response[0].Symbol != "INFY" {
			t.Errorf("Expected INFY first, got %s", response[0].Symbol)
		}
	})

	t.Run("blank query returns empty array without calling AI", func(t *testing.T) {
		gen := testutil.NewMockGenerator()
		handler, _ := setupAssetHandler(t, gen)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset/search", map[string]string{"q": "   "})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]\n" {
			t.Errorf("Expected empty array, got %s", w.Body.String())
		}
		if gen.CallCount() != 0 {
			t.Errorf("Expected no AI call, got %d", gen.CallCount())
		}
	})

	t.Run("AI failure returns empty array", func(t *testing.T) {
		gen := testutil.NewMockGenerator().WithError(errors.New("quota exceeded"))
		handler, _ := setupAssetHandler(t, gen)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset/search", map[string]string{"q": "apple"})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]\n" {
			t.Errorf("Expected empty array, got %s", w.Body.String())
		}
	})

	t.Run("returns 400 for unknown type", func(t *testing.T) {
		handler, _ := setupAssetHandler(t, testutil.NewMockGenerator())

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset/search", map[string]string{"q": "gold", "type": "commodity"})
		w := httptest.NewRecorder()

		handler.Search(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestAssetHandler_Quote(t *testing.T) {
	t.Run("returns price with sources", func(t *testing.T) {
		gen := testutil.NewMockGenerator().
			WithResponse("PRICE: 1,523.40").
			WithSources(model.Source{Title: "NSE", URI: "https://www.nseindia.com/get-quotes/equity?symbol=INFY"})
		handler, _ := setupAssetHandler(t, gen)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset/quote", map[string]string{"symbol": "INFY", "type": "INDIAN_STOCK"})
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.PriceQuote
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Price != 1523.40 {
			t.Errorf("Expected 1523.40, got %v", response.Price)
		}
		if response.Currency != model.CurrencyINR {
			t.Errorf("Expected INR from asset type, got %s", response.Currency)
		}
		if len(response.Sources) != 1 {
			t.Errorf("Expected 1 source, got %d", len(response.Sources))
		}
	})

	t.Run("returns 400 without symbol", func(t *testing.T) {
		gen := testutil.NewMockGenerator()
		handler, _ := setupAssetHandler(t, gen)

		req := httptest.NewRequest(http.MethodGet, "/api/asset/quote", nil)
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		if gen.CallCount() != 0 {
			t.Errorf("Expected no AI call, got %d", gen.CallCount())
		}
	})

	t.Run("returns 404 when no price is found", func(t *testing.T) {
		gen := testutil.NewMockGenerator().WithResponse("I could not find a current price for that instrument.")
		handler, _ := setupAssetHandler(t, gen)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset/quote", map[string]string{"symbol": "ZZZZ"})
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 502 when the AI service fails", func(t *testing.T) {
		gen := testutil.NewMockGenerator().WithError(errors.New("upstream timeout"))
		handler, _ := setupAssetHandler(t, gen)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/asset/quote", map[string]string{"symbol": "AAPL"})
		w := httptest.NewRecorder()

		handler.Quote(w, req)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d: %s", w.Code, w.Body.String())
		}
	})
}
