package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// Client issues the dashboard's four kinds of AI requests on top of a Generator.
type Client struct {
	gen Generator
}

// NewClient creates a Client that uses gen for every request.
func NewClient(gen Generator) *Client {
	return &Client{gen: gen}
}

// RequestBatchPrices asks for the latest price of every trackable asset.
// The returned mapping may cover only some symbols. Bank accounts are never sent,
// and no request is made when nothing is trackable.
func (c *Client) RequestBatchPrices(ctx context.Context, assets []model.Asset) (map[string]float64, error) {
	trackable := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Trackable() && a.Symbol != "" {
			trackable = append(trackable, a)
		}
	}
	if len(trackable) == 0 {
		return map[string]float64{}, nil
	}

	completion, err := c.gen.Generate(ctx, batchPricesPrompt(trackable))
	if err != nil {
		return nil, err
	}
	return ParsePriceMap(completion.Text)
}

// RequestInsights asks for commentary on the given holdings.
func (c *Client) RequestInsights(ctx context.Context, holdings []Holding, summary model.PortfolioSummary) ([]model.Insight, error) {
	if len(holdings) == 0 {
		return []model.Insight{}, nil
	}

	completion, err := c.gen.Generate(ctx, insightsPrompt(holdings, summary))
	if err != nil {
		return nil, err
	}
	return ParseInsights(completion.Text)
}

// SearchCandidates looks up instruments matching query, optionally limited to one asset type.
func (c *Client) SearchCandidates(ctx context.Context, query string, assetType model.AssetType) ([]model.SearchCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.ErrEmptyQuery
	}

	completion, err := c.gen.Generate(ctx, searchPrompt(query, assetType))
	if err != nil {
		return nil, err
	}
	return ParseCandidates(completion.Text)
}

// RequestSinglePrice looks up one instrument and returns its price with the web sources used.
func (c *Client) RequestSinglePrice(ctx context.Context, symbol, name string, currency model.Currency) (model.PriceQuote, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return model.PriceQuote{}, apperrors.ErrInvalidSymbol
	}

	completion, err := c.gen.Generate(ctx, quotePrompt(symbol, strings.TrimSpace(name), currency))
	if err != nil {
		return model.PriceQuote{}, err
	}

	price, err := ParseSinglePrice(completion.Text)
	if err != nil {
		return model.PriceQuote{}, fmt.Errorf("quote for %s: %w", symbol, err)
	}

	sources := completion.Sources
	if sources == nil {
		sources = []model.Source{}
	}
	return model.PriceQuote{
		Symbol:   symbol,
		Price:    price,
		Currency: currency,
		Sources:  sources,
	}, nil
}
