package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// SymbolLookup finds instruments and quotes a single price.
type SymbolLookup interface {
	SearchCandidates(ctx context.Context, query string, assetType model.AssetType) ([]model.SearchCandidate, error)
	RequestSinglePrice(ctx context.Context, symbol, name string, currency model.Currency) (model.PriceQuote, error)
}

// LookupService backs the asset creation flow with symbol search and price lookup.
type LookupService struct {
	lookup SymbolLookup
	logger *zap.SugaredLogger
}

// NewLookupService creates a new LookupService.
func NewLookupService(lookup SymbolLookup, logger *zap.SugaredLogger) *LookupService {
	return &LookupService{lookup: lookup, logger: logger}
}

// Search returns instruments matching query. A blank query returns an empty
// result without contacting the AI service. Collaborator failures are logged and
// reported as an empty result.
func (s *LookupService) Search(ctx context.Context, query string, assetType model.AssetType) []model.SearchCandidate {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchCandidate{}
	}

	candidates, err := s.lookup.SearchCandidates(ctx, query, assetType)
	if err != nil {
		s.logger.Warnw("symbol search failed", "query", query, "type", assetType, "error", err)
		return []model.SearchCandidate{}
	}
	return candidates
}

// Quote looks up the current price of one instrument in the given currency.
//
// Returns apperrors.ErrNoPriceFound when no price could be determined.
func (s *LookupService) Quote(ctx context.Context, symbol, name string, currency model.Currency) (model.PriceQuote, error) {
	quote, err := s.lookup.RequestSinglePrice(ctx, symbol, name, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoPriceFound) || errors.Is(err, apperrors.ErrInvalidSymbol) {
			return model.PriceQuote{}, err
		}
		s.logger.Warnw("price lookup failed", "symbol", symbol, "error", err)
		return model.PriceQuote{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePrice, err)
	}
	return quote, nil
}
