package validation

import (
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
)

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - type: one of CRYPTO, INDIAN_STOCK, US_STOCK, BANK_ACCOUNT
//   - name: non-empty
//   - symbol: non-empty unless the asset is a bank account
//
// quantity, averagePrice and currentPrice must not be negative. currency, when
// given, must be INR or USD.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	return Struct(req)
}

// ValidateUpdateAsset validates an asset update request.
// All fields are optional, but if provided they must meet the same constraints as create.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	return Struct(req)
}

// ValidateSearch validates the query parameters of a symbol search.
func ValidateSearch(req request.SearchRequest) error {
	return Struct(req)
}

// ValidateQuote validates the query parameters of a single price lookup.
func ValidateQuote(req request.QuoteRequest) error {
	return Struct(req)
}
