package request

// CreateAssetRequest is the body of POST /api/asset.
// Currency defaults from the asset type when omitted.
type CreateAssetRequest struct {
	Type         string  `json:"type" validate:"required,asset_type"`
	Name         string  `json:"name" validate:"required,max=100"`
	Symbol       string  `json:"symbol" validate:"required_unless=Type BANK_ACCOUNT,max=32"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
	AveragePrice float64 `json:"averagePrice" validate:"gte=0"`
	CurrentPrice float64 `json:"currentPrice" validate:"gte=0"`
	Currency     string  `json:"currency" validate:"omitempty,currency"`
	BankName     string  `json:"bankName" validate:"max=100"`
}

// UpdateAssetRequest is the body of PUT /api/asset/{uuid}.
// Omitted fields keep their current value. The asset type cannot be changed.
type UpdateAssetRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Symbol       *string  `json:"symbol,omitempty" validate:"omitempty,max=32"`
	Quantity     *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	AveragePrice *float64 `json:"averagePrice,omitempty" validate:"omitempty,gte=0"`
	CurrentPrice *float64 `json:"currentPrice,omitempty" validate:"omitempty,gte=0"`
	Currency     *string  `json:"currency,omitempty" validate:"omitempty,currency"`
	BankName     *string  `json:"bankName,omitempty" validate:"omitempty,max=100"`
}

// SearchRequest holds the query parameters of GET /api/asset/search.
type SearchRequest struct {
	Query string `validate:"max=100"`
	Type  string `validate:"omitempty,asset_type"`
}

// QuoteRequest holds the query parameters of GET /api/asset/quote.
// Without a currency the asset type's default is used, and USD without either.
type QuoteRequest struct {
	Symbol   string `validate:"required,max=32"`
	Name     string `validate:"max=100"`
	Currency string `validate:"omitempty,currency"`
	Type     string `validate:"omitempty,asset_type"`
}
