package model

// AssetType classifies a holding. It is fixed at creation and drives the default
// currency, display grouping and whether the asset's price can be refreshed.
type AssetType string

const (
	AssetTypeCrypto      AssetType = "CRYPTO"
	AssetTypeIndianStock AssetType = "INDIAN_STOCK"
	AssetTypeUSStock     AssetType = "US_STOCK"
	AssetTypeBankAccount AssetType = "BANK_ACCOUNT"
)

// AssetTypes returns every asset type in canonical display order.
func AssetTypes() []AssetType {
	return []AssetType{
		AssetTypeCrypto,
		AssetTypeIndianStock,
		AssetTypeUSStock,
		AssetTypeBankAccount,
	}
}

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeCrypto, AssetTypeIndianStock, AssetTypeUSStock, AssetTypeBankAccount:
		return true
	}
	return false
}

// Trackable reports whether assets of this type have a market price that can be refreshed.
// Bank accounts hold a balance, not a quoted price.
func (t AssetType) Trackable() bool {
	return t.Valid() && t != AssetTypeBankAccount
}

// DefaultCurrency returns the currency a new asset of this type is denominated in
// when the caller does not specify one.
func (t AssetType) DefaultCurrency() Currency {
	switch t {
	case AssetTypeCrypto, AssetTypeUSStock:
		return CurrencyUSD
	default:
		return CurrencyINR
	}
}

// Label returns the display name used for allocation buckets.
func (t AssetType) Label() string {
	switch t {
	case AssetTypeCrypto:
		return "Crypto"
	case AssetTypeIndianStock:
		return "Indian Stocks"
	case AssetTypeUSStock:
		return "US Stocks"
	case AssetTypeBankAccount:
		return "Bank Accounts"
	}
	return string(t)
}

// Color returns the chart color for the type.
func (t AssetType) Color() string {
	switch t {
	case AssetTypeCrypto:
		return "#F59E0B"
	case AssetTypeIndianStock:
		return "#3B82F6"
	case AssetTypeUSStock:
		return "#10B981"
	case AssetTypeBankAccount:
		return "#8B5CF6"
	}
	return "#6B7280"
}

// Currency is the denomination of an asset's prices.
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyINR || c == CurrencyUSD
}

// Asset represents one holding.
// For BANK_ACCOUNT assets AveragePrice is the account balance and CurrentPrice mirrors it.
type Asset struct {
	ID           string    `json:"id"`
	Type         AssetType `json:"type"`
	Name         string    `json:"name"`
	Symbol       string    `json:"symbol"`
	Quantity     float64   `json:"quantity"`
	AveragePrice float64   `json:"averagePrice"`
	CurrentPrice float64   `json:"currentPrice"`
	Currency     Currency  `json:"currency"`
	BankName     string    `json:"bankName,omitempty"`
}

// Trackable reports whether the asset's price can be refreshed.
func (a Asset) Trackable() bool {
	return a.Type.Trackable()
}
