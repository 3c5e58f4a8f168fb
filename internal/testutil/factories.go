package testutil

import (
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults (a US stock)
//	asset := testutil.NewAsset().Build()
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    Crypto("BTC").
//	    WithQuantity(0.5).
//	    WithPrices(45000, 64000).
//	    Build()
type AssetBuilder struct {
	asset model.Asset
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	symbol := MakeSymbol("TST")
	return &AssetBuilder{asset: model.Asset{
		ID:           MakeID(),
		Type:         model.AssetTypeUSStock,
		Name:         symbol + " Inc.",
		Symbol:       symbol,
		Quantity:     10,
		AveragePrice: 100,
		CurrentPrice: 120,
		Currency:     model.CurrencyUSD,
	}}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.asset.ID = id
	return b
}

// WithName sets the display name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.asset.Name = name
	return b
}

// WithSymbol sets the ticker symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.asset.Symbol = symbol
	return b
}

// WithQuantity sets the number of units held.
func (b *AssetBuilder) WithQuantity(q float64) *AssetBuilder {
	b.asset.Quantity = q
	return b
}

// WithPrices sets the average (cost) and current price per unit.
func (b *AssetBuilder) WithPrices(average, current float64) *AssetBuilder {
	b.asset.AveragePrice = average
	b.asset.CurrentPrice = current
	return b
}

// Crypto turns the asset into a USD denominated crypto holding.
func (b *AssetBuilder) Crypto(symbol string) *AssetBuilder {
	return b.ofType(model.AssetTypeCrypto, symbol)
}

// IndianStock turns the asset into an INR denominated equity.
func (b *AssetBuilder) IndianStock(symbol string) *AssetBuilder {
	return b.ofType(model.AssetTypeIndianStock, symbol)
}

// USStock turns the asset into a USD denominated equity.
func (b *AssetBuilder) USStock(symbol string) *AssetBuilder {
	return b.ofType(model.AssetTypeUSStock, symbol)
}

// BankAccount turns the asset into a bank balance held at bank.
func (b *AssetBuilder) BankAccount(bank string, balance float64) *AssetBuilder {
	b.ofType(model.AssetTypeBankAccount, "BANK")
	b.asset.Name = bank + " Savings"
	b.asset.BankName = bank
	b.asset.Quantity = 1
	b.asset.AveragePrice = balance
	b.asset.CurrentPrice = balance
	return b
}

func (b *AssetBuilder) ofType(t model.AssetType, symbol string) *AssetBuilder {
	b.asset.Type = t
	b.asset.Symbol = symbol
	b.asset.Name = symbol
	b.asset.Currency = t.DefaultCurrency()
	return b
}

// Build returns the asset.
func (b *AssetBuilder) Build() model.Asset {
	return b.asset
}
