package store

import "github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"

// SeedAssets returns the portfolio used when no valid persisted state exists.
// IDs are fixed so a fresh install is reproducible.
func SeedAssets() []model.Asset {
	return []model.Asset{
		{
			ID:           "5d9f1c7e-8c1b-4d3a-9a55-2f0c6c1e0a01",
			Type:         model.AssetTypeCrypto,
			Name:         "Bitcoin",
			Symbol:       "BTC",
			Quantity:     0.25,
			AveragePrice: 45000,
			CurrentPrice: 64000,
			Currency:     model.CurrencyUSD,
		},
		{
			ID:           "5d9f1c7e-8c1b-4d3a-9a55-2f0c6c1e0a02",
			Type:         model.AssetTypeCrypto,
			Name:         "Ethereum",
			Symbol:       "ETH",
			Quantity:     2,
			AveragePrice: 2200,
			CurrentPrice: 3400,
			Currency:     model.CurrencyUSD,
		},
		{
			ID:           "5d9f1c7e-8c1b-4d3a-9a55-2f0c6c1e0a03",
			Type:         model.AssetTypeIndianStock,
			Name:         "Reliance Industries",
			Symbol:       "RELIANCE",
			Quantity:     50,
			AveragePrice: 2400,
			CurrentPrice: 2950,
			Currency:     model.CurrencyINR,
		},
		{
			ID:           "5d9f1c7e-8c1b-4d3a-9a55-2f0c6c1e0a04",
			Type:         model.AssetTypeIndianStock,
			Name:         "Tata Consultancy Services",
			Symbol:       "TCS",
			Quantity:     20,
			AveragePrice: 3500,
			CurrentPrice: 3900,
			Currency:     model.CurrencyINR,
		},
		{
			ID:           "5d9f1c7e-8c1b-4d3a-9a55-2f0c6c1e0a05",
			Type:         model.AssetTypeUSStock,
			Name:         "Apple Inc.",
			Symbol:       "AAPL",
			Quantity:     15,
			AveragePrice: 150,
			CurrentPrice: 190,
			Currency:     model.CurrencyUSD,
		},
		{
			ID:           "5d9f1c7e-8c1b-4d3a-9a55-2f0c6c1e0a06",
			Type:         model.AssetTypeBankAccount,
			Name:         "Savings Account",
			Symbol:       "SAVINGS",
			Quantity:     1,
			AveragePrice: 250000,
			CurrentPrice: 250000,
			Currency:     model.CurrencyINR,
			BankName:     "HDFC Bank",
		},
	}
}
