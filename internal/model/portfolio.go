package model

import "time"

// AllocationBucket is the converted total market value of all holdings of one asset type.
type AllocationBucket struct {
	Name  string    `json:"name"`
	Type  AssetType `json:"type"`
	Value float64   `json:"value"` // In reporting currency
	Color string    `json:"color"`
}

// AssetPerformance describes one holding's valuation in the reporting currency.
// ProfitApplicable is false for bank accounts, where Profit and ProfitPercent are always zero.
type AssetPerformance struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Symbol           string    `json:"symbol"`
	Type             AssetType `json:"type"`
	MarketValue      float64   `json:"marketValue"`
	InvestedValue    float64   `json:"investedValue"`
	Profit           float64   `json:"profit"`
	ProfitPercent    float64   `json:"profitPercent"`
	ProfitApplicable bool      `json:"profitApplicable"`
	Color            string    `json:"color"`
}

// ProfitAndReturn is the overall profit in reporting currency and the return on invested cost.
type ProfitAndReturn struct {
	Profit  float64 `json:"profit"`
	Percent float64 `json:"percent"`
}

// PortfolioSummary represents the headline figures of the dashboard.
// All monetary values are in the reporting currency (INR).
type PortfolioSummary struct {
	TotalValue          float64    `json:"totalValue"`
	TotalInvested       float64    `json:"totalInvested"`
	Profit              float64    `json:"profit"`
	ProfitPercent       float64    `json:"profitPercent"`
	FormattedTotalValue string     `json:"formattedTotalValue"`
	FormattedProfit     string     `json:"formattedProfit"`
	AssetCount          int        `json:"assetCount"`
	ReportingCurrency   Currency   `json:"reportingCurrency"`
	LastUpdated         *time.Time `json:"lastUpdated,omitempty"`
	Refreshing          bool       `json:"refreshing"`
}
