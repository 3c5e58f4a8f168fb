// Package valuation derives net worth, invested cost, profit/loss and allocation
// from a collection of assets. Every function is pure: the same assets and rate
// always produce the same figures, and nothing here performs I/O.
//
// Amounts are accumulated as decimals and only converted to float64 on the way
// out, so that sums such as 0.25 × 64000 × 83.5 + 50 × 2950 are exact.
package valuation

import (
	"slices"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// ReportingCurrency is the currency every aggregate figure is normalized into.
const ReportingCurrency = model.CurrencyINR

// MaxPerformanceEntries is the number of holdings kept by PerAssetPerformance.
const MaxPerformanceEntries = 8

var hundred = decimal.NewFromInt(100)

// Engine computes valuations using a fixed USD→INR rate.
// The zero value is not usable; construct with New.
type Engine struct {
	usdToINR decimal.Decimal
}

// New creates an Engine for the given USD→INR rate.
func New(usdToINR float64) *Engine {
	return &Engine{usdToINR: decimal.NewFromFloat(usdToINR)}
}

// Rate returns the configured USD→INR rate.
func (e *Engine) Rate() float64 {
	return e.usdToINR.InexactFloat64()
}

// Convert converts an amount denominated in currency into the reporting currency.
// USD amounts are multiplied by the fixed rate; anything else is returned unchanged.
func (e *Engine) Convert(amount float64, currency model.Currency) float64 {
	return e.convert(decimal.NewFromFloat(amount), currency).InexactFloat64()
}

func (e *Engine) convert(amount decimal.Decimal, currency model.Currency) decimal.Decimal {
	if currency == model.CurrencyUSD {
		return amount.Mul(e.usdToINR)
	}
	return amount
}

func (e *Engine) marketValue(a model.Asset) decimal.Decimal {
	v := decimal.NewFromFloat(a.Quantity).Mul(decimal.NewFromFloat(a.CurrentPrice))
	return e.convert(v, a.Currency)
}

func (e *Engine) investedValue(a model.Asset) decimal.Decimal {
	v := decimal.NewFromFloat(a.Quantity).Mul(decimal.NewFromFloat(a.AveragePrice))
	return e.convert(v, a.Currency)
}

func (e *Engine) totalMarketValue(assets []model.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(e.marketValue(a))
	}
	return total
}

func (e *Engine) totalInvestedCost(assets []model.Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(e.investedValue(a))
	}
	return total
}

// TotalMarketValue sums quantity × currentPrice over all assets, in reporting currency.
func (e *Engine) TotalMarketValue(assets []model.Asset) float64 {
	return e.totalMarketValue(assets).InexactFloat64()
}

// TotalInvestedCost sums quantity × averagePrice over all assets, in reporting currency.
// A zero averagePrice contributes nothing.
func (e *Engine) TotalInvestedCost(assets []model.Asset) float64 {
	return e.totalInvestedCost(assets).InexactFloat64()
}

// OverallProfitAndReturn returns market value minus invested cost and that profit as a
// percentage of invested cost. Percent is 0 when nothing was invested.
func (e *Engine) OverallProfitAndReturn(assets []model.Asset) model.ProfitAndReturn {
	value := e.totalMarketValue(assets)
	invested := e.totalInvestedCost(assets)
	profit := value.Sub(invested)
	return model.ProfitAndReturn{
		Profit:  profit.InexactFloat64(),
		Percent: percentOf(profit, invested).InexactFloat64(),
	}
}

func percentOf(profit, invested decimal.Decimal) decimal.Decimal {
	if !invested.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(invested).Mul(hundred)
}

// PerAssetPerformance values each asset, orders the result by market value
// (highest first, ties keep collection order) and keeps the top MaxPerformanceEntries.
//
// Bank accounts are listed with their balance but never report a profit.
func (e *Engine) PerAssetPerformance(assets []model.Asset) []model.AssetPerformance {
	type entry struct {
		perf  model.AssetPerformance
		value decimal.Decimal
	}

	entries := make([]entry, 0, len(assets))
	for _, a := range assets {
		value := e.marketValue(a)
		invested := e.investedValue(a)

		perf := model.AssetPerformance{
			ID:               a.ID,
			Name:             a.Name,
			Symbol:           a.Symbol,
			Type:             a.Type,
			MarketValue:      value.InexactFloat64(),
			InvestedValue:    invested.InexactFloat64(),
			ProfitApplicable: a.Type != model.AssetTypeBankAccount,
			Color:            a.Type.Color(),
		}
		if perf.ProfitApplicable {
			profit := value.Sub(invested)
			perf.Profit = profit.InexactFloat64()
			perf.ProfitPercent = percentOf(profit, invested).InexactFloat64()
		}
		entries = append(entries, entry{perf: perf, value: value})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return b.value.Cmp(a.value)
	})

	if len(entries) > MaxPerformanceEntries {
		entries = entries[:MaxPerformanceEntries]
	}

	result := make([]model.AssetPerformance, len(entries))
	for i, en := range entries {
		result[i] = en.perf
	}
	return result
}

// AllocationByType sums converted market value per asset type in canonical order.
// Buckets whose total is exactly zero are omitted.
func (e *Engine) AllocationByType(assets []model.Asset) []model.AllocationBucket {
	totals := make(map[model.AssetType]decimal.Decimal, 4)
	for _, a := range assets {
		totals[a.Type] = totals[a.Type].Add(e.marketValue(a))
	}

	buckets := []model.AllocationBucket{}
	for _, t := range model.AssetTypes() {
		total := totals[t]
		if total.IsZero() {
			continue
		}
		buckets = append(buckets, model.AllocationBucket{
			Name:  t.Label(),
			Type:  t,
			Value: total.InexactFloat64(),
			Color: t.Color(),
		})
	}
	return buckets
}

// Summary bundles the headline figures for a collection.
// LastUpdated and Refreshing are left for the caller to fill in.
func (e *Engine) Summary(assets []model.Asset) model.PortfolioSummary {
	value := e.totalMarketValue(assets)
	invested := e.totalInvestedCost(assets)
	profit := value.Sub(invested)

	return model.PortfolioSummary{
		TotalValue:          value.InexactFloat64(),
		TotalInvested:       invested.InexactFloat64(),
		Profit:              profit.InexactFloat64(),
		ProfitPercent:       percentOf(profit, invested).InexactFloat64(),
		FormattedTotalValue: formatReporting(value),
		FormattedProfit:     formatReporting(profit),
		AssetCount:          len(assets),
		ReportingCurrency:   ReportingCurrency,
	}
}

// FormatINR renders an amount in the reporting currency, e.g. "₹1,483,500.00".
func FormatINR(amount float64) string {
	return formatReporting(decimal.NewFromFloat(amount))
}

func formatReporting(amount decimal.Decimal) string {
	minor := amount.Shift(2).Round(0).IntPart()
	return money.New(minor, string(ReportingCurrency)).Display()
}
