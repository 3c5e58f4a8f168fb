package gemini

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

const pricesSystem = `You are a market data assistant. Look up the latest traded price for each
instrument you are given. Answer with a single JSON object that maps each symbol
exactly as given to its price as a number, in the currency listed for it.
Leave out any symbol you cannot price. Do not add commentary.`

const insightsSystem = `You are a concise personal finance analyst. Given a portfolio, write 3 or 4
short insights about diversification, concentration, performance and risk.
Answer with a JSON array of objects with the fields "title", "content" and "type",
where "type" is one of "positive", "warning" or "neutral".`

const searchSystem = `You help users find the ticker symbol of an investment. Answer with a JSON
array of at most 8 objects with the fields "name", "symbol" and "exchange".`

const quoteSystem = `You are a market data assistant. Find the latest traded price of the
requested instrument. Answer with a JSON object {"price": <number>} in the
requested currency and nothing else.`

func batchPricesPrompt(assets []model.Asset) Prompt {
	var sb strings.Builder
	sb.WriteString("Instruments:\n")
	for _, a := range assets {
		fmt.Fprintf(&sb, "- %s (%s, %s, priced in %s)\n", a.Symbol, a.Name, a.Type.Label(), a.Currency)
	}
	return Prompt{System: pricesSystem, Text: sb.String(), Grounded: true}
}

// Holding is one line of the portfolio description sent for insights.
type Holding struct {
	Asset       model.Asset
	MarketValue float64
	Profit      float64
}

func insightsPrompt(holdings []Holding, summary model.PortfolioSummary) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total value: %s (invested %.2f, profit %.2f, %.2f%%)\n",
		summary.FormattedTotalValue, summary.TotalInvested, summary.Profit, summary.ProfitPercent)
	sb.WriteString("Holdings, values in INR:\n")
	for _, h := range holdings {
		fmt.Fprintf(&sb, "- %s %q (%s): value %.2f, profit %.2f\n",
			h.Asset.Symbol, h.Asset.Name, h.Asset.Type.Label(), h.MarketValue, h.Profit)
	}
	return Prompt{System: insightsSystem, Text: sb.String(), JSON: true}
}

func searchPrompt(query string, assetType model.AssetType) Prompt {
	text := fmt.Sprintf("Find investments matching %q.", query)
	if assetType.Valid() {
		text += fmt.Sprintf(" Only return %s.", assetType.Label())
		if assetType == model.AssetTypeIndianStock {
			text += " Use NSE symbols."
		}
	}
	return Prompt{System: searchSystem, Text: text, JSON: true}
}

func quotePrompt(symbol, name string, currency model.Currency) Prompt {
	text := fmt.Sprintf("Instrument: %s", symbol)
	if name != "" {
		text += fmt.Sprintf(" (%s)", name)
	}
	text += fmt.Sprintf("\nCurrency: %s", currency)
	return Prompt{System: quoteSystem, Text: text, Grounded: true}
}
