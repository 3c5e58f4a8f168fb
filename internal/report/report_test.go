package report_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/report"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/store"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// row matches adjacent table cells regardless of column padding.
func row(cells ...string) *regexp.Regexp {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = regexp.QuoteMeta(c)
	}
	return regexp.MustCompile(`\|\s*` + strings.Join(quoted, `\s*\|\s*`) + `\s*\|`)
}

func TestDashboard(t *testing.T) {
	e := valuation.New(83.5)
	assets := store.SeedAssets()
	summary := e.Summary(assets)
	updated := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	summary.LastUpdated = &updated

	md := report.Dashboard(summary, e.PerAssetPerformance(assets), e.AllocationByType(assets))

	assert.Contains(t, md, "# Portfolio Dashboard")
	assert.Contains(t, md, "2,617,275.00")
	assert.Contains(t, md, "Bitcoin (BTC)")
	assert.Regexp(t, row("Crypto"), md)
	assert.Contains(t, md, "72.7%", "crypto share of net worth")
	assert.Contains(t, md, "Prices last refreshed")

	// Bank accounts never report a profit.
	for _, line := range strings.Split(md, "\n") {
		if strings.Contains(line, "Savings Account") {
			assert.Contains(t, line, "n/a")
		}
	}
}

func TestDashboard_Empty(t *testing.T) {
	e := valuation.New(83.5)

	md := report.Dashboard(e.Summary(nil), e.PerAssetPerformance(nil), e.AllocationByType(nil))

	assert.Contains(t, md, "Net Worth")
	assert.NotContains(t, md, "## Top Holdings")
	assert.NotContains(t, md, "## Allocation")
}

func TestAssets(t *testing.T) {
	md := report.Assets(store.SeedAssets())

	assert.Contains(t, md, "Savings Account (SAVINGS) · HDFC Bank")
	assert.Regexp(t, row("0.25"), md)
	assert.Contains(t, md, "USD 64000.00")

	assert.Contains(t, report.Assets(nil), "No assets yet.")
}

func TestInsights(t *testing.T) {
	state := model.InsightState{Insights: []model.Insight{
		{Title: "Crypto heavy", Content: "Most of the value is in crypto.", Type: model.InsightWarning},
	}}

	md := report.Insights(state)

	assert.Contains(t, md, "## ⚠ Crypto heavy")
	assert.Contains(t, md, "Most of the value is in crypto.")

	assert.Contains(t, report.Insights(model.InsightState{Loading: true}), "Generating insights")
	assert.Contains(t, report.Insights(model.InsightState{}), "No insights available.")
}

func TestQuoteAndCandidates(t *testing.T) {
	md := report.Quote(model.PriceQuote{
		Symbol:   "INFY",
		Price:    1523.4,
		Currency: model.CurrencyINR,
		Sources:  []model.Source{{Title: "NSE", URI: "https://www.nseindia.com"}},
	})
	assert.Contains(t, md, "1,523.40")
	assert.Contains(t, md, "- [NSE](https://www.nseindia.com)")

	md = report.Candidates("info|sys", []model.SearchCandidate{{Name: "Infosys", Symbol: "INFY", Exchange: "NSE"}})
	assert.Regexp(t, row("INFY", "Infosys", "NSE"), md)
	assert.Contains(t, report.Candidates("zzz", nil), "No matches.")

	md = report.Candidates("pipes", []model.SearchCandidate{{Name: "A|B Corp", Symbol: "AB"}})
	assert.Contains(t, md, `A\|B Corp`, "pipes in cells are escaped")
}

func TestRender(t *testing.T) {
	md := report.Assets(store.SeedAssets())

	t.Run("markdown passes through", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, md, report.FormatMarkdown))
		assert.Equal(t, md, buf.String())
	})

	t.Run("html renders tables", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, md, report.FormatHTML))
		assert.Contains(t, buf.String(), "<table>")
		assert.Contains(t, buf.String(), "<h1>Assets</h1>")
	})

	t.Run("terminal output is not empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, md, report.FormatTerminal))
		assert.Contains(t, buf.String(), "Assets")
	})
}

func TestParseFormat(t *testing.T) {
	f, err := report.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, report.FormatTerminal, f)

	f, err = report.ParseFormat(" HTML ")
	require.NoError(t, err)
	assert.Equal(t, report.FormatHTML, f)

	_, err = report.ParseFormat("pdf")
	assert.Error(t, err)
}
