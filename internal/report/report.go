// Package report renders dashboard data as Markdown for the command line.
// Output can be shown styled in a terminal, kept as Markdown, or converted to HTML.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/valuation"
)

// Format selects how Render writes a report.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat returns the format named s. An empty name is FormatTerminal.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTerminal, nil
	case FormatTerminal, FormatMarkdown, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want terminal, markdown or html)", s)
}

// Render writes markdown to w in the requested format.
func Render(w io.Writer, markdown string, format Format) error {
	switch format {
	case FormatMarkdown:
		_, err := io.WriteString(w, markdown)
		return err
	case FormatHTML:
		conv := goldmark.New(goldmark.WithExtensions(extension.GFM))
		return conv.Convert([]byte(markdown), w)
	default:
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err != nil {
			return fmt.Errorf("failed to create terminal renderer: %w", err)
		}
		out, err := r.Render(markdown)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}
}

// Dashboard renders the headline figures, top holdings and allocation.
func Dashboard(summary model.PortfolioSummary, performance []model.AssetPerformance, allocation []model.AllocationBucket) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Dashboard")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", string(summary.ReportingCurrency)},
		Rows: [][]string{
			{md.Bold("Net Worth"), md.Bold(summary.FormattedTotalValue)},
			{"Invested", valuation.FormatINR(summary.TotalInvested)},
			{"Profit / Loss", fmt.Sprintf("%s (%+.2f%%)", summary.FormattedProfit, summary.ProfitPercent)},
			{"Holdings", fmt.Sprintf("%d", summary.AssetCount)},
		},
	})

	switch {
	case summary.Refreshing:
		doc.PlainText(md.Italic("Prices are being refreshed."))
	case summary.LastUpdated != nil:
		doc.PlainText(md.Italic(fmt.Sprintf("Prices last refreshed %s.", summary.LastUpdated.Local().Format("02 Jan 2006 15:04"))))
	}

	if len(performance) > 0 {
		doc.H2("Top Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Holding", "Type", "Value", "Profit / Loss"},
			Rows:      [][]string{},
		}
		for _, p := range performance {
			profit := "n/a"
			if p.ProfitApplicable {
				profit = fmt.Sprintf("%s (%+.2f%%)", valuation.FormatINR(p.Profit), p.ProfitPercent)
			}
			table.Rows = append(table.Rows, []string{
				cell(displayName(p.Name, p.Symbol)),
				p.Type.Label(),
				valuation.FormatINR(p.MarketValue),
				profit,
			})
		}
		doc.Table(table)
	}

	if len(allocation) > 0 {
		doc.H2("Allocation")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Type", "Value", "Share"},
			Rows:      [][]string{},
		}
		for _, a := range allocation {
			share := 0.0
			if summary.TotalValue > 0 {
				share = a.Value / summary.TotalValue * 100
			}
			table.Rows = append(table.Rows, []string{a.Name, valuation.FormatINR(a.Value), fmt.Sprintf("%.1f%%", share)})
		}
		doc.Table(table)
	}

	return doc.String()
}

// Assets renders the holdings in collection order with their native prices.
func Assets(assets []model.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Assets")
	if len(assets) == 0 {
		doc.PlainText("No assets yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"ID", "Asset", "Type", "Qty", "Avg Price", "Price"},
		Rows:      [][]string{},
	}
	for _, a := range assets {
		name := displayName(a.Name, a.Symbol)
		if a.Type == model.AssetTypeBankAccount && a.BankName != "" {
			name += " · " + a.BankName
		}
		table.Rows = append(table.Rows, []string{
			a.ID[:min(8, len(a.ID))],
			cell(name),
			a.Type.Label(),
			formatAmount(a.Quantity),
			formatPrice(a.AveragePrice, a.Currency),
			formatPrice(a.CurrentPrice, a.Currency),
		})
	}
	doc.Table(table)

	return doc.String()
}

// Insights renders the AI commentary.
func Insights(state model.InsightState) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Insights")
	if len(state.Insights) == 0 {
		if state.Loading {
			doc.PlainText("Generating insights...")
		} else {
			doc.PlainText("No insights available.")
		}
		return doc.String()
	}

	for _, in := range state.Insights {
		doc.H2(fmt.Sprintf("%s %s", insightMarker(in.Type), in.Title))
		doc.PlainText(in.Content)
	}
	if state.GeneratedAt != nil {
		doc.PlainText(md.Italic(fmt.Sprintf("Generated %s.", state.GeneratedAt.Local().Format("02 Jan 2006 15:04"))))
	}
	return doc.String()
}

// Candidates renders symbol search results.
func Candidates(query string, candidates []model.SearchCandidate) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Search: " + escape(query))
	if len(candidates) == 0 {
		doc.PlainText("No matches.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Symbol", "Name", "Exchange"},
		Rows:      [][]string{},
	}
	for _, c := range candidates {
		table.Rows = append(table.Rows, []string{cell(c.Symbol), cell(c.Name), cell(c.Exchange)})
	}
	doc.Table(table)
	return doc.String()
}

// Quote renders a single price lookup and the pages it was taken from.
func Quote(q model.PriceQuote) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(escape(q.Symbol))
	doc.PlainText(md.Bold(formatPrice(q.Price, q.Currency)))
	if len(q.Sources) > 0 {
		doc.H2("Sources")
		links := make([]string, 0, len(q.Sources))
		for _, s := range q.Sources {
			title := s.Title
			if title == "" {
				title = s.URI
			}
			links = append(links, md.Link(escape(title), s.URI))
		}
		doc.BulletList(links...)
	}
	return doc.String()
}

// cell keeps a value from splitting its table row.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func displayName(name, symbol string) string {
	switch {
	case name == "":
		return symbol
	case symbol == "" || strings.EqualFold(name, symbol):
		return name
	}
	return fmt.Sprintf("%s (%s)", name, symbol)
}

func insightMarker(t model.InsightType) string {
	switch t {
	case model.InsightPositive:
		return "▲"
	case model.InsightWarning:
		return "⚠"
	}
	return "•"
}

func formatAmount(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.8f", v), "0"), ".")
}

func formatPrice(v float64, c model.Currency) string {
	if c == model.CurrencyINR {
		return valuation.FormatINR(v)
	}
	return fmt.Sprintf("%s %.2f", c, v)
}

var markdownEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "#", `\#`)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
