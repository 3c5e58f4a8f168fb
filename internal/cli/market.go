package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/app"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/report"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// refreshCmd refreshes prices once and prints the dashboard.
type refreshCmd struct {
	output
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "refresh asset prices now" }
func (*refreshCmd) Usage() string {
	return `portfolio refresh [-format <format>]

  Asks the AI service for the latest prices of all crypto and stock holdings,
  then displays the dashboard.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		status := a.Refresh.Refresh(ctx)
		if status.LastUpdated == nil {
			fmt.Fprintln(os.Stderr, "warning: prices could not be refreshed, showing last known prices")
		} else {
			fmt.Fprintf(os.Stderr, "%d price(s) updated\n", status.Updated)
		}
		return c.print(os.Stdout, dashboard(a))
	})
}

// insightsCmd generates insights and prints them.
type insightsCmd struct {
	output
}

func (*insightsCmd) Name() string     { return "insights" }
func (*insightsCmd) Synopsis() string { return "generate AI insights about the portfolio" }
func (*insightsCmd) Usage() string {
	return `portfolio insights [-format <format>]

  Asks the AI service for a few observations about the current holdings.
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *insightsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		a.Insights.Generate(ctx)
		return c.print(os.Stdout, report.Insights(a.Insights.State()))
	})
}

// searchCmd finds instruments by name or ticker.
type searchCmd struct {
	output
	assetType string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search for a stock or crypto symbol" }
func (*searchCmd) Usage() string {
	return `portfolio search [-type <type>] <query>

  Looks up instruments matching the query, e.g. 'portfolio search -type INDIAN_STOCK infosys'.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.assetType, "type", "", "Limit results to one asset type.")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := request.SearchRequest{
		Query: strings.Join(f.Args(), " "),
		Type:  strings.ToUpper(strings.TrimSpace(c.assetType)),
	}
	if strings.TrimSpace(req.Query) == "" {
		fmt.Fprintln(os.Stderr, apperrors.ErrEmptyQuery)
		return subcommands.ExitUsageError
	}
	if err := validation.ValidateSearch(req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		candidates := a.Lookup.Search(ctx, req.Query, model.AssetType(req.Type))
		return c.print(os.Stdout, report.Candidates(req.Query, candidates))
	})
}

// quoteCmd looks up the current price of one instrument.
type quoteCmd struct {
	output
	name      string
	currency  string
	assetType string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "look up the current price of a symbol" }
func (*quoteCmd) Usage() string {
	return `portfolio quote [-type <type>] [-currency <INR|USD>] [-name <name>] <symbol>

  Looks up the current price of one instrument and lists the pages it came from.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.name, "name", "", "Instrument name, helps disambiguate the symbol.")
	f.StringVar(&c.currency, "currency", "", "Quote currency. Defaults from -type, else USD.")
	f.StringVar(&c.assetType, "type", "", "Asset type of the instrument.")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, errNoArgs)
		return subcommands.ExitUsageError
	}

	req := request.QuoteRequest{
		Symbol:   strings.TrimSpace(f.Arg(0)),
		Name:     c.name,
		Currency: strings.ToUpper(strings.TrimSpace(c.currency)),
		Type:     strings.ToUpper(strings.TrimSpace(c.assetType)),
	}
	if err := validation.ValidateQuote(req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	currency := model.Currency(req.Currency)
	if currency == "" {
		currency = model.CurrencyUSD
		if req.Type != "" {
			currency = model.AssetType(req.Type).DefaultCurrency()
		}
	}

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		quote, err := a.Lookup.Quote(ctx, req.Symbol, req.Name, currency)
		if err != nil {
			if errors.Is(err, apperrors.ErrNoPriceFound) {
				fmt.Fprintf(os.Stderr, "No price found for %s\n", req.Symbol)
			} else {
				fmt.Fprintf(os.Stderr, "Error looking up %s: %v\n", req.Symbol, err)
			}
			return subcommands.ExitFailure
		}
		return c.print(os.Stdout, report.Quote(quote))
	})
}
