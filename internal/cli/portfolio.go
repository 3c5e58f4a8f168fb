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

// summaryCmd prints the dashboard.
type summaryCmd struct {
	output
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display net worth, top holdings and allocation" }
func (*summaryCmd) Usage() string {
	return `portfolio summary [-format <format>]

  Displays the dashboard figures in INR using the last known prices.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		return c.print(os.Stdout, dashboard(a))
	})
}

func dashboard(a *app.App) string {
	return report.Dashboard(a.Portfolio.GetSummary(), a.Portfolio.GetPerformance(), a.Portfolio.GetAllocation())
}

// assetsCmd lists the holdings.
type assetsCmd struct {
	output
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list all assets" }
func (*assetsCmd) Usage() string {
	return `portfolio assets [-format <format>]

  Lists every asset with its quantity and prices in its own currency.
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *assetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		return c.print(os.Stdout, report.Assets(a.Assets.GetAssets()))
	})
}

// addCmd adds one asset.
type addCmd struct {
	output
	req request.CreateAssetRequest
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an asset" }
func (*addCmd) Usage() string {
	return `portfolio add -type <type> -name <name> [-symbol <symbol>] [-qty <n>] [-avg <price>] [-price <price>] [-currency <INR|USD>] [-bank <bank>]

  Adds an asset. For BANK_ACCOUNT assets -avg is the account balance and
  -symbol, -qty and -price are ignored.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.req.Type, "type", "", "Asset type: CRYPTO, INDIAN_STOCK, US_STOCK or BANK_ACCOUNT.")
	f.StringVar(&c.req.Name, "name", "", "Display name.")
	f.StringVar(&c.req.Symbol, "symbol", "", "Ticker symbol.")
	f.Float64Var(&c.req.Quantity, "qty", 0, "Quantity held.")
	f.Float64Var(&c.req.AveragePrice, "avg", 0, "Average purchase price, or the balance of a bank account.")
	f.Float64Var(&c.req.CurrentPrice, "price", 0, "Current price. Defaults to the average price.")
	f.StringVar(&c.req.Currency, "currency", "", "Currency: INR or USD. Defaults from the asset type.")
	f.StringVar(&c.req.BankName, "bank", "", "Bank name for bank accounts.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	req := c.req
	req.Type = strings.ToUpper(strings.TrimSpace(req.Type))
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.CurrentPrice == 0 {
		req.CurrentPrice = req.AveragePrice
	}
	if err := validation.ValidateCreateAsset(req); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid asset: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		if _, err := a.Assets.CreateAsset(ctx, req); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding asset: %v\n", err)
			return subcommands.ExitFailure
		}
		return c.print(os.Stdout, report.Assets(a.Assets.GetAssets()))
	})
}

// removeCmd deletes assets by ID or ID prefix.
type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove assets" }
func (*removeCmd) Usage() string {
	return `portfolio remove <id>...

  Removes the assets with the given IDs. A unique ID prefix, as shown by
  'portfolio assets', is accepted.
`
}

func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (*removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one asset ID expected")
		return subcommands.ExitUsageError
	}

	return withApp(ctx, func(a *app.App) subcommands.ExitStatus {
		for _, arg := range f.Args() {
			id, err := resolveID(a.Assets.GetAssets(), arg)
			if err == nil {
				err = a.Assets.DeleteAsset(ctx, id)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", arg, err)
				return subcommands.ExitFailure
			}
			fmt.Printf("removed %s\n", id)
		}
		return subcommands.ExitSuccess
	})
}

// resolveID returns the ID of the single asset whose ID starts with prefix.
func resolveID(assets []model.Asset, prefix string) (string, error) {
	var match string
	for _, a := range assets {
		if a.ID == prefix {
			return a.ID, nil
		}
		if strings.HasPrefix(a.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous ID prefix %q", prefix)
			}
			match = a.ID
		}
	}
	if match == "" {
		return "", apperrors.ErrAssetNotFound
	}
	return match, nil
}

var errNoArgs = errors.New("exactly one argument expected")
