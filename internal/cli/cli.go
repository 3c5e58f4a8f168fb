// Package cli implements the portfolio command line subcommands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/app"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logger"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/report"
)

// Commands lists every subcommand with its group.
var Commands = []struct {
	Group   string
	Command subcommands.Command
}{
	{"portfolio", &summaryCmd{}},
	{"portfolio", &assetsCmd{}},
	{"portfolio", &addCmd{}},
	{"portfolio", &removeCmd{}},
	{"market", &refreshCmd{}},
	{"market", &insightsCmd{}},
	{"market", &searchCmd{}},
	{"market", &quoteCmd{}},
}

// Register adds every subcommand to c.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd.Command, cmd.Group)
	}
}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	formats := predict.Set{string(report.FormatTerminal), string(report.FormatMarkdown), string(report.FormatHTML)}
	types := make(predict.Set, 0, len(model.AssetTypes()))
	for _, t := range model.AssetTypes() {
		types = append(types, string(t))
	}
	currencies := predict.Set{string(model.CurrencyINR), string(model.CurrencyUSD)}

	withFormat := func(flags map[string]complete.Predictor) *complete.Command {
		if flags == nil {
			flags = map[string]complete.Predictor{}
		}
		flags["format"] = formats
		return &complete.Command{Flags: flags}
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"summary":  withFormat(nil),
			"assets":   withFormat(nil),
			"refresh":  withFormat(nil),
			"insights": withFormat(nil),
			"search":   withFormat(map[string]complete.Predictor{"type": types}),
			"quote":    withFormat(map[string]complete.Predictor{"type": types, "currency": currencies, "name": predict.Something}),
			"add": withFormat(map[string]complete.Predictor{
				"type": types, "currency": currencies, "name": predict.Something, "symbol": predict.Something,
				"qty": predict.Something, "avg": predict.Something, "price": predict.Something, "bank": predict.Something,
			}),
			"remove": {},
		},
	}
}

// output is embedded by commands that print a report.
type output struct {
	format string
}

func (o *output) setFlags(f *flag.FlagSet) {
	f.StringVar(&o.format, "format", string(report.FormatTerminal), "Output format: terminal, markdown or html.")
}

func (o *output) print(w io.Writer, markdown string) subcommands.ExitStatus {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err := report.Render(w, markdown, format); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// openApp loads configuration and opens the dashboard. The caller must Close it.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return app.New(ctx, cfg, logger.Get())
}

// withApp opens the dashboard, runs fn and closes it again.
func withApp(ctx context.Context, fn func(a *app.App) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()
	return fn(a)
}
