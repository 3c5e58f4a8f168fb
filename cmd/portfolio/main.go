// Command portfolio shows and maintains the dashboard portfolio from a terminal.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/cli"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logger"
)

func main() {
	// Handles shell completion requests and exits when one is made.
	cli.Completion().Complete("portfolio")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander)

	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "production"
	}
	logger.Init(env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	logger.Sync()
	os.Exit(int(status))
}
