package cli

import (
	"context"
	"os"

	"github.com/txlens/txlens/internal/fraudscan"
	"github.com/txlens/txlens/internal/txanalysis"
	"github.com/txlens/txlens/internal/txdecode"

	"github.com/urfave/cli/v3"
)

// Dependencies bundles the wired services the commands operate on.
type Dependencies struct {
	ListenAddress string
	Decoder       txdecode.Service
	Analysis      txanalysis.Service
	Fraud         fraudscan.Service
}

// Run initializes and executes the txlens CLI application.
//
// It registers all available commands:
//
//   - `serve`:  starts the HTTP analysis API.
//   - `decode`: decodes one raw transaction and prints the result.
//
// Parameters:
//   - ctx: context controlling the lifecycle of the CLI application.
//   - deps: the wired services used by the commands.
func Run(ctx context.Context, deps Dependencies) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "txlens",
		Description:           "Command-line interface for decoding and analyzing Ethereum transactions.",
		Usage:                 "txlens [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(deps),
			decodeCommand(deps),
		},
	}

	return app.Run(ctx, os.Args)
}
