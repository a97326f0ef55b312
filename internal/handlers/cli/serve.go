package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/txlens/txlens/internal/handlers/httpapi"
	"github.com/txlens/txlens/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// shutdownGracePeriod bounds the drain of in-flight requests on shutdown.
const shutdownGracePeriod = 15 * time.Second

// serveCommand returns the CLI command that runs the HTTP analysis API.
//
// Usage example:
//
//	txlens serve
//
// The process runs until it receives an interrupt (SIGINT or SIGTERM), then
// drains in-flight requests before exiting.
func serveCommand(deps Dependencies) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Starts the HTTP API serving the decode, analyze, and fraud assessment endpoints.",
		Usage:       "Runs the analysis server. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			api := httpapi.New(deps.Decoder, deps.Analysis, deps.Fraud)

			server := &http.Server{
				Addr:    deps.ListenAddress,
				Handler: api.Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info(ctx, "http api listening", "server.address", deps.ListenAddress)
				if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			defer close(quit)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
