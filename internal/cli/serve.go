package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/egisf/egisf/internal/app"
	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/server"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		Long: `Starts the gate API. Routes include POST /gates/sfm/evaluate,
GET /evaluations, GET /reports/summary, GET /ws/evaluate and the Swagger UI
under /swagger/. Stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

func runServe(ctx context.Context, cfg *app.Config) error {
	logger, err := logging.NewLogger("egisf", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	a, err := app.NewApplication(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(server.Config{App: a, Logger: logger.With(logging.Field{Key: "component", Value: "server"})})
	if err != nil {
		_ = a.Shutdown(context.Background())
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Start(srv); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return a.Shutdown(context.Background())
	})
	return g.Wait()
}
