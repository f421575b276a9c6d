package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/michal-shasha/bayesnet"
	"github.com/michal-shasha/bayesnet/internal/presentation/tui"
	httpAdapter "github.com/michal-shasha/bayesnet/pkg/adapters/http"
	"github.com/michal-shasha/bayesnet/pkg/metrics"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [network]",
	Short: "Start the HTTP query server",
	Long: `Loads the network and exposes it over a JSON API:

  POST /query          probability query
  POST /independence   independence query
  GET  /network        the network definitions
  GET  /network/mermaid
  GET  /healthz
  GET  /metrics        Prometheus metrics (when enabled)`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			a.cfg.Server.Addr = addr
		}
		if cmd.Flags().Changed("metrics") {
			a.cfg.Server.Metrics, _ = cmd.Flags().GetBool("metrics")
		}

		var (
			reg      *metrics.Registry
			extra    []bayesnet.Option
			httpOpts = []httpAdapter.Option{httpAdapter.WithLogger(a.logger)}
		)
		if a.cfg.Server.Metrics {
			reg = metrics.NewRegistry()
			extra = append(extra, bayesnet.WithLifecycleHooks(reg.Hooks()))
			httpOpts = append(httpOpts, httpAdapter.WithMetrics(reg))
		}

		engine, closeCache, err := a.openEngine(cmd.Context(), args, extra...)
		if err != nil {
			return err
		}
		defer closeCache()

		srv := &http.Server{
			Addr:              a.cfg.Server.Addr,
			Handler:           httpAdapter.NewHandler(engine, httpOpts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if isTerminalFile(os.Stderr) {
			tui.PrintBanner(os.Stderr, bayesnet.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("starting server",
				"addr", srv.Addr,
				"network", engine.Network().Name(),
				"metrics", a.cfg.Server.Metrics,
				"cache", a.cfg.Cache.Backend,
			)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-ctx.Done():
			a.logger.Info("shutting down")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				return srv.Close()
			}
			a.logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
}
