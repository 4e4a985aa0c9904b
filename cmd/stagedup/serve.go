package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/stagedup"
	"github.com/aretw0/stagedup/internal/cli"
	"github.com/aretw0/stagedup/internal/config"
	httpAdapter "github.com/aretw0/stagedup/pkg/adapters/http"
	"github.com/aretw0/stagedup/pkg/observability"
	"github.com/aretw0/stagedup/pkg/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves stored stages over HTTP. The store is selected with STAGEDUP_STORE
(file, memory, redis or sqlite); flags override the environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		backend, err := cli.OpenBackend(cfg, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		dup := stagedup.New(
			stagedup.WithLogger(logger),
			stagedup.WithLifecycleHooks(metrics.Hooks()),
			stagedup.WithLifecycleHooks(observability.LogHooks(logger)),
		)
		ws := workspace.NewManager(backend.Store,
			workspace.WithDuplicator(dup),
			workspace.WithLocker(backend.Locker),
			workspace.WithLogger(logger),
		)

		handler, err := httpAdapter.NewHandler(ws,
			httpAdapter.WithGatherer(reg),
			httpAdapter.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting stagedup server", "addr", srv.Addr, "store", cfg.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			logger.Info("stagedup server stopped gracefully")
			return nil
		}
	},
}

// loadConfig reads the environment and applies the --store and --port flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if err := config.ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("store") {
		cfg.Store, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	return cfg, cfg.Validate()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("store", config.StoreFile, "Stage store: file, memory, redis or sqlite")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
