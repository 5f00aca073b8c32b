package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourorg/calcctl/internal/config"
	"github.com/yourorg/calcctl/internal/logger"
	"github.com/yourorg/calcctl/internal/server"
)

type serveOptions struct {
	configPath string
	port       int
}

func newServeCmd(_ *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calc HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to the TOML config file (default config.toml)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Override the configured listen port")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := config.LoadApp(opts.configPath)
	if err != nil {
		return err
	}
	if opts.port > 0 {
		cfg.HTTPServer.Port = opts.port
	}

	log := logger.New(cfg.Log)
	srv := server.New(cfg.HTTPServer, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
