package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/vizboard"
)

func newServeCmd(cfg *vizboard.Config) *cobra.Command {
	var staticDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := vizboard.New(*cfg, vizboard.ViewFuncs{}, vizboard.WithStaticDir(staticDir))
			app.Echo.Logger = logger
			defer app.Close()
			if err := app.Init(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Serve() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVarP(&cfg.Addr, "addr", "a", cfg.Addr, "listen address (env VIZBOARD_ADDR, default \":3000\")")
	cmd.Flags().StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "render history database (env VIZBOARD_DB)")
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory served under /public/")
	return cmd
}
