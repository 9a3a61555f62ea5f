package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/eringen/vizboard"
)

// version is set at build time via ldflags.
var version = "dev"

var logger = newLogger()

func newLogger() *log.Logger {
	l := log.New("vizboard")
	l.SetOutput(os.Stderr)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	l.SetLevel(log.INFO)
	return l
}

func newRootCmd() *cobra.Command {
	cfg := vizboard.ConfigFromEnv()

	root := &cobra.Command{
		Use:           "vizboard",
		Short:         "An image gallery dashboard with per-image insights",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfg.ImageDir, "dir", "d", cfg.ImageDir, "image directory (env VIZBOARD_IMAGE_DIR, default \"visualization\")")
	root.PersistentFlags().StringVarP(&cfg.Title, "title", "t", cfg.Title, "page title (env VIZBOARD_TITLE)")
	root.PersistentFlags().StringVarP(&cfg.InsightsPath, "insights", "i", cfg.InsightsPath, "YAML file mapping file names to insights (env VIZBOARD_INSIGHTS)")
	root.PersistentFlags().IntVar(&cfg.MaxImageWidth, "max-width", cfg.MaxImageWidth, "downscale images wider than this (env VIZBOARD_MAX_WIDTH)")

	root.AddCommand(
		newServeCmd(&cfg),
		newRenderCmd(&cfg),
		newInsightsCmd(&cfg),
		&cobra.Command{
			Use:   "version",
			Short: "Print the vizboard version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "vizboard %s\n", version)
			},
		},
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// loadInsights returns the insights for cfg: the YAML file when set,
// otherwise the built-in mapping.
func loadInsights(cfg *vizboard.Config) (vizboard.Insights, error) {
	if cfg.InsightsPath == "" {
		return vizboard.DefaultInsights(), nil
	}
	return vizboard.LoadInsightsFile(cfg.InsightsPath)
}
