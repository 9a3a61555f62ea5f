package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/vizboard"
	"github.com/eringen/vizboard/views"
)

func newRenderCmd(cfg *vizboard.Config) *cobra.Command {
	var out, dbPath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard once to a self-contained HTML file",
		Long: `Render lists the image directory once, embeds every image in the page
as a data URI, and writes the result to --out (or stdout). Any unreadable
directory or undecodable file aborts the pass and nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg.WithDefaults()
			in, err := loadInsights(&c)
			if err != nil {
				return err
			}

			var store *vizboard.Store
			if dbPath != "" {
				store, err = vizboard.NewStore(dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			var buf bytes.Buffer
			if err := renderPage(cmd.Context(), &c, in, store, &buf); err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			return os.WriteFile(out, buf.Bytes(), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&dbPath, "db", "", "record the pass in this history database")
	return cmd
}

// renderPage runs one pass with inline image sources and writes the page to w.
func renderPage(ctx context.Context, cfg *vizboard.Config, in vizboard.Insights, store *vizboard.Store, w io.Writer) error {
	r := &vizboard.Renderer{Dir: cfg.ImageDir, Title: cfg.Title, Insights: in}
	sink := vizboard.NewPageSink(cfg.ImageDir, vizboard.InlineSource(cfg.MaxImageWidth))
	n, err := vizboard.RunPass(ctx, r, sink, store, logger)
	if err != nil {
		return err
	}

	if err := views.Dashboard(sink.Page).Render(ctx, w); err != nil {
		return err
	}
	logger.Infof("rendered %d images from %s", n, cfg.ImageDir)
	return nil
}
