package vizboard

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/eringen/vizboard/views"
)

// RunPass executes one render pass of r into sink and records it in store
// when store is non-nil. A recording failure is logged and does not change
// the result of the pass.
func RunPass(ctx context.Context, r *Renderer, sink Sink, store *Store, logger echo.Logger) (int, error) {
	start := time.Now()
	n, err := r.Render(ctx, sink)

	if store != nil {
		p := Pass{
			StartedAt: start,
			Dir:       r.Dir,
			Blocks:    n,
			Duration:  time.Since(start),
		}
		if err != nil {
			p.Error = err.Error()
		}
		if _, recErr := store.RecordPass(p); recErr != nil && logger != nil {
			logger.Warnf("record render pass: %v", recErr)
		}
	}
	return n, err
}

// passRows converts stored passes for the history view.
func passRows(passes []Pass, now time.Time) []views.PassRow {
	rows := make([]views.PassRow, 0, len(passes))
	for _, p := range passes {
		rows = append(rows, views.PassRow{
			StartedAt: p.StartedAt.Format(time.RFC3339),
			Ago:       humanize.RelTime(p.StartedAt, now, "ago", "from now"),
			Dir:       p.Dir,
			Blocks:    p.Blocks,
			Duration:  p.Duration.String(),
			Error:     p.Error,
		})
	}
	return rows
}
