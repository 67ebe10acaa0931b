package analysis

import (
	"context"

	"github.com/jonathan/phase-similarity/internal/dataset"
	"golang.org/x/sync/errgroup"
)

// MultiSink forwards each batch to every sink concurrently. Sinks must not
// mutate rows. WriteRows returns once every sink has finished, with the first
// error any of them reported.
type MultiSink []Sink

// WriteRows implements Sink
func (m MultiSink) WriteRows(ctx context.Context, rows []dataset.Row) error {
	if len(m) == 1 {
		return m[0].WriteRows(ctx, rows)
	}
	g, gCtx := errgroup.WithContext(ctx)
	for _, s := range m {
		g.Go(func() error {
			return s.WriteRows(gCtx, rows)
		})
	}
	return g.Wait()
}
