package cmdutil

import (
	"context"

	"sdscan/internal/engine"
	"sdscan/internal/pipeline"
)

// RunStream runs the shared pipeline and streams every branch's batch via
// send, empty ones included. It returns the number of rows sent and the
// first error encountered.
func RunStream(
	ctx context.Context,
	cfg pipeline.Config,
	seeds []engine.Seed,
	s pipeline.Searcher,
	send func(engine.Batch) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachBatch(ctx, cfg, seeds, s, func(r pipeline.Result) error {
		if err := send(r.Batch); err != nil {
			return err
		}
		total += r.Batch.Len()
		return nil
	})
	return total, err
}
