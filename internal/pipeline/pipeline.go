// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"sdscan/internal/engine"
)

// Config controls the search pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Result is one completed branch.
type Result struct {
	Seed  engine.Seed
	Batch engine.Batch
}

// ForEachBatch runs SearchBranch for every seed on cfg.Threads workers and
// calls visit once per seed, including seeds whose batch is empty. visit is
// only ever called from one goroutine, so it needs no locking of its own.
// Completion order is not defined. It returns the first error from visit or
// the context.
func ForEachBatch(
	ctx context.Context,
	cfg Config,
	seeds []engine.Seed,
	s Searcher,
	visit func(Result) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan engine.Seed, cfg.Threads*2)
	results := make(chan Result, cfg.Threads*2)

	g, gctx := errgroup.WithContext(ctx)

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		for _, sd := range seeds {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case jobs <- sd:
			}
		}
		return nil
	})

	// Workers
	workers, wctx := errgroup.WithContext(gctx)
	for w := 0; w < cfg.Threads; w++ {
		workers.Go(func() error {
			for sd := range jobs {
				if err := wctx.Err(); err != nil {
					return err
				}
				b := s.SearchBranch(sd)
				select {
				case results <- Result{Seed: sd, Batch: b}:
				case <-wctx.Done():
					return wctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workers.Wait()
	})

	// Collector
	g.Go(func() error {
		for r := range results {
			if err := visit(r); err != nil {
				// Drain so workers blocked on send can observe cancellation.
				go func() {
					for range results {
					}
				}()
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
