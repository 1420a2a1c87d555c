package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// batchesPerWorker controls how finely [0,n) is split. More batches balance
// load better across workers at the cost of more goroutines.
const batchesPerWorker = 4

// forEachIndex calls fn(i) for every i in [0,n) on up to workers goroutines.
// Indices are split into contiguous batches; each batch checks ctx between
// units so a cancelled context stops generation early. fn must only write
// to slots owned by index i.
//
// Returns the first error from fn or the context error. Results written by
// fn are only meaningful when the returned error is nil.
func forEachIndex(ctx context.Context, n, workers int, fn func(i int) error) error {
	if n == 0 {
		return ctx.Err()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	batchSize := n / (workers * batchesPerWorker)
	if batchSize < 1 {
		batchSize = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < n; start += batchSize {
		if gctx.Err() != nil {
			break
		}
		start := start
		end := min(start+batchSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// errgroup cancels gctx only on a unit error; a caller cancellation that
	// lands after the last batch was scheduled still has to surface.
	return ctx.Err()
}
