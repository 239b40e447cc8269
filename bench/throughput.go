// Package bench measures how ComputeTopChildScores throughput scales with
// concurrent callers, mirroring the concurrency model where many worker
// goroutines share one Kernel value across independent tree nodes.
package bench

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"puctkernel/kernel"
)

// Result is one throughput measurement at a given goroutine count.
type Result struct {
	Goroutines  int
	Invocations int64
	Elapsed     time.Duration
}

// InvocationsPerSecond is the measured throughput for this Result.
func (r Result) InvocationsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Invocations) / r.Elapsed.Seconds()
}

// NodeFactory builds an independent parent node for one worker's slice of
// the workload, so concurrent workers never share mutable tree state
// through anything but the shared Kernel value and its gatherer.
type NodeFactory func(workerID int) *kernel.ParentNode

// RunThroughput repeatedly calls k.ComputeTopChildScores from goroutines
// concurrent workers, each pinned to its own node via factory, for the
// given duration, and reports aggregate invocation throughput. k must have
// been built with a ChildStatGatherer that's safe to call concurrently from
// multiple goroutines on distinct parents — the same requirement any tree
// implementation backing a real search has to satisfy.
func RunThroughput(ctx context.Context, k *kernel.Kernel, goroutines int, duration time.Duration, factory NodeFactory) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	var invocations atomic.Int64
	g, ctx := errgroup.WithContext(ctx)

	start := time.Now()
	for w := 0; w < goroutines; w++ {
		w := w
		g.Go(func() error {
			parent := factory(w)
			maxChildIndex := parent.NumPolicyMoves - 1
			if maxChildIndex < 0 {
				maxChildIndex = 0
			}
			scores := make([]float64, kernel.MaxChildren)
			counts := make([]int16, kernel.MaxChildren)

			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				if err := k.ComputeTopChildScores(parent, kernel.SelectorPrimary, 0, 0, 0, maxChildIndex, 4, scores, counts, 1.0, nil, 0); err != nil {
					return err
				}
				invocations.Add(1)
			}
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{
		Goroutines:  goroutines,
		Invocations: invocations.Load(),
		Elapsed:     time.Since(start),
	}, nil
}
