package reconcile

import (
	"context"
	"sync"
)

// DefaultWorkers is the fan-out for Independent batches.
const DefaultWorkers = 4

// ApplyFunc performs one remote write.
type ApplyFunc func(ctx context.Context, m Mutation) error

// ApplyOptions controls batch execution.
type ApplyOptions struct {
	// Discipline selects isolated or fail-fast execution.
	Discipline Discipline

	// Workers bounds concurrency for Independent batches. Sequential batches
	// always use a single worker.
	Workers int

	// Throttle is consulted immediately before every call.
	Throttle Throttle
}

// Apply executes mutations with fn under the selected discipline and reports
// per-item outcomes. Success means fn returned nil; nothing is read back.
func Apply(ctx context.Context, mutations []Mutation, opts ApplyOptions, fn ApplyFunc) ApplyResult {
	if len(mutations) == 0 {
		return ApplyResult{}
	}
	if opts.Discipline == Sequential {
		return applySequential(ctx, mutations, opts.Throttle, fn)
	}
	return applyIndependent(ctx, mutations, opts, fn)
}

// applySequential preserves issuance order and stops at the first error.
func applySequential(ctx context.Context, mutations []Mutation, throttle Throttle, fn ApplyFunc) ApplyResult {
	var res ApplyResult
	for i, m := range mutations {
		err := wait(ctx, throttle)
		if err == nil {
			err = fn(ctx, m)
		}
		if err != nil {
			res.Failed = append(res.Failed, Failure{Mutation: m, Err: err})
			res.Skipped = append(res.Skipped, mutations[i+1:]...)
			return res
		}
		res.Succeeded = append(res.Succeeded, m)
	}
	return res
}

// applyIndependent runs a bounded worker pool. Each item's error is isolated;
// results are reported in input order.
func applyIndependent(ctx context.Context, mutations []Mutation, opts ApplyOptions, fn ApplyFunc) ApplyResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(mutations) {
		workers = len(mutations)
	}

	errs := make([]error, len(mutations))
	indexCh := make(chan int, len(mutations))
	for i := range mutations {
		indexCh <- i
	}
	close(indexCh)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexCh {
				if err := wait(ctx, opts.Throttle); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = fn(ctx, mutations[i])
			}
		}()
	}
	wg.Wait()

	var res ApplyResult
	for i, m := range mutations {
		if errs[i] != nil {
			res.Failed = append(res.Failed, Failure{Mutation: m, Err: errs[i]})
			continue
		}
		res.Succeeded = append(res.Succeeded, m)
	}
	return res
}
