// Package asyncwrap is the optional bounded-concurrency wrapper described
// in spec §5: the core decode pipeline is synchronous and owns no threads;
// this package lets a caller (a) run a whole-file parse on a worker and
// (b) parallelize one SerializedFile's independent per-object decodes
// behind a semaphore, gathering results in stable, file order.
package asyncwrap

import (
	"context"
	"runtime"
	"sync"
)

// Options bounds the worker pool. Concurrency <= 0 falls back to
// runtime.GOMAXPROCS(0), the reference bound named in spec §5 ("the number
// of hardware threads, capped by a semaphore").
type Options struct {
	Concurrency int
}

func (o *Options) concurrency() int {
	if o == nil || o.Concurrency <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Concurrency
}

// Map runs fn(ctx, i) for every i in [0, n) across a pool bounded by
// opts.Concurrency, returning results and errors indexed exactly like the
// input: ordering is gathered, not produced by completion order, per spec
// §5's "present results in a stable order to callers" rule.
//
// Cancellation is cooperative (spec §5): once ctx is done, no further
// tasks are started, and their slots carry ctx.Err(); tasks already
// running are allowed to finish rather than being torn down mid-decode, so
// a partially decoded object is never published under its own index.
func Map[R any](ctx context.Context, n int, opts *Options, fn func(ctx context.Context, i int) (R, error)) ([]R, []error) {
	results := make([]R, n)
	errs := make([]error, n)
	if n == 0 {
		return results, errs
	}

	sem := make(chan struct{}, opts.concurrency())
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			errs[i] = ctx.Err()
			continue
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			r, err := fn(ctx, i)
			results[i] = r
			errs[i] = err
		}(i)
	}
	wg.Wait()
	return results, errs
}

// ParseFile runs a blocking whole-file parse (a bundle Open, a
// serializedfile Parse, anything with this shape) on its own goroutine, per
// spec §5(a). It returns as soon as parse completes or ctx is cancelled;
// cancellation does not stop the goroutine, it only stops the wait, so
// callers relying on cancellation to bound resource use should also thread
// ctx through parse itself where the underlying call supports it.
func ParseFile[T any](ctx context.Context, parse func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := parse()
		ch <- result{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}
