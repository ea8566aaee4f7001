// Package enrich provides pluggable batch-enrichment strategies for read
// paths that attach remote entities (an owner profile, a related record) to a
// list of local records. The default Sequential strategy matches the
// one-call-per-item behavior of the services; Bounded and Cached are opt-in
// improvements for fan-out cost.
package enrich

import (
	"context"
	"sync"
)

// FetchFunc retrieves one related entity by id.
type FetchFunc[T any] func(ctx context.Context, id int64) (T, error)

// Strategy fetches related entities for a set of ids. Failed ids are simply
// absent from the result map; callers decide whether missing entries degrade
// the item or fail the request.
type Strategy[T any] interface {
	Fetch(ctx context.Context, ids []int64, fn FetchFunc[T]) map[int64]T
}

// Sequential issues one fetch per id, in order, on the calling goroutine.
type Sequential[T any] struct{}

func (Sequential[T]) Fetch(ctx context.Context, ids []int64, fn FetchFunc[T]) map[int64]T {
	out := make(map[int64]T, len(ids))
	for _, id := range ids {
		if ctx.Err() != nil {
			return out
		}
		v, err := fn(ctx, id)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}

// Bounded fans fetches out across a fixed pool of worker goroutines,
// capping concurrency against the remote service.
type Bounded[T any] struct {
	workers int
}

const defaultWorkers = 8

// NewBounded creates a Bounded strategy with the given worker count.
// If workers <= 0, defaultWorkers is used.
func NewBounded[T any](workers int) Bounded[T] {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return Bounded[T]{workers: workers}
}

func (b Bounded[T]) Fetch(ctx context.Context, ids []int64, fn FetchFunc[T]) map[int64]T {
	jobs := make(chan int64)
	out := make(map[int64]T, len(ids))

	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := b.workers
	if workers > len(ids) {
		workers = len(ids)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				v, err := fn(ctx, id)
				if err != nil {
					continue
				}
				mu.Lock()
				out[id] = v
				mu.Unlock()
			}
		}()
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return out
}

// Cached decorates another strategy with per-call id deduplication, so a
// list where many items share one owner costs a single remote fetch. The
// cache lives for one Fetch call; nothing is shared across requests.
type Cached[T any] struct {
	next Strategy[T]
}

func NewCached[T any](next Strategy[T]) Cached[T] {
	return Cached[T]{next: next}
}

func (c Cached[T]) Fetch(ctx context.Context, ids []int64, fn FetchFunc[T]) map[int64]T {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return c.next.Fetch(ctx, unique, fn)
}
