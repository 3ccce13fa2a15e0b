// Package worker provides the bounded-concurrency machinery for batch
// audits: an order-agnostic pool of indexed tasks and a shared throttle
// for judgment calls.
package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// Task is one unit of audit work. Tasks write their own results into
// caller-owned, index-addressed storage, so completion order never leaks
// into output order.
type Task func(ctx context.Context)

// Run executes tasks with at most workers concurrent goroutines.
// Cancellation is honored between tasks: tasks not yet dispatched when
// ctx is done are skipped, tasks already running complete. Returns the
// number of skipped tasks.
func Run(ctx context.Context, workers int, tasks []Task) int {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}
	if len(tasks) == 0 {
		return 0
	}

	queue := make(chan Task)
	var skipped int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				// A task dispatched just before cancellation must not
				// start after it.
				if ctx.Err() != nil {
					atomic.AddInt32(&skipped, 1)
					continue
				}
				task(ctx)
			}
		}()
	}

	for _, task := range tasks {
		if ctx.Err() != nil {
			atomic.AddInt32(&skipped, 1)
			continue
		}
		queue <- task
	}
	close(queue)
	wg.Wait()

	return int(atomic.LoadInt32(&skipped))
}
