// Package parallel provides range-splitting helpers for data-parallel
// loops. The helpers divide [0, n) into contiguous chunks and run one
// goroutine per chunk, blocking until all chunks finish.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize runs fn over [0, n) split across GOMAXPROCS workers.
func Parallelize(n int, fn func(start, end int)) {
	ParallelizeWithWorkers(n, runtime.GOMAXPROCS(0), fn)
}

// ParallelizeWithWorkers runs fn over [0, n) split across at most
// workers goroutines. workers <= 1 runs sequentially on the calling
// goroutine.
func ParallelizeWithWorkers(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn over [0, n): sequentially when n is
// below threshold, in parallel otherwise. The threshold keeps small
// inputs off the goroutine scheduler.
func ParallelizeWithThreshold(n, threshold int, fn func(start, end int)) {
	if n < threshold {
		if n > 0 {
			fn(0, n)
		}
		return
	}
	Parallelize(n, fn)
}
