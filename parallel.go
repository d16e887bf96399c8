package hdrio

import (
	"runtime"
	"sync"
)

// chunkCount returns how many contiguous chunks parallelChunks will split
// total items into: one per available CPU, never more than total.
func chunkCount(total int) int {
	n := runtime.GOMAXPROCS(0)
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	return n
}

// parallelChunks partitions [0, total) into chunks contiguous ranges and
// runs fn on each from its own goroutine, blocking until all complete.
// fn receives the chunk index so callers can keep per-chunk state without
// locking; ranges never overlap.
func parallelChunks(total, chunks int, fn func(chunk, start, end int)) {
	if total <= 0 {
		return
	}
	if chunks <= 1 {
		fn(0, 0, total)
		return
	}
	step := (total + chunks - 1) / chunks
	var wg sync.WaitGroup
	for i := 0; i < chunks; i++ {
		start := i * step
		end := start + step
		if end > total {
			end = total
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(chunk, s, e int) {
			defer wg.Done()
			fn(chunk, s, e)
		}(i, start, end)
	}
	wg.Wait()
}

// parallelFor runs fn over contiguous sub-ranges of [0, total) and waits
// for all of them.
func parallelFor(total int, fn func(start, end int)) {
	parallelChunks(total, chunkCount(total), func(_, start, end int) {
		fn(start, end)
	})
}
