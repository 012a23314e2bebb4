// Copyright ©2024 The lkag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workerpool is a small bounded worker pool shared by the
// TBInterpolator k-loop and the GreensAssembler ω-loop (spec.md §5):
// a fixed number of long-lived goroutines, each running a caller-owned
// scratch bundle for its entire lifetime. Run feeds work items over a
// channel; RunReduce assigns them to workers by stride.
// It is grounded on the dispatcher/worker-channel pattern in
// optimize.GlobalOptimize (optimize/global.go) and the Concurrent-flag
// serial fallback of diff/fd.Settings.
package workerpool

import (
	"runtime"
	"sync"
)

// Run executes fn(i) for every i in [0, n) using up to workers concurrent
// goroutines, each goroutine calling newScratch once and passing the same
// scratch value to every work item it processes — so a scratch value is
// never used by two goroutines at once, while fn itself runs concurrently
// for different items. workers <= 0 means "pick a default" (GOMAXPROCS, capped to n). Run
// blocks until every item has completed.
func Run(n, workers int, newScratch func() any, fn func(item int, scratch any)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		scratch := newScratch()
		for i := 0; i < n; i++ {
			fn(i, scratch)
		}
		return
	}

	items := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			scratch := newScratch()
			for i := range items {
				fn(i, scratch)
			}
		}()
	}
	for i := 0; i < n; i++ {
		items <- i
	}
	close(items)
	wg.Wait()
}

// RunReduce is like Run but collects one partial result per worker (via
// the scratch value, which callers mutate in place across their share of
// work items) and reduces them into a single value after all workers
// finish. Items are assigned to workers by stride (worker w takes items
// w, w+workers, ...) and the reduce order is the worker-index order, so
// results are deterministic for a fixed worker count (spec.md §5's
// ordering guarantee).
func RunReduce(n, workers int, newScratch func(worker int) any, fn func(item int, scratch any), reduce func(scratches []any)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		s := newScratch(0)
		for i := 0; i < n; i++ {
			fn(i, s)
		}
		reduce([]any{s})
		return
	}

	scratches := make([]any, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			s := newScratch(w)
			scratches[w] = s
			for i := w; i < n; i += workers {
				fn(i, s)
			}
		}()
	}
	wg.Wait()
	reduce(scratches)
}
