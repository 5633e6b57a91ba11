package parallel

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type task struct {
	begin, end int
	fn         func(begin, end int)
	done       func(err error)
}

func (t task) run() { t.done(guarded(t.fn, t.begin, t.end)) }

// The pool is started on first use and sized from NumThreads at that time.
// Waiting callers drain the queue themselves, so a For nested inside a
// pooled chunk cannot starve the pool.
var pool struct {
	once  sync.Once
	size  int
	tasks chan task
}

func startPool() {
	pool.once.Do(func() {
		pool.size = NumThreads()
		pool.tasks = make(chan task, 4*pool.size)
		for i := 0; i < pool.size; i++ {
			go func() {
				for t := range pool.tasks {
					t.run()
				}
			}()
		}
		log.Debug().Int("threads", pool.size).Msg("parallel thread pool started")
	})
}

func runPool(pm *PartitionMap, fn func(begin, end int)) {
	startPool()
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		finished = make(chan struct{})
	)
	done := func(err error) {
		if err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}
		wg.Done()
	}
	wg.Add(pm.ParallelDegree)
	// The caller keeps the first chunk for itself.
	for bn := 1; bn < pm.ParallelDegree; bn++ {
		kMin, kMax := pm.GetBucketRange(bn)
		t := task{begin: kMin, end: kMax, fn: fn, done: done}
		select {
		case pool.tasks <- t:
		default:
			t.run()
		}
	}
	kMin, kMax := pm.GetBucketRange(0)
	task{begin: kMin, end: kMax, fn: fn, done: done}.run()
	go func() {
		wg.Wait()
		close(finished)
	}()
	for waiting := true; waiting; {
		select {
		case t := <-pool.tasks:
			t.run()
		case <-finished:
			waiting = false
		}
	}
	if firstErr != nil {
		panic(firstErr)
	}
}

func runNative(pm *PartitionMap, fn func(begin, end int)) {
	var g errgroup.Group
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		kMin, kMax := pm.GetBucketRange(bn)
		g.Go(func() error {
			return guarded(fn, kMin, kMax)
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}
