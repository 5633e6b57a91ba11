// Package parallel runs index ranges across the parallel backend selected
// at build configuration time: a fixed thread pool (AT_PARALLEL_OPENMP) or
// one goroutine per chunk (AT_PARALLEL_NATIVE).
package parallel

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/notargets/atconfig/atconfig"
)

type Backend uint8

const (
	ThreadPool Backend = iota
	Native
)

func (b Backend) String() string {
	switch b {
	case ThreadPool:
		return "thread-pool"
	case Native:
		return "native"
	}
	return fmt.Sprintf("Backend(%d)", uint8(b))
}

// Selected is the backend the build was configured with.
func Selected() Backend {
	if atconfig.ParallelOpenMP() {
		return ThreadPool
	}
	return Native
}

var numThreads int64

// NumThreads is the parallel degree used by For, GOMAXPROCS unless set.
func NumThreads() int {
	if n := atomic.LoadInt64(&numThreads); n > 0 {
		return int(n)
	}
	return runtime.GOMAXPROCS(0)
}

// SetNumThreads overrides the parallel degree; n < 1 restores the default.
func SetNumThreads(n int) {
	if n < 1 {
		n = 0
	}
	atomic.StoreInt64(&numThreads, int64(n))
}

// For calls fn over disjoint sub-ranges covering [begin, end). Ranges
// shorter than grain, or a single thread, run inline on the caller.
// A panic in fn is re-raised on the caller once every chunk finished.
func For(begin, end, grain int, fn func(begin, end int)) {
	ForBackend(Selected(), begin, end, grain, fn)
}

func ForBackend(b Backend, begin, end, grain int, fn func(begin, end int)) {
	if end <= begin {
		return
	}
	if grain < 1 {
		grain = 1
	}
	var (
		n      = end - begin
		degree = NumThreads()
	)
	if chunks := (n + grain - 1) / grain; chunks < degree {
		degree = chunks
	}
	if degree <= 1 {
		fn(begin, end)
		return
	}
	pm := NewPartitionMap(degree, begin, end)
	switch b {
	case ThreadPool:
		runPool(pm, fn)
	default:
		runNative(pm, fn)
	}
}

// Reduce maps each chunk with fn and folds the partial results with combine,
// in chunk order.
func Reduce[T any](begin, end, grain int, identity T, fn func(begin, end int, identity T) T,
	combine func(a, b T) T) (result T) {
	if end <= begin {
		return identity
	}
	if grain < 1 {
		grain = 1
	}
	var (
		degree = NumThreads()
	)
	if chunks := (end - begin + grain - 1) / grain; chunks < degree {
		degree = chunks
	}
	if degree <= 1 {
		return fn(begin, end, identity)
	}
	pm := NewPartitionMap(degree, begin, end)
	partial := make([]T, degree)
	For(0, degree, 1, func(b, e int) {
		for bn := b; bn < e; bn++ {
			kMin, kMax := pm.GetBucketRange(bn)
			partial[bn] = fn(kMin, kMax, identity)
		}
	})
	result = identity
	for _, p := range partial {
		result = combine(result, p)
	}
	return
}

type chunkPanic struct {
	value interface{}
}

func (p chunkPanic) Error() string { return fmt.Sprintf("panic in parallel chunk: %v", p.value) }

func guarded(fn func(begin, end int), begin, end int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chunkPanic{r}
		}
	}()
	fn(begin, end)
	return
}
