// Package geomean computes the geometric mean of a byte sequence by summing
// logarithms in parallel and exponentiating the sum.
//
// Zero bytes are excluded from the sum but counted in the sequence length, so
// the result is exp(Σ ln(s[i]) / len(s)) over all s[i] > 0. An empty sequence,
// or one that contains only zero bytes, yields exactly 1.
//
// The package provides six strategies for distributing the summation over a
// team of worker goroutines. They differ in how indices are assigned to
// workers and in how the workers' partial sums are merged, but not in their
// result, which agrees up to floating-point reassociation:
//
//	strategy            assignment                 merge
//	EvenSplit           static contiguous blocks   reduction
//	SingleItemQueue     shared cursor, 1 index     atomic add
//	Guided              shared cursor, shrinking   reduction
//	ChunkedQueue        shared cursor, k indices   atomic add
//	NonParallelAtomic   calling goroutine only     atomic add per term
//	StaticPartition...  static contiguous blocks   atomic add
//
// Every function takes the number of workers as a parameter; a value of 0 or
// less means runtime.GOMAXPROCS(0). The input is only read, never retained,
// and all workers have terminated when a function returns.
package geomean

import (
	"fmt"
	"math"

	"github.com/pcnagy/geomean-lab/gsync"
	"github.com/pcnagy/geomean-lab/internal"
	"github.com/pcnagy/geomean-lab/parallel"
)

// Options configures Compute.
type Options struct {
	Strategy Strategy
	// Threads is the number of workers; 0 or less means runtime.GOMAXPROCS(0).
	Threads int
}

// Compute returns the geometric mean of s using the strategy selected in opts.
//
// For the chunked queue, a Chunk of 0 selects DefaultChunk. Compute panics if
// opts.Strategy has an unknown kind, or a negative Chunk.
func Compute(s []byte, opts Options) float64 {
	switch kind := opts.Strategy.Kind; kind {
	case EvenSplitKind:
		return EvenSplit(s, opts.Threads)
	case SingleItemQueueKind:
		return SingleItemQueue(s, opts.Threads)
	case GuidedKind:
		return Guided(s, opts.Threads)
	case ChunkedQueueKind:
		return ChunkedQueue(s, opts.Threads, opts.Strategy.chunk())
	case NonParallelAtomicKind:
		return NonParallelAtomic(s)
	case StaticPartitionAtomicMergeKind:
		return StaticPartitionAtomicMerge(s, opts.Threads)
	default:
		panic(fmt.Sprintf("unknown strategy: %v", kind))
	}
}

// GeometricMean returns the geometric mean of s with the default strategy and
// team size.
func GeometricMean(s []byte) float64 {
	return Compute(s, Options{})
}

// EvenSplit divides s into one contiguous block per worker. Each worker sums
// its block locally and hands the sum back to the goroutine that started it;
// the sums are then added up along the fork tree.
func EvenSplit(s []byte, threads int) float64 {
	n := len(s)
	sum := parallel.RangeReduceSum(0, n, internal.ComputeNofWorkers(threads), func(low, high int) float64 {
		return sumRange(s, low, high, n)
	})
	return math.Exp(sum)
}

// SingleItemQueue lets each worker claim one index at a time from a shared
// cursor, until a claim lands at or past the end of s. Each worker adds its
// local sum to the shared total once, when it runs out of work.
func SingleItemQueue(s []byte, threads int) float64 {
	n := len(s)
	var cursor gsync.Cursor
	var total gsync.Float64
	parallel.Team(threads, func(int) {
		var local float64
		for {
			i := cursor.Add(1) - 1
			if i >= n {
				break
			}
			local += Term(s[i], n)
		}
		total.Add(local)
	})
	return math.Exp(total.Load())
}

// Guided lets workers claim chunks whose size is the remaining work divided by
// the number of workers, so chunks shrink as the input drains. The merge is
// the same reduction as in EvenSplit.
func Guided(s []byte, threads int) float64 {
	n := len(s)
	sum := parallel.GuidedReduceSum(0, n, threads, 1, func(low, high int) float64 {
		return sumRange(s, low, high, n)
	})
	return math.Exp(sum)
}

// ChunkedQueue is like SingleItemQueue, except that each claim advances the
// shared cursor by k and yields the block of k indices before the new cursor
// position, clipped to the end of s. A claim that starts at or past the end
// is discarded.
//
// ChunkedQueue panics if k < 1.
func ChunkedQueue(s []byte, threads, k int) float64 {
	if k < 1 {
		panic(fmt.Sprintf("invalid chunk size: %v", k))
	}
	n := len(s)
	// Any chunk of n or more covers s in one claim; a smaller k keeps the
	// cursor from wrapping around.
	k = min(k, max(n, 1))
	var cursor gsync.Cursor
	var total gsync.Float64
	parallel.Team(threads, func(int) {
		var local float64
		for {
			end := cursor.Add(k)
			start := end - k
			if start >= n {
				break
			}
			local += sumRange(s, start, min(end, n), n)
		}
		total.Add(local)
	})
	return math.Exp(total.Load())
}

// NonParallelAtomic scans s on the calling goroutine, but still adds every
// term to the total with an atomic operation. It measures the cost of
// synchronization when there is nothing to synchronize with.
func NonParallelAtomic(s []byte) float64 {
	n := len(s)
	var total gsync.Float64
	for _, v := range s {
		if v > 0 {
			total.Add(Term(v, n))
		}
	}
	return math.Exp(total.Load())
}

// StaticPartitionAtomicMerge assigns each worker a fixed contiguous block of
// s, as EvenSplit does. Workers do not wait for each other; each one adds its
// local sum to the shared total with a single atomic operation as soon as its
// block is done.
func StaticPartitionAtomicMerge(s []byte, threads int) float64 {
	n := len(s)
	threads = internal.ComputeNofWorkers(threads)
	var total gsync.Float64
	parallel.Team(threads, func(worker int) {
		low, high := parallel.Block(0, n, threads, worker)
		total.Add(sumRange(s, low, high, n))
	})
	return math.Exp(total.Load())
}
