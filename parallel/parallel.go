// Package parallel provides functions for expressing parallel loops and
// reductions over ranges of work units.
package parallel

import (
	"fmt"
	"sync"

	"github.com/pcnagy/geomean-lab/internal"
)

type Addable interface {
	~uint | ~int | ~uintptr |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64 |
		~complex64 | ~complex128 |
		~string
}

// Range receives a range, a batch count n, and a range function f, divides the
// range into batches, and invokes the range function for each of these batches
// in parallel, covering the half-open interval from low to high, including low
// but excluding high.
//
// The range is specified by a low and high integer, with low <= high. The
// batches are determined by dividing up the size of the range (high - low) by
// n. If n is 0, a reasonable default is used that takes runtime.NumCPU()
// into account.
//
// The range function is invoked for each batch in its own goroutine, with 0 <=
// low <= high, and Range returns only when all range functions have terminated.
//
// Range panics if high < low, or if n < 0.
//
// If one or more range function invocations panic, the corresponding goroutines
// recover the panics, and Range eventually panics with the left-most recovered
// panic value.
func Range(low, high, n int, f func(low, high int)) {
	var recur func(int, int, int)
	recur = func(low, high, n int) {
		switch {
		case n == 1:
			f(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				f(low, high)
				return
			}
			var p interface{}
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer func() {
					p = internal.WrapPanic(recover())
					wg.Done()
				}()
				recur(mid, high, n-half)
			}()
			recur(low, mid, half)
			wg.Wait()
			if p != nil {
				panic(p)
			}
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// RangeReduceSum receives a range, a batch count, and a range reducer
// function, divides the range into batches, and invokes the range reducer for
// each of these batches in parallel, covering the half-open interval from low
// to high, including low but excluding high. The results of the range reducer
// invocations are then added together.
//
// The range is specified by a low and high integer, with low <= high. The
// batches are determined by dividing up the size of the range (high - low) by
// n. If n is 0, a reasonable default is used that takes runtime.NumCPU()
// into account.
//
// Each partial result is handed back to the goroutine that forked it, so no
// state is shared between reducers. The additions follow the shape of the
// fork tree, which is the same for the same range and batch count.
//
// RangeReduceSum panics if high < low, or if n < 0.
//
// If one or more reducer invocations panic, the corresponding goroutines
// recover the panics, and RangeReduceSum eventually panics with the
// left-most recovered panic value.
func RangeReduceSum[T Addable](low, high, n int, reduce func(low, high int) T) T {
	var recur func(int, int, int) T
	recur = func(low, high, n int) T {
		switch {
		case n == 1:
			return reduce(low, high)
		case n > 1:
			batchSize := ((high - low - 1) / n) + 1
			half := n / 2
			mid := low + batchSize*half
			if mid >= high {
				return reduce(low, high)
			}
			var left, right T
			var p interface{}
			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer func() {
					p = internal.WrapPanic(recover())
					wg.Done()
				}()
				right = recur(mid, high, n-half)
			}()
			left = recur(low, mid, half)
			wg.Wait()
			if p != nil {
				panic(p)
			}
			return left + right
		default:
			panic(fmt.Sprintf("invalid number of batches: %v", n))
		}
	}
	return recur(low, high, internal.ComputeNofBatches(low, high, n))
}

// Team starts a team of workers goroutines, invokes body once in each of them
// with the worker's number in [0, workers), and returns only when all of them
// have terminated. If workers is 0 or less, runtime.GOMAXPROCS(0) workers are
// started.
//
// Team is the counterpart of a parallel region: the team exists for the
// duration of the call and no goroutines outlive it.
//
// If one or more workers panic, Team eventually panics with the left-most
// recovered panic value.
func Team(workers int, body func(worker int)) {
	workers = internal.ComputeNofWorkers(workers)
	Range(0, workers, workers, func(low, high int) {
		for worker := low; worker < high; worker++ {
			body(worker)
		}
	})
}

// TeamReduceSum is like Team, except that each worker returns a partial
// result, and TeamReduceSum returns the sum of all of them.
func TeamReduceSum[T Addable](workers int, body func(worker int) T) T {
	workers = internal.ComputeNofWorkers(workers)
	return RangeReduceSum(0, workers, workers, func(low, high int) (result T) {
		for worker := low; worker < high; worker++ {
			result += body(worker)
		}
		return
	})
}

// Block returns the contiguous subrange of the half-open interval from low to
// high that a static schedule assigns to worker i of n. Sizes of the n blocks
// differ by at most one, larger blocks come first, and the blocks of workers
// 0 to n-1 cover the interval in order without overlap.
//
// Block panics if high < low, if n < 1, or if i is not in [0, n).
func Block(low, high, n, i int) (blockLow, blockHigh int) {
	if high < low {
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	if n < 1 || i < 0 || i >= n {
		panic(fmt.Sprintf("invalid block %v of %v", i, n))
	}
	size := high - low
	quotient, remainder := size/n, size%n
	if i < remainder {
		blockLow = low + i*(quotient+1)
		return blockLow, blockLow + quotient + 1
	}
	blockLow = low + remainder*(quotient+1) + (i-remainder)*quotient
	return blockLow, blockLow + quotient
}
