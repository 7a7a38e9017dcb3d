package internal

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// ComputeNofBatches returns n if it is positive, and otherwise divides the
// size of the range (high - low) by a number that takes runtime.NumCPU() into
// account.
func ComputeNofBatches(low, high, n int) (batches int) {
	switch size := high - low; {
	case size < 0:
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	case n > 0:
		batches = n
	case n < 0:
		panic(fmt.Sprintf("invalid number of batches: %v", n))
	case size > 0:
		batches = 2 * runtime.NumCPU()
		if batches > size {
			batches = size
		}
	default:
		batches = 1
	}
	return
}

// ComputeNofWorkers returns n if it is positive, and runtime.GOMAXPROCS(0)
// otherwise.
func ComputeNofWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		if err, isError := p.(error); isError {
			return fmt.Errorf("%w\n%s\nrethrown at", err, debug.Stack())
		}
		return fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
	}
	return nil
}
