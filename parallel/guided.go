package parallel

import (
	"fmt"

	"github.com/pcnagy/geomean-lab/gsync"
	"github.com/pcnagy/geomean-lab/internal"
)

// GuidedReduceSum covers the half-open interval from low to high with a team
// of workers that claim chunks of decreasing size from a shared cursor, and
// returns the sum of all range reducer results.
//
// Each claim takes the remaining size divided by the number of workers, but
// at least minChunk units (see gsync.Cursor.ClaimGuided). Early claims are
// large to keep claiming overhead low, late claims are small so that workers
// finish at about the same time. Each worker adds up the results of its own
// chunks, and the per-worker partials are combined as in TeamReduceSum.
//
// If workers is 0 or less, runtime.GOMAXPROCS(0) workers are used. If
// minChunk is 0 or less, 1 is used.
//
// GuidedReduceSum panics if high < low.
func GuidedReduceSum[T Addable](
	low, high, workers, minChunk int,
	reduce func(low, high int) T,
) T {
	if high < low {
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	workers = internal.ComputeNofWorkers(workers)
	var cursor gsync.Cursor
	cursor.Store(low)
	return TeamReduceSum(workers, func(int) (partial T) {
		for {
			chunkLow, chunkHigh, ok := cursor.ClaimGuided(high, workers, minChunk)
			if !ok {
				return
			}
			partial += reduce(chunkLow, chunkHigh)
		}
	})
}
