package geomean

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the work distribution strategies.
type Kind int

const (
	// EvenSplitKind partitions the input into one contiguous block per worker
	// and combines the per-worker sums in a reduction.
	EvenSplitKind Kind = iota
	// SingleItemQueueKind lets workers claim one index at a time from a shared
	// cursor and merge their sums with an atomic add.
	SingleItemQueueKind
	// GuidedKind lets workers claim chunks of decreasing size and combines the
	// per-worker sums in a reduction.
	GuidedKind
	// ChunkedQueueKind lets workers claim fixed-size chunks from a shared
	// cursor and merge their sums with an atomic add.
	ChunkedQueueKind
	// NonParallelAtomicKind scans the input on the calling goroutine and
	// applies every term with an atomic add.
	NonParallelAtomicKind
	// StaticPartitionAtomicMergeKind partitions the input like EvenSplitKind,
	// but merges the per-worker sums with an atomic add.
	StaticPartitionAtomicMergeKind
)

// DefaultChunk is the chunk size of a chunked queue when none is given.
const DefaultChunk = 100

var (
	// ErrUnknownStrategy is returned by ParseStrategy for a name it does not
	// know, or a suffix on a strategy that takes none.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrInvalidChunk is returned for a chunk size that is not a positive
	// integer.
	ErrInvalidChunk = errors.New("invalid chunk size")
)

var kindNames = [...]string{
	EvenSplitKind:                  "even-split",
	SingleItemQueueKind:            "single-item-queue",
	GuidedKind:                     "guided",
	ChunkedQueueKind:               "chunked-queue",
	NonParallelAtomicKind:          "non-parallel-atomic",
	StaticPartitionAtomicMergeKind: "static-atomic-merge",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// A Strategy selects how Compute distributes work. Chunk is only meaningful
// for ChunkedQueueKind, where 0 stands for DefaultChunk.
//
// The zero Strategy is the even split.
type Strategy struct {
	Kind  Kind
	Chunk int
}

// StrategyEvenSplit returns the even split strategy.
func StrategyEvenSplit() Strategy { return Strategy{Kind: EvenSplitKind} }

// StrategySingleItemQueue returns the single-item queue strategy.
func StrategySingleItemQueue() Strategy { return Strategy{Kind: SingleItemQueueKind} }

// StrategyGuided returns the guided strategy.
func StrategyGuided() Strategy { return Strategy{Kind: GuidedKind} }

// StrategyNonParallelAtomic returns the non-parallel atomic strategy.
func StrategyNonParallelAtomic() Strategy {
	return Strategy{Kind: NonParallelAtomicKind}
}

// StrategyStaticPartitionAtomicMerge returns the static partition strategy
// with atomic merge.
func StrategyStaticPartitionAtomicMerge() Strategy {
	return Strategy{Kind: StaticPartitionAtomicMergeKind}
}

// StrategyChunkedQueue returns a chunked queue strategy with chunk size k.
func StrategyChunkedQueue(k int) Strategy {
	return Strategy{Kind: ChunkedQueueKind, Chunk: k}
}

// Strategies returns all strategies, using chunk size k for the chunked queue.
func Strategies(k int) []Strategy {
	return []Strategy{
		StrategyEvenSplit(),
		StrategySingleItemQueue(),
		StrategyGuided(),
		StrategyChunkedQueue(k),
		StrategyNonParallelAtomic(),
		StrategyStaticPartitionAtomicMerge(),
	}
}

func (s Strategy) chunk() int {
	if s.Chunk == 0 {
		return DefaultChunk
	}
	return s.Chunk
}

// String returns the textual form accepted by ParseStrategy.
func (s Strategy) String() string {
	if s.Kind == ChunkedQueueKind {
		return s.Kind.String() + ":" + strconv.Itoa(s.chunk())
	}
	return s.Kind.String()
}

// ParseStrategy parses the name of a strategy, as returned by
// Strategy.String. The chunked queue accepts an optional ":K" suffix for its
// chunk size; other strategies do not take a suffix.
func ParseStrategy(text string) (Strategy, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(text), ":")
	for k, kindName := range kindNames {
		if !strings.EqualFold(name, kindName) {
			continue
		}
		s := Strategy{Kind: Kind(k)}
		if !hasArg {
			return s, nil
		}
		if s.Kind != ChunkedQueueKind {
			return Strategy{}, fmt.Errorf("%w: %q takes no chunk size", ErrUnknownStrategy, text)
		}
		chunk, err := strconv.Atoi(arg)
		if err != nil || chunk < 1 {
			return Strategy{}, fmt.Errorf("%w: %q", ErrInvalidChunk, arg)
		}
		s.Chunk = chunk
		return s, nil
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, text)
}
