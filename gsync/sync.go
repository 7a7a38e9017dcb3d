// Package gsync provides shared cells for coordinating workers: an atomic
// float64 accumulator and an atomic work cursor.
//
// Both types are padded to a cache line on either side, so that a cell that
// is hammered by all workers does not share a line with neighboring data.
// The zero value of each type is ready to use and holds 0.
package gsync

import (
	"math"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Float64 is a float64 that can be read and added to atomically.
type Float64 struct {
	_    cpu.CacheLinePad
	bits atomic.Uint64
	_    cpu.CacheLinePad
}

// Add atomically adds delta to f and returns the new value.
//
// There is no hardware fetch-and-add for floating-point values, so Add
// retries a compare-and-swap on the bit pattern until no other writer
// intervenes. It never blocks.
func (f *Float64) Add(delta float64) (new float64) {
	for {
		oldBits := f.bits.Load()
		new = math.Float64frombits(oldBits) + delta
		if f.bits.CompareAndSwap(oldBits, math.Float64bits(new)) {
			return
		}
	}
}

func (f *Float64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *Float64) Store(value float64) {
	f.bits.Store(math.Float64bits(value))
}

// Cursor is a shared index into a range of work units. Workers claim units by
// advancing it atomically; the cursor may move past the end of the range.
type Cursor struct {
	_     cpu.CacheLinePad
	value atomic.Int64
	_     cpu.CacheLinePad
}

// Add atomically adds delta to c and returns the new value.
func (c *Cursor) Add(delta int) (new int) {
	return int(c.value.Add(int64(delta)))
}

func (c *Cursor) Load() int {
	return int(c.value.Load())
}

func (c *Cursor) Store(value int) {
	c.value.Store(int64(value))
}

// ClaimGuided claims the next chunk of the half-open interval from c to high
// for one of workers workers. The chunk size is the remaining size divided by
// the number of workers, rounded up, but at least minChunk, and it never
// extends past high. Chunks therefore get smaller as the range drains.
//
// ClaimGuided returns ok == false once c has reached high.
func (c *Cursor) ClaimGuided(high, workers, minChunk int) (low, next int, ok bool) {
	if workers < 1 {
		workers = 1
	}
	if minChunk < 1 {
		minChunk = 1
	}
	for {
		current := c.value.Load()
		low = int(current)
		remaining := high - low
		if remaining <= 0 {
			return low, low, false
		}
		chunk := (remaining + workers - 1) / workers
		if chunk < minChunk {
			chunk = minChunk
		}
		if chunk > remaining {
			chunk = remaining
		}
		next = low + chunk
		if c.value.CompareAndSwap(current, int64(next)) {
			return low, next, true
		}
	}
}
