package internal

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestComputeNofBatches(t *testing.T) {
	if n := ComputeNofBatches(0, 100, 7); n != 7 {
		t.Errorf("explicit batch count: got %v, want 7", n)
	}
	if n := ComputeNofBatches(5, 5, 0); n != 1 {
		t.Errorf("empty range: got %v, want 1", n)
	}
	if n := ComputeNofBatches(0, 1, 0); n != 1 {
		t.Errorf("single element: got %v, want 1", n)
	}
	want := 2 * runtime.NumCPU()
	if n := ComputeNofBatches(0, 1<<20, 0); n != want {
		t.Errorf("default: got %v, want %v", n, want)
	}
}

func TestComputeNofBatchesPanics(t *testing.T) {
	for _, c := range []struct{ low, high, n int }{{3, 2, 0}, {0, 10, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ComputeNofBatches(%v, %v, %v) did not panic", c.low, c.high, c.n)
				}
			}()
			ComputeNofBatches(c.low, c.high, c.n)
		}()
	}
}

func TestComputeNofWorkers(t *testing.T) {
	if n := ComputeNofWorkers(3); n != 3 {
		t.Errorf("got %v, want 3", n)
	}
	if n := ComputeNofWorkers(0); n != runtime.GOMAXPROCS(0) {
		t.Errorf("got %v, want GOMAXPROCS", n)
	}
}

func TestWrapPanic(t *testing.T) {
	if WrapPanic(nil) != nil {
		t.Error("nil panic wrapped")
	}
	sentinel := errors.New("boom")
	if err, ok := WrapPanic(sentinel).(error); !ok || !errors.Is(err, sentinel) {
		t.Errorf("wrapped error lost its cause: %v", err)
	}
	if s, ok := WrapPanic("boom").(string); !ok || !strings.HasPrefix(s, "boom\n") {
		t.Errorf("wrapped string: %q", s)
	}
}
