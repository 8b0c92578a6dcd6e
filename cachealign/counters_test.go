package cachealign

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"
)

func layouts(threads int) []Layout {
	return []Layout{NewPacked(threads), NewPadded(threads)}
}

func TestConstructorsPanicOnBadCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewPacked(%d) did not panic", n)
				}
			}()
			NewPacked(n)
		}()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewPadded(%d) did not panic", n)
				}
			}()
			NewPadded(n)
		}()
	}
}

func TestPaddedStride(t *testing.T) {
	p := NewPadded(4)
	for i := 1; i < 4; i++ {
		gap := uintptr(unsafe.Pointer(&p.counters[i])) - uintptr(unsafe.Pointer(&p.counters[i-1]))
		if gap != cacheLine {
			t.Fatalf("counter stride = %d bytes, want %d", gap, cacheLine)
		}
	}
}

func TestPackedIsContiguous(t *testing.T) {
	p := NewPacked(4)
	gap := uintptr(unsafe.Pointer(&p.counters[1])) - uintptr(unsafe.Pointer(&p.counters[0]))
	if gap != 8 {
		t.Fatalf("packed counter stride = %d bytes, want 8", gap)
	}
}

// TestExactCountsUnderConcurrency is the lost-update detector: for every
// thread count 1..N, each thread's final counter must equal exactly its
// assigned increment count in both layouts.
func TestExactCountsUnderConcurrency(t *testing.T) {
	const iters = 100_000
	for threads := 1; threads <= 8; threads++ {
		for _, l := range layouts(threads) {
			t.Run(fmt.Sprintf("%s_threads_%d", l.Name(), threads), func(t *testing.T) {
				var wg sync.WaitGroup
				for id := 0; id < threads; id++ {
					wg.Add(1)
					go func(id int) {
						defer wg.Done()
						for i := 0; i < iters; i++ {
							l.Increment(id)
						}
					}(id)
				}
				wg.Wait()

				for id := 0; id < threads; id++ {
					if got := l.Read(id); got != iters {
						t.Errorf("%s counter %d = %d, want %d", l.Name(), id, got, iters)
					}
				}
			})
		}
	}
}
