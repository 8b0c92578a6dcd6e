// ============================================================================
// SPSC CHANNEL PRECISION BENCHMARK SUITE
// ============================================================================
//
// Single-thread operation latency (pure Push/Pop cost without coherency
// traffic), cross-core SPSC throughput (true deployment shape), and a Go
// channel baseline for scale. Warmup precedes every timed section so the
// ring is in cache before measurement starts.

package spsc

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"main/backoff"
)

func BenchmarkRing_PushPop(b *testing.B) {
	for _, capacity := range []int{64, 256, 1024, 4096} {
		b.Run(fmt.Sprintf("cap_%d", capacity), func(b *testing.B) {
			r := New[tick](capacity)
			rec := mkTick(1)

			for i := 0; i < 1000; i++ { // warmup
				if r.TryPush(rec) {
					r.TryPop()
				}
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r.TryPush(rec)
				r.TryPop()
			}
		})
	}
}

func BenchmarkRing_CrossCore(b *testing.B) {
	for _, capacity := range []int{256, 4096} {
		b.Run(fmt.Sprintf("cap_%d", capacity), func(b *testing.B) {
			r := New[tick](capacity)
			var stop atomic.Bool
			done := make(chan struct{})

			var consumed atomic.Uint64
			PinnedConsumer(-1, r, &stop, &backoff.Hot{}, func(*tick) {
				consumed.Add(1)
			}, done)

			rec := mkTick(1)
			wait := &backoff.Hot{}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for !r.TryPush(rec) {
					wait.Wait()
				}
			}
			for consumed.Load() < uint64(b.N) {
				wait.Wait()
			}
			b.StopTimer()

			stop.Store(true)
			<-done
		})
	}
}

// BenchmarkGoChannel_Baseline is the native-channel comparison point for the
// cross-core numbers above.
func BenchmarkGoChannel_Baseline(b *testing.B) {
	ch := make(chan tick, 4096)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range ch {
		}
	}()

	rec := mkTick(1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch <- rec
	}
	b.StopTimer()
	close(ch)
	<-done
	runtime.KeepAlive(rec)
}
