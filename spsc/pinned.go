// pinned.go
//
// Low-latency SPSC consumer loop.
//
//   • Dedicated OS thread, optionally pinned to `core`.
//   • Drains the ring through fn until *stop is set.
//   • Waiting policy is injected (backoff.Strategy), never hard-coded:
//     hot-spin for dedicated cores, yield/sleep tiers for shared hosts.
//   • Closes `done` exactly once on exit.
//
// The stop flag is the only cross-goroutine control word; records flow
// exclusively through the ring.

package spsc

import (
	"runtime"
	"sync/atomic"

	"main/affinity"
	"main/backoff"
)

// PinnedConsumer starts the consumer goroutine for r and returns
// immediately. fn runs on the consumer thread for every record, in push
// order. Passing a negative core skips pinning.
func PinnedConsumer[T any](core int, r *Ring[T], stop *atomic.Bool, wait backoff.Strategy, fn func(*T), done chan<- struct{}) {
	go func() {
		runtime.LockOSThread()
		affinity.Pin(core) // no-op off Linux or for core < 0
		defer func() {
			runtime.UnlockOSThread()
			close(done)
		}()

		for {
			if rec, ok := r.TryPop(); ok {
				fn(&rec)
				wait.Reset()
				continue
			}
			if stop.Load() {
				// Drain residue published before the stop flag flipped.
				for {
					rec, ok := r.TryPop()
					if !ok {
						return
					}
					fn(&rec)
				}
			}
			wait.Wait()
		}
	}()
}
