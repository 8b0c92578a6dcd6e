// affinity_stub.go - CPU affinity no-op for platforms without
// sched_setaffinity(2): macOS, Windows, BSDs, TinyGo, WASM.

//go:build !linux || tinygo

package affinity

// Pin is a silent no-op where thread-to-core binding is unavailable. The
// identical signature lets callers pin unconditionally; scheduling jitter
// on these platforms is simply accepted.
//
//go:nosplit
//go:inline
func Pin(cpu int) {
}
