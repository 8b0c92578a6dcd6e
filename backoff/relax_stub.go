// ════════════════════════════════════════════════════════════════════════════════════════════════
// CPU Relaxation - Fallback Implementation
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: Cross-Platform Compatibility Layer
//
// Description:
//   Fallback for architectures without a dedicated spin-wait instruction, and for
//   builds with assembly or CGO disabled (noasm/nocgo tags). Keeps the API surface
//   identical so callers never branch on platform.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build (!amd64 && !arm64) || noasm || nocgo || !cgo

package backoff

// Relax is a no-op on platforms without a pause-class instruction. The empty
// body inlines away entirely; spin loops simply poll at full speed.
//
//go:norace
//go:nocheckptr
//go:nosplit
//go:inline
//go:registerparams
func Relax() {
}
