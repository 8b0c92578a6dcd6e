package affinity

import (
	"runtime"
	"testing"
)

// Pin has no observable return; the contract under test is that it never
// faults, including for out-of-range cores and unpinned platforms.
func TestPinDoesNotFault(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for _, core := range []int{0, 1, 63, -1, 64, 1 << 20} {
		Pin(core)
	}
}
