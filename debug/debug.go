// ─────────────────────────────────────────────────────────────────────────────
// debug.go — cold-path diagnostic logging (zero-alloc)
//
// Purpose:
//   - Reports infrequent conditions without introducing heap pressure:
//     verification mismatches, benchmark lifecycle tags, CLI usage errors.
//
// Notes:
//   - Avoids fmt to keep the footprint small and latency flat.
//   - Writes straight to stderr; stdout is reserved for benchmark results.
//
// ⚠️ Never invoke in hot loops — use only in failure diagnostics.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "main/utils"

// DropError logs an error with an alloc-free print strategy. A nil err
// prints the prefix alone, which is how tagged lifecycle events are emitted.
//
//go:nosplit
//go:inline
//go:registerparams
func DropError(prefix string, err error) {
	if err != nil {
		msg := prefix + ": " + err.Error() + "\n"
		utils.PrintWarning(msg)
	} else {
		msg := prefix + "\n"
		utils.PrintWarning(msg)
	}
}

// DropMessage logs a tagged diagnostic message. Used for cold paths only:
// run start/finish markers, counter verification mismatches, torn-read
// reports from the ordering harness.
//
//go:nosplit
//go:inline
//go:registerparams
func DropMessage(prefix, message string) {
	msg := prefix + ": " + message + "\n"
	utils.PrintWarning(msg)
}
