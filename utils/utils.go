package utils

import "syscall"

///////////////////////////////////////////////////////////////////////////////
// Bit Mixing — Deterministic Payload Material
///////////////////////////////////////////////////////////////////////////////

// Mix64 applies the 64-bit finalizer from MurmurHash3. Every input bit
// affects every output bit, which makes it a cheap way to derive
// recognisable multi-word payloads from a round counter: a partially
// visible payload fails its checksum instead of looking plausible.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

///////////////////////////////////////////////////////////////////////////////
// Cold-Path Printing — No fmt, No Allocation Beyond the Message
///////////////////////////////////////////////////////////////////////////////

// Itoa renders a signed integer without fmt. Used only on cold paths
// (diagnostics, usage output) where pulling in fmt's machinery is
// unnecessary.
//
//go:nosplit
func Itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	u := uint64(v)
	if neg {
		u = -u // two's complement magnitude; exact even for MinInt
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// PrintWarning writes msg to stderr (fd 2) with a single write syscall.
//
//go:nosplit
func PrintWarning(msg string) {
	_, _ = syscall.Write(2, []byte(msg))
}
