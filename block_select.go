// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// useBroadwordSelect is set once at process start by probing the CPU
// for BMI2-class bit-manipulation support. It gates which of the two
// select implementations below is used; both are portable Go (no
// assembly), but broadwordSelect is the algorithmic analogue of the
// hardware PDEP+TZCNT approach the spec describes in §4.1/§9 ("one-time
// capability query, monomorphic dispatch thereafter"), while
// naiveSelect is the always-correct linear fallback.
var useBroadwordSelect = cpu.X86.HasBMI2

func init() {
	// On non-x86 platforms cpu.X86 is simply the zero value (the x/sys/cpu
	// package always defines the struct; it is only populated by feature
	// probing on amd64/386). naiveSelect is always correct there, which is
	// exactly the "portable path is mandatory for correctness" contract.
	_ = useBroadwordSelect
}

// selectDispatch isolates the (n+1)-th set bit across the (lo, hi)
// word pair, or reports !ok if fewer than n+1 bits are set.
func selectDispatch(lo, hi uint64, n int) (pos uint, ok bool) {
	if useBroadwordSelect {
		return broadwordSelect(lo, hi, n)
	}
	return naiveSelect(lo, hi, n)
}

// broadwordSelect isolates the n-th set bit (0-indexed) by repeatedly
// clearing the lowest set bit with the classic `word &= word - 1`
// trick and trailing-zero-counting the survivor — the same "clear
// lowest set bit" idiom the teacher's BitSet256.AsSlice uses to
// enumerate set bits, here stopped after n clears instead of running
// to exhaustion. This is the software analogue of PDEP (deposit a
// single one into the n-th matching bit position) + TZCNT.
func broadwordSelect(lo, hi uint64, n int) (pos uint, ok bool) {
	if p := bits.OnesCount64(lo); n < p {
		for ; n > 0; n-- {
			lo &= lo - 1
		}
		return uint(bits.TrailingZeros64(lo)), true
	}
	n -= bits.OnesCount64(lo)
	if p := bits.OnesCount64(hi); n < p {
		for ; n > 0; n-- {
			hi &= hi - 1
		}
		return uint(bits.TrailingZeros64(hi)) + 64, true
	}
	return 0, false
}

// naiveSelect scans bit positions from low to high, counting matches.
// It is the portable reference implementation mandated by §4.1: any
// accelerated path must agree with it bit-for-bit.
func naiveSelect(lo, hi uint64, n int) (pos uint, ok bool) {
	count := -1
	for i := uint(0); i < 64; i++ {
		if lo&(uint64(1)<<i) != 0 {
			count++
			if count == n {
				return i, true
			}
		}
	}
	for i := uint(0); i < 64; i++ {
		if hi&(uint64(1)<<i) != 0 {
			count++
			if count == n {
				return i + 64, true
			}
		}
	}
	return 0, false
}
