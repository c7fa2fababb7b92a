// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

import "testing"

func TestBlockAccess(t *testing.T) {
	b := block{lo: 0b1010, hi: 0b0110}
	want := map[uint]bool{
		0: false, 1: true, 2: false, 3: true,
		64: false, 65: true, 66: true, 67: false,
	}
	for i, w := range want {
		if got := b.access(i); got != w {
			t.Errorf("access(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestBlockPopcount(t *testing.T) {
	b := block{lo: ^uint64(0), hi: 0}
	if got := b.popcount(); got != 64 {
		t.Errorf("popcount() = %d, want 64", got)
	}
	b = block{lo: ^uint64(0), hi: ^uint64(0)}
	if got := b.popcount(); got != 128 {
		t.Errorf("popcount() = %d, want 128", got)
	}
}

func TestBlockRank(t *testing.T) {
	b := block{lo: 0b1011, hi: 0} // bits 0,1,3 set
	cases := []struct {
		i    uint
		ones int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 2}, {4, 3}, {64, 3},
	}
	for _, c := range cases {
		if got := b.rank(true, c.i); got != c.ones {
			t.Errorf("rank(true, %d) = %d, want %d", c.i, got, c.ones)
		}
		if got := b.rank(false, c.i); got != int(c.i)-c.ones {
			t.Errorf("rank(false, %d) = %d, want %d", c.i, got, int(c.i)-c.ones)
		}
	}
}

func TestBlockSelectBit(t *testing.T) {
	b := block{lo: 0b1011, hi: 0} // bits 0,1,3 set
	wantOnes := []uint{0, 1, 3}
	for n, want := range wantOnes {
		pos, ok := b.selectBit(true, n, WordBits)
		if !ok || pos != want {
			t.Errorf("selectBit(true, %d) = (%d, %v), want (%d, true)", n, pos, ok, want)
		}
	}
	if _, ok := b.selectBit(true, 3, WordBits); ok {
		t.Errorf("selectBit(true, 3) should fail, only 3 ones present")
	}
}

func TestBlockSelectDispatchAgreesWithNaive(t *testing.T) {
	lo := uint64(0xdeadbeefcafebabe)
	hi := uint64(0x0123456789abcdef)
	for n := 0; n < 128; n++ {
		wantPos, wantOk := naiveSelect(lo, hi, n)
		gotPos, gotOk := broadwordSelect(lo, hi, n)
		if gotOk != wantOk || (wantOk && gotPos != wantPos) {
			t.Fatalf("broadwordSelect(n=%d) = (%d, %v), naiveSelect = (%d, %v)", n, gotPos, gotOk, wantPos, wantOk)
		}
	}
}

func TestShiftLeftRightRoundTrip(t *testing.T) {
	lo, hi := uint64(0x1), uint64(0)
	for n := uint(0); n <= 70; n++ {
		slo, shi := shiftLeftBy(lo, hi, n)
		blo, bhi := shiftRightBy(slo, shi, n)
		if n < 64 {
			if blo != lo || bhi != hi {
				t.Errorf("shift round-trip broke at n=%d: got (%#x,%#x)", n, blo, bhi)
			}
		}
	}
}

func TestBelowAboveMaskComplementary(t *testing.T) {
	for k := uint(0); k <= 128; k++ {
		bloLo, bloHi := belowMask(k)
		aloLo, aloHi := aboveMask(k)
		if bloLo&aloLo != 0 || bloHi&aloHi != 0 {
			t.Errorf("belowMask(%d) and aboveMask(%d) overlap", k, k)
		}
		if bloLo|aloLo != ^uint64(0) || bloHi|aloHi != ^uint64(0) {
			t.Errorf("belowMask(%d) | aboveMask(%d) should cover all bits", k, k)
		}
	}
}
