// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

import (
	"fmt"
	"strings"
)

// checkInvariants walks the whole tree and verifies I1 (aggregate
// bookkeeping), I2 (rank bounds), and, for every leaf, used <= WordBits
// with no bit set at or past used (P3), returning
// the first violation found. It is never called outside tests; the
// production code relies on construction, not post-hoc verification,
// to keep these invariants (§12).
func (t *Tree) checkInvariants() error {
	_, _, err := t.checkSubtree(t.root, true)
	return err
}

// checkSubtree returns the subtree's (nums, ones) total, recomputed
// independently of the cached aggregates, so the caller can compare.
func (t *Tree) checkSubtree(ref int, isRoot bool) (nums, ones int, err error) {
	if isLeafRef(ref) {
		l := t.leafAt(ref)
		if int(l.used) > WordBits {
			return 0, 0, fmt.Errorf("leaf %d over-full: used=%d", -ref, l.used)
		}
		if lo, hi := aboveMask(uint(l.used)); l.value.lo&lo != 0 || l.value.hi&hi != 0 {
			return 0, 0, fmt.Errorf("leaf %d has bits set at or past used=%d", -ref, l.used)
		}
		return l.nums(), l.ones(), nil
	}

	n := t.nodeAt(ref)
	if n.rank < -1 || n.rank > 1 {
		return 0, 0, fmt.Errorf("node %d rank out of bounds: %d", ref, n.rank)
	}

	var leftNums, leftOnes, rightNums, rightOnes int
	if n.hasLeft {
		leftNums, leftOnes, err = t.checkSubtree(n.left, false)
		if err != nil {
			return 0, 0, err
		}
		if leftNums != n.nums || leftOnes != n.ones {
			return 0, 0, fmt.Errorf("node %d aggregate mismatch: have (%d,%d), want (%d,%d)",
				ref, n.nums, n.ones, leftNums, leftOnes)
		}
	} else if n.nums != 0 || n.ones != 0 {
		return 0, 0, fmt.Errorf("node %d has no left child but nonzero aggregate (%d,%d)", ref, n.nums, n.ones)
	}

	if n.hasRight {
		rightNums, rightOnes, err = t.checkSubtree(n.right, false)
		if err != nil {
			return 0, 0, err
		}
	}

	return n.nums + rightNums, n.ones + rightOnes, nil
}

// String renders the tree as an indented outline for test failure
// messages; it is never used by production code paths.
func (t *Tree) String() string {
	var b strings.Builder
	t.dump(&b, t.root, 0)
	return b.String()
}

func (t *Tree) dump(b *strings.Builder, ref int, depth int) {
	indent := strings.Repeat("  ", depth)
	if isLeafRef(ref) {
		l := t.leafAt(ref)
		fmt.Fprintf(b, "%sleaf[%d] used=%d ones=%d\n", indent, -ref, l.used, l.ones())
		return
	}
	n := t.nodeAt(ref)
	fmt.Fprintf(b, "%snode[%d] rank=%d nums=%d ones=%d\n", indent, ref, n.rank, n.nums, n.ones)
	if n.hasLeft {
		t.dump(b, n.left, depth+1)
	}
	if n.hasRight {
		t.dump(b, n.right, depth+1)
	}
}
