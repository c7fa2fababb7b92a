// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

// Delete removes the bit at position i, shifting everything after it
// one place to the left (spec §4.3.1). When this leaves the holding
// leaf at most a quarter full, it is topped back up from (or merged
// into) its closest sequential neighbor.
func (t *Tree) Delete(i int) error {
	total := t.Len()
	if i < 0 || i >= total {
		return ErrOutOfBounds
	}

	leafRef, idx := t.descendToLeaf(i)
	lf := t.leafAt(leafRef)
	was := lf.access(uint(idx))
	if err := lf.delete(uint(idx)); err != nil {
		return err
	}
	deltaOnes := 0
	if was {
		deltaOnes = -1
	}
	t.updateLeftValues(leafRef, -1, deltaOnes)

	if t.leafCount() > 1 && int(lf.used) <= WordBits/4 {
		t.mergeAway(leafRef)
	}
	return nil
}

// parentOf returns the parent index of a node or leaf reference.
func (t *Tree) parentOf(ref int) int {
	if isLeafRef(ref) {
		return t.leafAt(ref).parent
	}
	return t.nodeAt(ref).parent
}

func (t *Tree) descendLeftmost(ref int) int {
	for {
		if isLeafRef(ref) {
			return ref
		}
		n := t.nodeAt(ref)
		if n.hasLeft {
			ref = n.left
		} else {
			ref = n.right
		}
	}
}

func (t *Tree) descendRightmost(ref int) int {
	for {
		if isLeafRef(ref) {
			return ref
		}
		n := t.nodeAt(ref)
		if n.hasRight {
			ref = n.right
		} else {
			ref = n.left
		}
	}
}

// closestNeighbor finds the in-order successor of leafRef (preferred)
// or, if leafRef is already the last leaf in the vector, its
// predecessor, by the usual ascend-until-the-turn / descend pattern.
// isRight reports which side the returned neighbor lies on.
func (t *Tree) closestNeighbor(leafRef int) (neighborRef int, isRight bool) {
	cur := leafRef
	for cur != t.root {
		parent := t.parentOf(cur)
		p := t.nodeAt(parent)
		if p.hasLeft && p.left == cur {
			return t.descendLeftmost(p.right), true
		}
		cur = parent
	}

	cur = leafRef
	for cur != t.root {
		parent := t.parentOf(cur)
		p := t.nodeAt(parent)
		if p.hasRight && p.right == cur {
			return t.descendRightmost(p.left), false
		}
		cur = parent
	}

	invariantf("closestNeighbor: no neighbor exists for leaf %d", leafRef)
	return 0, false
}

// mergeAway restores an under-full leaf by either absorbing it
// entirely into its closest neighbor (when the neighbor is also
// thin) or stealing bits from the neighbor until the neighbor is back
// at half capacity; the under-full leaf receives all the stolen bits.
func (t *Tree) mergeAway(leafRef int) {
	neighborRef, neighborIsRight := t.closestNeighbor(leafRef)
	neighbor := t.leafAt(neighborRef)

	if int(neighbor.used) <= 3*WordBits/4 {
		t.mergeLeafs(leafRef, neighborRef, neighborIsRight)
		return
	}

	half := WordBits / 2
	lf := t.leafAt(leafRef)
	stolen := int(neighbor.used) - half

	var moved block
	if neighborIsRight {
		moved = neighbor.splitToLeftN(stolen)
		lf.extendFrom(moved, uint8(stolen))
	} else {
		moved = neighbor.splitToRightN(stolen)
		lf.prepend(moved, uint8(stolen))
	}

	stolenOnes := moved.popcount()
	t.updateLeftValues(leafRef, stolen, stolenOnes)
	t.updateLeftValues(neighborRef, -stolen, -stolenOnes)
}

// mergeLeafs folds the entirety of the underflowed leaf's content
// into its neighbor, then removes the now-empty leaf from the tree.
func (t *Tree) mergeLeafs(smallRef, neighborRef int, neighborIsRight bool) {
	small := t.leafAt(smallRef)
	neighbor := t.leafAt(neighborRef)
	moved, movedOnes := int(small.used), small.ones()

	if neighborIsRight {
		// neighbor follows small in sequence: small's bits go in front.
		neighbor.prepend(small.value, small.used)
	} else {
		// neighbor precedes small: small's bits go on the end.
		neighbor.extendFrom(small.value, small.used)
	}

	// Order matters: both calls must run while smallRef/parent are
	// still wired into the tree, and before the structural collapse
	// below — see DESIGN.md for why this two-sided update, applied
	// before the collapse, needs no separate aggregate recompute.
	t.updateLeftValues(smallRef, -moved, -movedOnes)
	t.updateLeftValues(neighborRef, moved, movedOnes)

	t.removeLeafAndCollapseParent(smallRef)
}

// removeLeafAndCollapseParent deletes smallRef's parent node from the
// tree, promoting its other child (smallRef's sibling) into the
// parent's old place, and retraces the resulting height-1 decrease
// (spec §4.3.3; removing a child shifts the grandparent's rank +1 if
// the removed child — parent itself, from grandparent's point of
// view — was its left one, -1 if its right).
func (t *Tree) removeLeafAndCollapseParent(smallRef int) {
	parent := t.leafAt(smallRef).parent
	p := t.nodeAt(parent)

	removedWasLeft := p.hasLeft && p.left == smallRef
	var sibling int
	if removedWasLeft {
		sibling, _ = p.child(false)
	} else {
		sibling, _ = p.child(true)
	}

	wasRoot := parent == t.root
	if wasRoot {
		t.root = sibling
		t.swapRemoveLeaf(smallRef)
		t.swapRemoveNode(parent)
		return
	}

	grandparent := p.parent
	gp := t.nodeAt(grandparent)
	parentWasLeft := gp.hasLeft && gp.left == parent
	gp.replaceChild(parent, sibling)
	t.setParent(sibling, grandparent)

	if parentWasLeft {
		gp.rank++
	} else {
		gp.rank--
	}
	needsRebalance := abs8(gp.rank) == 2

	// Both swap-removes below may relocate the grandparent's own slot
	// (if it happens to be the last node in the arena) out from under
	// the gp/grandparent we just resolved, so the rank update above
	// has to happen first. sibling is kept valid across both swaps,
	// which lets us re-derive grandparent's current slot afterward
	// instead of trusting the now possibly-stale local variable.
	lastLeafIdx := len(t.leafs) - 1
	t.swapRemoveLeaf(smallRef)
	if isLeafRef(sibling) && -sibling == lastLeafIdx {
		sibling = smallRef
	}

	lastNodeIdx := len(t.nodes) - 1
	t.swapRemoveNode(parent)
	if !isLeafRef(sibling) && sibling == lastNodeIdx {
		sibling = parent
	}

	grandparent = t.parentOf(sibling)
	if needsRebalance {
		t.rebalance(grandparent, -1)
		return
	}
	t.retrace(grandparent, -1)
}

// swapRemoveLeaf deletes the leaf at ref by swapping the last leaf
// slot into its place and fixing up whichever parent pointer (or
// t.root, for a bare-leaf root) addressed that last slot.
func (t *Tree) swapRemoveLeaf(ref int) {
	lastIdx := len(t.leafs) - 1
	removeSlot := -ref
	if removeSlot != lastIdx {
		t.leafs[removeSlot] = t.leafs[lastIdx]
		if isLeafRef(t.root) && t.root == -lastIdx {
			t.root = -removeSlot
		} else {
			movedParent := t.leafs[removeSlot].parent
			t.nodeAt(movedParent).replaceChild(-lastIdx, -removeSlot)
		}
	}
	t.leafs = t.leafs[:lastIdx]
}

// swapRemoveNode deletes the node at ref by swapping the last node
// slot into its place and fixing up the moved node's children and
// its parent (or t.root).
func (t *Tree) swapRemoveNode(ref int) {
	lastIdx := len(t.nodes) - 1
	if ref != lastIdx {
		t.nodes[ref] = t.nodes[lastIdx]
		moved := t.nodes[ref]
		if moved.hasLeft {
			t.setParent(moved.left, ref)
		}
		if moved.hasRight {
			t.setParent(moved.right, ref)
		}
		if lastIdx == t.root {
			t.root = ref
		} else {
			t.nodeAt(moved.parent).replaceChild(lastIdx, ref)
		}
	}
	t.nodes = t.nodes[:lastIdx]
}
