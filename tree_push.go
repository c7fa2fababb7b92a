// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

// Push appends bit b at the end of the vector (spec §4.3.1). Unlike a
// general Insert, Push never splits an existing leaf's content: when
// the rightmost leaf is full it either opens a fresh sibling leaf or,
// if none is available, inserts an intermediary node above the full
// leaf and recurses into the new empty slot.
func (t *Tree) Push(b bool) {
	if isLeafRef(t.root) {
		// The vector is small enough that the whole tree is a single
		// leaf; try it directly before promoting to a real node.
		if err := t.leafAt(t.root).push(b); err == nil {
			return
		}
		t.promoteLeafRootToNode(t.root)
	}
	t.pushAtNode(t.root, b)
}

// promoteLeafRootToNode replaces a bare-leaf root with a new node
// holding that leaf as its left child, the mirror of
// insertNodeAboveLeaf for the rootless case.
func (t *Tree) promoteLeafRootToNode(leafRef int) int {
	lf := t.leafAt(leafRef)
	newIdx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		left: leafRef, hasLeft: true,
		nums: lf.nums(), ones: lf.ones(),
		rank: -1,
	})
	lf.parent = newIdx
	t.root = newIdx
	return newIdx
}

func (t *Tree) pushAtNode(nodeIdx int, b bool) {
	for {
		n := t.nodeAt(nodeIdx)
		if !n.hasRight {
			t.createRightLeaf(nodeIdx)
			continue
		}
		rightRef := n.right
		if !isLeafRef(rightRef) {
			nodeIdx = rightRef
			continue
		}

		lf := t.leafAt(rightRef)
		if err := lf.push(b); err == nil {
			return
		}

		if t.nodeAt(nodeIdx).hasLeft {
			newNodeIdx := t.insertNodeAboveLeaf(rightRef)
			t.retrace(newNodeIdx, 1)
			nodeIdx = newNodeIdx
			continue
		}
		t.moveRightChildLeft(nodeIdx)
	}
}

// createRightLeaf appends a fresh empty leaf, attaches it as nodeIdx's
// right child, and retraces the resulting +1 height change. Requires
// nodeIdx to currently have no right child.
func (t *Tree) createRightLeaf(nodeIdx int) int {
	return t.createRightLeafWithContent(nodeIdx, block{}, 0)
}

// createRightLeafWithContent is createRightLeaf seeded with existing
// content (used when a leaf split hands its upper half to a brand new
// sibling leaf instead of an empty one).
func (t *Tree) createRightLeafWithContent(nodeIdx int, val block, used uint8) int {
	leafRef := -len(t.leafs)
	t.leafs = append(t.leafs, leaf{parent: nodeIdx, value: val, used: used})

	n := t.nodeAt(nodeIdx)
	n.right, n.hasRight = leafRef, true
	n.rank++
	t.retrace(nodeIdx, 1)
	return leafRef
}

// insertNodeAboveLeaf creates a new node in place of leafRef (rewiring
// leafRef's former parent to point at the new node instead), makes
// leafRef the new node's left child, and seeds the new node's
// aggregates from the leaf. It does not touch the leaf's content —
// callers that need to split content use splitFullLeaf instead (see
// tree_insert.go).
func (t *Tree) insertNodeAboveLeaf(leafRef int) int {
	lf := t.leafAt(leafRef)
	oldParent := lf.parent

	newIdx := len(t.nodes)
	t.nodes = append(t.nodes, node{
		parent:  oldParent,
		left:    leafRef,
		hasLeft: true,
		nums:    lf.nums(),
		ones:    lf.ones(),
		rank:    -1, // left-leaning: a left leaf, no right child yet
	})

	t.nodeAt(oldParent).replaceChild(leafRef, newIdx)
	lf.parent = newIdx
	return newIdx
}

// moveRightChildLeft relocates nodeIdx's right child (always a leaf at
// full capacity in this caller) into the left slot, then clears right
// so the caller can attach a fresh empty leaf there.
func (t *Tree) moveRightChildLeft(nodeIdx int) {
	n := t.nodeAt(nodeIdx)
	rightRef := n.right
	lf := t.leafAt(rightRef)

	n.left, n.hasLeft = rightRef, true
	n.right, n.hasRight = 0, false
	n.nums = lf.nums()
	n.ones = lf.ones()
	n.rank = -1 // left leaf only, no right child
}
