// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

// Flip toggles the bit at position i in place. It changes no
// structure and, when the bit's value actually changes, updates the
// ones aggregate of every ancestor whose left subtree contains i
// (spec §4.3.1).
func (t *Tree) Flip(i int) error {
	if i < 0 || i >= t.Len() {
		return ErrOutOfBounds
	}
	leafRef, idx := t.descendToLeaf(i)
	lf := t.leafAt(leafRef)
	was := lf.access(uint(idx))
	if err := lf.flip(uint(idx)); err != nil {
		return err
	}
	delta := 1
	if was {
		delta = -1
	}
	t.updateLeftValues(leafRef, 0, delta)
	return nil
}
