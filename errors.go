// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned by Insert, Delete, Flip and Access when the
// given index does not address an existing (or, for Insert, insertable)
// position.
var ErrOutOfBounds = errors.New("confertus: index out of bounds")

// ErrNotFound is returned by Select when fewer than n+1 bits of the
// requested value exist in the vector.
var ErrNotFound = errors.New("confertus: select: not enough matching bits")

// errFull and errEmpty are internal leaf signals. The tree translates
// them into split/merge structural operations and never surfaces them
// to a caller of Tree; see leaf.go.
var (
	errFull  = errors.New("confertus: leaf at capacity")
	errEmpty = errors.New("confertus: leaf has no bits")
)

// invariantf panics with a formatted message. It marks a violation of
// one of the global invariants (I1-I4 in the design notes) that would
// mean the tree's own bookkeeping is broken, not that the caller did
// anything wrong, so it is not a returned error.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf("confertus: invariant violated: "+format, args...))
}
