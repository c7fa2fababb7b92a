// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package confertus

import (
	"math/rand/v2"
	"testing"
)

// FuzzTreeAgainstNaive is scenario S5: a random workload drawn from
// {insert, delete, flip, rank, select} is applied in lockstep to the
// Tree under test and a naive reference vector; every read operation
// must agree, and the Tree's internal invariants must hold throughout.
// Grounded on the teacher's own FuzzTableSubnets/FuzzFastSubnets
// (randomPrefixes-driven fuzzing against a map-based oracle).
func FuzzTreeAgainstNaive(f *testing.F) {
	f.Add(uint64(1), 10000)
	f.Add(uint64(42), 2000)
	f.Add(uint64(0), 500)

	f.Fuzz(func(t *testing.T, seed uint64, steps int) {
		if steps < 1 || steps > 20000 {
			t.Skip("bounds")
		}

		prng := rand.New(rand.NewPCG(seed, 7))
		tr := New()
		ref := &naiveBV{}

		for step := 0; step < steps; step++ {
			switch op := prng.IntN(5); op {
			case 0: // insert
				i := 0
				if ref.len() > 0 {
					i = prng.IntN(ref.len() + 1)
				}
				b := prng.IntN(2) == 0
				if err := tr.Insert(i, b); err != nil {
					t.Fatalf("step %d: Insert(%d, %v): %v", step, i, b, err)
				}
				if err := ref.insert(i, b); err != nil {
					t.Fatalf("step %d: ref insert(%d, %v): %v", step, i, b, err)
				}
			case 1: // delete
				if ref.len() == 0 {
					continue
				}
				i := prng.IntN(ref.len())
				if err := tr.Delete(i); err != nil {
					t.Fatalf("step %d: Delete(%d): %v", step, i, err)
				}
				if err := ref.delete(i); err != nil {
					t.Fatalf("step %d: ref delete(%d): %v", step, i, err)
				}
			case 2: // flip
				if ref.len() == 0 {
					continue
				}
				i := prng.IntN(ref.len())
				if err := tr.Flip(i); err != nil {
					t.Fatalf("step %d: Flip(%d): %v", step, i, err)
				}
				if err := ref.flip(i); err != nil {
					t.Fatalf("step %d: ref flip(%d): %v", step, i, err)
				}
			case 3: // rank
				if ref.len() == 0 {
					continue
				}
				bit := prng.IntN(2) == 0
				i := prng.IntN(ref.len() + 1)
				got := tr.Rank(bit, i)
				want := ref.rank(bit, i)
				if got != want {
					t.Fatalf("step %d: Rank(%v, %d) = %d, want %d", step, bit, i, got, want)
				}
			case 4: // select
				if ref.len() == 0 {
					continue
				}
				bit := prng.IntN(2) == 0
				n := prng.IntN(ref.len())
				gotPos, gotErr := tr.Select(bit, n)
				wantPos, wantErr := ref.selectBit(bit, n)
				if (gotErr == nil) != (wantErr == nil) {
					t.Fatalf("step %d: Select(%v, %d) err = %v, want %v", step, bit, n, gotErr, wantErr)
				}
				if gotErr == nil && gotPos != wantPos {
					t.Fatalf("step %d: Select(%v, %d) = %d, want %d", step, bit, n, gotPos, wantPos)
				}
			}

			if tr.Len() != ref.len() {
				t.Fatalf("step %d: Len() = %d, want %d", step, tr.Len(), ref.len())
			}
		}

		if err := tr.checkInvariants(); err != nil {
			t.Fatalf("checkInvariants after %d steps: %v\n%s", steps, err, tr.String())
		}
		for i := 0; i < ref.len(); i++ {
			got, _ := tr.Access(i)
			want, _ := ref.access(i)
			if got != want {
				t.Fatalf("final Access(%d) = %v, want %v", i, got, want)
			}
		}
	})
}
