// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import (
	"github.com/evolbioinfo/gotbe/bitset"
	"github.com/evolbioinfo/gotbe/tree"
)

// TransferSet returns the taxa that would have to move across the
// reference edge refEdgeID to turn it into the closest branch of rep:
// the names on the losing side of the symmetric difference of the two
// branches' bipartition bitsets.
//
// This is a direct O(|E_rep|) scan rather than the fast engine's
// include/exclude leaf-list bookkeeping: both trees already carry full
// per-edge bitsets from tree.Seal, so recovering the winning branch by
// bitset comparison is simpler than reproducing the fast engine's
// transient per-node marking state outside of a single add_leaf walk.
// The feature is opt-in and off the accumulation hot path, so the
// O(n) cost per call is not a concern.
func TransferSet(ref, rep *tree.Tree, refEdgeID int) []string {
	refEdge := ref.Edge(refEdgeID)
	n := ref.NumTaxa()

	var best *bitsetDiff
	for _, j := range rep.Edges() {
		d := xorFold(refEdge.Bits(), rep.Edge(j).Bits(), n)
		if best == nil || d.size < best.size {
			best = d
		}
	}
	if best == nil {
		return nil
	}

	var out []string
	for tx := 0; tx < n; tx++ {
		if best.bits.Test(tx) {
			out = append(out, ref.Taxa.Name(tx))
		}
	}
	return out
}

type bitsetDiff struct {
	bits *bitset.BitSet
	size int
}

// xorFold returns the symmetric difference of a and b, folded to
// whichever of it or its complement is no larger than n/2 — matching
// the min(h, n-h) folding used everywhere else a Hamming-style distance
// is computed over a bipartition.
func xorFold(a, b *bitset.BitSet, n int) *bitsetDiff {
	d := a.Xor(b)
	sz := d.PopCount()
	if sz*2 > n {
		d = d.Complement()
		sz = n - sz
	}
	return &bitsetDiff{bits: d, size: sz}
}
