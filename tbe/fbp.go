// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import "github.com/evolbioinfo/gotbe/tree"

// FBP counts, for every edge of ref, how many trees in reps contain a
// branch inducing the identical unrooted bipartition: the caller divides by
// len(reps) to get the proportion.
//
// Each replicate's bipartitions are grouped by bitset.CanonicalKey
// (which is already the equal-or-complement normalisation) into a set,
// so the check costs O(|E_rep|) per replicate plus O(|E_ref|) lookups,
// rather than the O(|E_ref|*|E_rep|) pairwise EqualOrComplement
// comparison the same test could also be built from.
func FBP(ref *tree.Tree, reps []*tree.Tree) []int {
	hits := make([]int, ref.NumEdges())
	for _, rep := range reps {
		present := make(map[string]bool, rep.NumEdges())
		for _, j := range rep.Edges() {
			present[rep.Edge(j).Bits().CanonicalKey()] = true
		}
		for _, i := range ref.Edges() {
			if present[ref.Edge(i).Bits().CanonicalKey()] {
				hits[i]++
			}
		}
	}
	return hits
}
