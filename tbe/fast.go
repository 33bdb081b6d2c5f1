// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import "github.com/evolbioinfo/gotbe/tree"

// Fast computes, for every edge of ref, the transfer index to rep using
// the heavy-path decomposition plus lazy add-leaf algorithm, indexed by
// reference edge id. ref and rep must already be sealed and bijected
// (tree.Bijection).
//
// rep must satisfy tree.CheckFastPathShape; that *tree.ShapeError is
// returned unwrapped so a caller can fall back to Naive for this one
// replicate. When rep also happens to be balanced (IsBalanced), the
// cheaper direct-walk backend is used automatically; both backends feed
// the same reference-side traversal and produce identical results.
func Fast(ref, rep *tree.Tree) ([]int, error) {
	if err := rep.CheckFastPathShape(); err != nil {
		return nil, err
	}

	var backend markResetter
	if IsBalanced(rep) {
		backend = newBalancedEngine(rep)
	} else {
		backend = buildHeavyPathTree(rep)
	}
	return computeTI(ref, rep, backend), nil
}

// leafMapping returns, indexed by ref leaf node id, the corresponding
// leaf node id in rep. It is computed fresh from each tree's own
// per-taxon leaf index, so it never reads or writes either tree's
// shared state and is safe to call concurrently for different rep
// trees against the same ref.
func leafMapping(ref, rep *tree.Tree) []int {
	m := make([]int, ref.NumNodes())
	for _, id := range ref.Leaves() {
		m[id] = rep.LeafByTaxon(ref.Node(id).Taxon())
	}
	return m
}
