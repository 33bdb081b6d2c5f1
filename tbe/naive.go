// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import "github.com/evolbioinfo/gotbe/tree"

// Naive computes, for every edge of ref, the minimum transfer distance
// to any edge of rep using the Brehelin/Gascuel/Martin O(n^2) algorithm.
// ref and rep must already be sealed and bijected (tree.Bijection). The
// result is indexed by reference edge id.
//
// This is the correctness oracle Fast is checked against, and the
// fallback used whenever rep fails tree.CheckFastPathShape; it is never
// the hot path in a full run.
//
// The "ref pass" of the textbook two-pass recipe — an OR/AND postorder
// over ref, done once per terminal edge of rep, to decide whether a
// given taxon lies on the child side of a given reference edge — is
// replaced here by a direct bitset membership test: Seal already
// materialises the full child-side bitset for every reference edge, so
// asking "is taxon t in L(i)" is an O(1) bit test instead of a second
// O(n·|E_ref|) traversal. The two computations agree on every value;
// only the path to them differs.
func Naive(ref, rep *tree.Tree) ([]int, error) {
	n := ref.NumTaxa()
	repOrder := rep.PostOrder()

	intersect := make([]int, rep.NumNodes())
	outside := make([]int, rep.NumNodes())
	dist := make([]int, ref.NumEdges())

	for _, i := range ref.Edges() {
		re := ref.Edge(i)
		child := ref.Node(re.Child())
		if child.IsLeaf() {
			dist[i] = 0 // terminal ref edges always have transfer index 0
			continue
		}
		bits := re.Bits()
		lsize := bits.PopCount()

		for id := range intersect {
			intersect[id], outside[id] = 0, 0
		}
		for _, id := range repOrder {
			node := rep.Node(id)
			if node.IsLeaf() {
				if bits.Test(node.Taxon()) {
					intersect[id] = 1
				} else {
					outside[id] = 1
				}
				continue
			}
			var si, so int
			for _, c := range node.Children() {
				si += intersect[c]
				so += outside[c]
			}
			intersect[id], outside[id] = si, so
		}

		best := -1
		for _, id := range repOrder {
			if id == rep.Root() {
				continue // no edge lies above the replicate's root
			}
			h := lsize + outside[id] - intersect[id]
			folded := min(h, n-h)
			if best < 0 || folded < best {
				best = folded
			}
		}
		if best < 0 {
			return nil, &InvariantViolation{Msg: "naive engine found no candidate replicate edge"}
		}
		dist[i] = best
	}
	return dist, nil
}
