// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import "github.com/evolbioinfo/gotbe/tree"

// heavyPathTree is the lazily-updated structure the fast engine's
// add_leaf marks against. It linearises the
// replicate's heavy-path decomposition into a single array — each
// chain laid out as one contiguous run, heavy child immediately
// following its parent — backed by one segTree supporting range-add
// and global min/max. Marking a reference leaf touches O(log n)
// chains, each handled by a single O(log n) range update: the same
// heavy-path decomposition plus lazy propagation the original HPT
// describes, realised as one flat array instead of a forest of nested
// Path Trees glued by child_heavypaths pointers.
type heavyPathTree struct {
	rep *tree.Tree

	pos      []int // node id -> position in the linear array
	chainTop []int // node id -> node id heading its chain

	seg *segTree

	markedCount int
}

func buildHeavyPathTree(rep *tree.Tree) *heavyPathTree {
	nNodes := rep.NumNodes()
	h := &heavyPathTree{
		rep:      rep,
		pos:      make([]int, nNodes),
		chainTop: make([]int, nNodes),
	}

	cur := 0
	type frame struct{ id, top int }
	stack := []frame{{rep.Root(), rep.Root()}}
	// An explicit stack keeps the heavy child's run contiguous: light
	// children are pushed first, the heavy child last, so it pops (and
	// so continues the same chain) immediately after its parent.
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		h.chainTop[f.id] = f.top
		h.pos[f.id] = cur
		cur++

		node := rep.Node(f.id)
		if node.IsLeaf() {
			continue
		}
		hc := node.HeavyChild()
		for _, c := range node.Children() {
			if c == hc {
				continue
			}
			stack = append(stack, frame{c, c})
		}
		stack = append(stack, frame{hc, f.top})
	}

	vals := make([]int, nNodes)
	for id := 0; id < nNodes; id++ {
		vals[h.pos[id]] = rep.Node(id).SubtreeSize()
	}
	h.seg = newSegTree(vals)
	return h
}

// markLeaf marks replicate leaf ℓ: a global +1 to the marked-leaf count
// plus a -2 delta applied to every ancestor of ℓ (itself included).
// Adding ℓ to the growing reference leaf set raises |L(u)∩L'(v)| by one
// for every v that is an ancestor of ℓ, and leaves it unchanged for
// every other v. Ancestors are visited chain by chain; each chain
// contributes one contiguous range update.
func (h *heavyPathTree) markLeaf(leaf int) {
	h.applyAncestors(leaf, -2)
	h.markedCount++
}

// resetLeaf undoes markLeaf.
func (h *heavyPathTree) resetLeaf(leaf int) {
	h.applyAncestors(leaf, 2)
	h.markedCount--
}

func (h *heavyPathTree) applyAncestors(v, delta int) {
	for v != -1 {
		top := h.chainTop[v]
		h.seg.RangeAdd(h.pos[top], h.pos[v], delta)
		v = h.rep.Node(top).Parent()
	}
}

// DMin returns the current global minimum of d(., v) over every v with
// an edge above it (the root's own position is never a candidate: it
// has no parent edge and so induces no bipartition).
func (h *heavyPathTree) DMin() int {
	rp := h.pos[h.rep.Root()]
	return min(h.seg.RangeMin(0, rp-1), h.seg.RangeMin(rp+1, h.seg.n-1)) + h.markedCount
}

// DMax is DMin's counterpart for the maximum.
func (h *heavyPathTree) DMax() int {
	rp := h.pos[h.rep.Root()]
	return max(h.seg.RangeMax(0, rp-1), h.seg.RangeMax(rp+1, h.seg.n-1)) + h.markedCount
}
