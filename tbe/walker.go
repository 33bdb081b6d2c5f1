// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import "github.com/evolbioinfo/gotbe/tree"

// markResetter is the replicate-side state a tiWalker drives: marking
// and resetting leaves, and reporting the current global min/max of
// d(., v). heavyPathTree and balancedEngine both implement it.
type markResetter interface {
	markLeaf(leaf int)
	resetLeaf(leaf int)
	DMin() int
	DMax() int
}

// tiWalker performs the reference-side traversal: visiting every
// reference node once, it asks a markResetter for the min/max transfer
// distance while holding exactly that node's leaf set marked. It is
// realised as small-to-large ("DSU on tree") recursion rather than a
// flat per-leaf loop: a node's heavy child is solved in place with its
// marks kept (continuing the same walk up the chain), while each light
// child is solved in full isolation — marked, queried, then unmarked —
// before its leaves are folded into the parent in bulk. At each node u,
// all leaves in u's light subtrees are marked exactly once per visit to
// u; the heavy subtree's leaves need no such fold because they were
// never unmarked to begin with.
type tiWalker struct {
	ref          *tree.Tree
	toRep        []int // indexed by ref node id, valid on leaves
	backend      markResetter
	tiMin, tiMax []int // indexed by reference node id
}

func computeTI(ref, rep *tree.Tree, backend markResetter) []int {
	w := &tiWalker{
		ref:     ref,
		toRep:   leafMapping(ref, rep),
		backend: backend,
		tiMin:   make([]int, ref.NumNodes()),
		tiMax:   make([]int, ref.NumNodes()),
	}
	w.dfs(ref.Root(), false)
	return w.finish()
}

func (w *tiWalker) dfs(u int, keep bool) {
	node := w.ref.Node(u)
	if node.IsLeaf() {
		w.backend.markLeaf(w.toRep[u])
		w.tiMin[u], w.tiMax[u] = w.backend.DMin(), w.backend.DMax()
		if !keep {
			w.backend.resetLeaf(w.toRep[u])
		}
		return
	}

	hc := node.HeavyChild()
	for _, c := range node.Children() {
		if c == hc {
			continue
		}
		w.dfs(c, false)
	}
	if hc >= 0 {
		w.dfs(hc, true)
	}
	for _, lf := range node.LightLeaves() {
		w.backend.markLeaf(w.toRep[lf])
	}

	w.tiMin[u], w.tiMax[u] = w.backend.DMin(), w.backend.DMax()

	if !keep {
		for _, lf := range node.LightLeaves() {
			w.backend.resetLeaf(w.toRep[lf])
		}
		if hc >= 0 {
			w.unmarkSubtree(hc)
		}
	}
}

func (w *tiWalker) unmarkSubtree(u int) {
	node := w.ref.Node(u)
	if node.IsLeaf() {
		w.backend.resetLeaf(w.toRep[u])
		return
	}
	for _, c := range node.Children() {
		w.unmarkSubtree(c)
	}
}

// finish folds each reference node's (ti_min, ti_max) into the
// transfer index of the edge above it), indexed by reference edge id.
func (w *tiWalker) finish() []int {
	n := w.ref.NumTaxa()
	out := make([]int, w.ref.NumEdges())
	for _, id := range w.ref.PreOrder() {
		if id == w.ref.Root() {
			continue
		}
		node := w.ref.Node(id)
		e := w.ref.Edge(node.ParentEdge())
		if node.IsLeaf() {
			out[e.ID()] = 0 // terminal edges always have transfer index 0
			continue
		}
		out[e.ID()] = min(w.tiMin[id], n-w.tiMax[id])
	}
	return out
}
