// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import "github.com/evolbioinfo/gotbe/tree"

// IsBalanced reports whether every internal node of t has children
// whose subtree sizes differ by at most one — the precondition under
// which the direct O(log n) add-leaf walk applies instead of the
// general heavy-path engine.
func IsBalanced(t *tree.Tree) bool {
	for _, id := range t.PreOrder() {
		node := t.Node(id)
		if node.IsLeaf() {
			continue
		}
		lo, hi := -1, -1
		for _, c := range node.Children() {
			s := t.Node(c).SubtreeSize()
			if lo == -1 || s < lo {
				lo = s
			}
			if hi == -1 || s > hi {
				hi = s
			}
		}
		if hi-lo > 1 {
			return false
		}
	}
	return true
}

// balancedEngine is the alternative backend for a balanced replicate:
// instead of a segment tree over a flattened heavy-path array, it
// keeps, directly on each replicate node's scratch fields, its own
// d(., v) value less the marked-leaf count (d0(v) minus twice the
// marked leaves under v; DMin and DMax add the count back) and the
// min/max of that value over its subtree. A
// markLeaf only touches the O(log n) nodes on the root-to-leaf path
// (guaranteed short by balance), recomputing each ancestor's cached
// min/max from its children's already-correct values on the way up.
type balancedEngine struct {
	rep         *tree.Tree
	markedCount int
}

func newBalancedEngine(rep *tree.Tree) *balancedEngine {
	for _, id := range rep.PostOrder() {
		n := rep.Node(id)
		d0 := n.SubtreeSize()
		mn, mx := d0, d0
		for _, c := range n.Children() {
			_, cmn, cmx, _ := rep.Node(c).Scratch()
			if cmn < mn {
				mn = cmn
			}
			if cmx > mx {
				mx = cmx
			}
		}
		n.SetScratch(d0, mn, mx, 0)
	}
	return &balancedEngine{rep: rep}
}

func (b *balancedEngine) markLeaf(leaf int) {
	b.applyPath(leaf, -2)
	b.markedCount++
}

func (b *balancedEngine) resetLeaf(leaf int) {
	b.applyPath(leaf, 2)
	b.markedCount--
}

func (b *balancedEngine) applyPath(leaf, delta int) {
	v := leaf
	for v != -1 {
		n := b.rep.Node(v)
		own, _, _, _ := n.Scratch()
		own += delta
		mn, mx := own, own
		for _, c := range n.Children() {
			_, cmn, cmx, _ := b.rep.Node(c).Scratch()
			if cmn < mn {
				mn = cmn
			}
			if cmx > mx {
				mx = cmx
			}
		}
		n.SetScratch(own, mn, mx, 0)
		v = n.Parent()
	}
}

// DMin returns the current global minimum of d(., v), excluding the
// replicate root (which has no edge above it).
func (b *balancedEngine) DMin() int {
	root := b.rep.Node(b.rep.Root())
	best := 0
	first := true
	for _, c := range root.Children() {
		_, mn, _, _ := b.rep.Node(c).Scratch()
		if first || mn < best {
			best, first = mn, false
		}
	}
	return best + b.markedCount
}

// DMax is DMin's counterpart for the maximum.
func (b *balancedEngine) DMax() int {
	root := b.rep.Node(b.rep.Root())
	best := 0
	first := true
	for _, c := range root.Children() {
		_, _, mx, _ := b.rep.Node(c).Scratch()
		if first || mx > best {
			best, first = mx, false
		}
	}
	return best + b.markedCount
}
