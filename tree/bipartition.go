// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import "github.com/evolbioinfo/gotbe/bitset"

// Seal computes, for a freshly parsed tree, everything the TI engines
// need and that must not change afterwards: node depths and subtree
// sizes, every edge's child-side bipartition bitset and topological
// depth, and, per internal node, the heavy child and the flattened list
// of leaves hanging off its light (non-heavy) children.
//
// After Seal, the tree is immutable except for the per-computation
// scratch fields on Node, which the balanced engine initialises afresh
// for every computation it builds.
func (t *Tree) Seal() error {
	if t.root < 0 {
		return &InvariantViolation{Msg: "seal called on a tree with no root"}
	}

	order := t.preorder()
	for i, id := range order {
		t.nodes[id].depth = 0
		if i > 0 {
			// handled below once parents are visited before children,
			// which preorder guarantees.
		}
	}
	for _, id := range order {
		n := t.nodes[id]
		if n.parent >= 0 {
			n.depth = t.nodes[n.parent].depth + 1
		}
	}

	post := t.postorder()
	n := t.NumTaxa()
	for _, id := range post {
		node := t.nodes[id]
		if node.IsLeaf() {
			node.subtreeSize = 1
			bits := bitset.New(n)
			bits.Set(node.taxon)
			if node.parentEdge >= 0 {
				t.edges[node.parentEdge].bits = bits
			}
			continue
		}
		bits := bitset.New(n)
		size := 0
		for i, c := range node.children {
			ce := t.edges[node.childEdges[i]]
			bits.UnionInPlace(ce.bits)
			size += t.nodes[c].subtreeSize
		}
		node.subtreeSize = size
		if node.parentEdge >= 0 {
			t.edges[node.parentEdge].bits = bits
		}
	}

	for _, e := range t.edges {
		k := e.bits.PopCount()
		e.topoDepth = min(k, n-k)
	}

	for _, id := range order {
		if err := t.setupHeavyAndLight(id); err != nil {
			return err
		}
	}

	t.sealed = true
	return nil
}

// Sealed reports whether Seal has completed successfully for t.
func (t *Tree) Sealed() bool { return t.sealed }

// setupHeavyAndLight picks the heavy child of an internal node (largest
// subtree, ties broken by lowest child index) and collects the leaves of
// every other (light) child's subtree. Every child is scanned exactly
// once.
func (t *Tree) setupHeavyAndLight(id int) error {
	node := t.nodes[id]
	if node.IsLeaf() {
		node.heavyChild = -1
		return nil
	}

	heavy := 0
	for i := 1; i < len(node.children); i++ {
		if t.nodes[node.children[i]].subtreeSize > t.nodes[node.children[heavy]].subtreeSize {
			heavy = i
		}
	}
	node.heavyChild = heavy

	var light []int
	for i, c := range node.children {
		if i == heavy {
			continue
		}
		light = append(light, t.leavesInSubtree(c)...)
	}
	node.lightLeaves = light
	return nil
}

// leavesInSubtree returns the node ids of the leaves under id. A root
// with a pseudo-root's third branch is not a concern here since this is
// only ever called on a non-root light child.
func (t *Tree) leavesInSubtree(id int) []int {
	node := t.nodes[id]
	if node.IsLeaf() {
		return []int{id}
	}
	var out []int
	for _, c := range node.children {
		out = append(out, t.leavesInSubtree(c)...)
	}
	return out
}

// preorder returns node ids in preorder (parents before children),
// computed iteratively with an explicit stack.
func (t *Tree) preorder() []int {
	out := make([]int, 0, len(t.nodes))
	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, id)
		children := t.nodes[id].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return out
}

// postorder returns node ids in postorder (children before their
// parent), computed iteratively with an explicit stack of (node,
// next-child-index) frames.
func (t *Tree) postorder() []int {
	out := make([]int, 0, len(t.nodes))
	type frame struct {
		id   int
		next int
	}
	stack := []frame{{id: t.root, next: 0}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := t.nodes[top.id].children
		if top.next < len(children) {
			c := children[top.next]
			top.next++
			stack = append(stack, frame{id: c, next: 0})
			continue
		}
		out = append(out, top.id)
		stack = stack[:len(stack)-1]
	}
	return out
}
