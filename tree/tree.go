// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements the rooted phylogenetic tree used by the
// transfer bootstrap expectation (TBE) engine: a dense, arena-backed
// node/edge store addressed by integer id, a Newick codec, and the
// bipartition pipeline that seals a parsed tree for use by the TI
// engines.
package tree

import (
	"fmt"

	"github.com/evolbioinfo/gotbe/bitset"
)

// MinBranchLength is the smallest branch length accepted by the Newick
// codec: any parsed length below it (including an absent length,
// defaulted to 0) is floored to this value.
const MinBranchLength = 1e-10

// A Node is one vertex of a Tree, addressed by its id, which is also its
// index into Tree.nodes.
type Node struct {
	id   int
	name string // required for leaves; optional for internal nodes
	taxon int   // taxon id if this is a leaf, else -1

	parent     int // node id, -1 for the root
	parentEdge int // edge id, -1 for the root

	children   []int // child node ids, in input order
	childEdges []int // edge id per entry of children

	depth       int // number of edges from the root
	subtreeSize int // number of leaves in the subtree rooted here

	heavyChild  int   // index into children of the heavy child, -1 if a leaf
	lightLeaves []int // node ids of leaves in all non-heavy subtrees of this node

	// Scratch fields used by the balanced direct-walk engine when this
	// node plays the "replicate" role. They are meaningless outside a
	// single (reference, replicate) computation; each computation builds
	// a fresh backend, so there is nothing to reset between replicates.
	dLazy, dMin, dMax, diff int // current d(., v) value and pending delta
}

// ID returns the node's id.
func (n *Node) ID() int { return n.id }

// Name returns the node's name (required for leaves, optional otherwise).
func (n *Node) Name() string { return n.name }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Taxon returns the taxon id of a leaf node, or -1 for an internal node.
func (n *Node) Taxon() int { return n.taxon }

// Degree returns the number of edges incident to n: len(children), plus
// one if n is not the root.
func (n *Node) Degree() int {
	d := len(n.children)
	if n.parent >= 0 {
		d++
	}
	return d
}

// An Edge connects a parent Node to a child Node.
type Edge struct {
	id     int
	parent int // node id
	child  int // node id

	length     float64
	support    float64
	hasSupport bool

	bits      *bitset.BitSet // child-side taxon set, filled by Seal
	topoDepth int            // min(|child side|, n-|child side|)
}

// ID returns the edge's id.
func (e *Edge) ID() int { return e.id }

// Length returns the branch length.
func (e *Edge) Length() float64 { return e.length }

// Support returns the branch support label and whether one was present.
func (e *Edge) Support() (float64, bool) { return e.support, e.hasSupport }

// SetSupport sets the branch support label to be emitted on output.
func (e *Edge) SetSupport(v float64) {
	e.support = v
	e.hasSupport = true
}

// Bits returns the child-side taxon bitset computed by Seal.
func (e *Edge) Bits() *bitset.BitSet { return e.bits }

// TopoDepth returns the topological depth computed by Seal.
func (e *Edge) TopoDepth() int { return e.topoDepth }

// A Tree is a rooted phylogenetic tree over the taxa of a shared
// TaxonTable. Nodes and edges are stored in dense arenas addressed by id;
// all cross-references (parent, children, heavy child) are plain
// integer indices into those arenas, which is what
// makes cloning a tree's scratch space for a worker goroutine a matter of
// copying slices rather than rebuilding a pointer graph.
type Tree struct {
	Taxa *TaxonTable

	nodes []*Node
	edges []*Edge

	root int

	leafByTaxon []int // node id for taxon id i, -1 if this tree lacks taxon i
	leaves      []int // node ids of all leaves, in the order they were parsed

	sealed bool
}

// New returns an empty tree sharing the given taxon table.
func New(taxa *TaxonTable) *Tree {
	return &Tree{
		Taxa: taxa,
		root: -1,
	}
}

// NumTaxa returns the size of the shared taxon table.
func (t *Tree) NumTaxa() int { return t.Taxa.N() }

// Root returns the root node id, or -1 for an empty tree.
func (t *Tree) Root() int { return t.root }

// Node returns the node with the given id.
func (t *Tree) Node(id int) *Node { return t.nodes[id] }

// Edge returns the edge with the given id.
func (t *Tree) Edge(id int) *Edge { return t.edges[id] }

// NumNodes returns the number of nodes in the tree.
func (t *Tree) NumNodes() int { return len(t.nodes) }

// NumEdges returns the number of edges in the tree.
func (t *Tree) NumEdges() int { return len(t.edges) }

// Edges returns all edge ids, in creation order (child before its own
// descendants' edges, since edges are created as the Newick parser
// descends).
func (t *Tree) Edges() []int {
	ids := make([]int, len(t.edges))
	for i := range t.edges {
		ids[i] = i
	}
	return ids
}

// Leaves returns the node ids of all leaves, in parse order.
func (t *Tree) Leaves() []int {
	return t.leaves
}

// LeafByTaxon returns the node id of the leaf holding taxon id tx in this
// tree, or -1 if this tree has no such leaf.
func (t *Tree) LeafByTaxon(tx int) int {
	if tx < 0 || tx >= len(t.leafByTaxon) {
		return -1
	}
	return t.leafByTaxon[tx]
}

// newNode allocates a new, unattached node and returns its id.
func (t *Tree) newNode() int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, &Node{
		id:         id,
		taxon:      -1,
		parent:     -1,
		parentEdge: -1,
		heavyChild: -1,
	})
	return id
}

// newEdge allocates a new edge connecting parent to child and returns its
// id. The child node's parent/parentEdge links are updated, and the edge
// is appended to the parent's children.
func (t *Tree) newEdge(parent, child int) int {
	id := len(t.edges)
	t.edges = append(t.edges, &Edge{
		id:     id,
		parent: parent,
		child:  child,
		length: MinBranchLength,
	})
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[parent].childEdges = append(t.nodes[parent].childEdges, id)
	t.nodes[child].parent = parent
	t.nodes[child].parentEdge = id
	return id
}

// setRoot designates id as the tree's root.
func (t *Tree) setRoot(id int) {
	t.root = id
}

// addLeaf registers a new leaf with the given name: looks up (or
// registers) its taxon id in the shared table and returns an error if
// the table is fixed and the name is unknown.
func (t *Tree) addLeaf(name string) (int, error) {
	tx, err := t.Taxa.ID(name)
	if err != nil {
		return -1, err
	}
	id := t.newNode()
	n := t.nodes[id]
	n.name = name
	n.taxon = tx
	t.leaves = append(t.leaves, id)
	return id, nil
}

// Stats summarises diagnostic counts over a sealed tree: leaf and
// internal node counts, branches at or below the minimum resolvable
// length, and internal non-root nodes with more than two children.
type Stats struct {
	Leaves             int
	Internal           int
	ZeroLengthBranches int
	Multifurcations    int // internal non-root nodes with >2 children
}

// Stats computes diagnostic counts over t.
func (t *Tree) Stats() Stats {
	var s Stats
	for _, n := range t.nodes {
		if n.IsLeaf() {
			s.Leaves++
			continue
		}
		s.Internal++
		if n.id != t.root && len(n.children) > 2 {
			s.Multifurcations++
		}
	}
	for _, e := range t.edges {
		if e.length <= MinBranchLength {
			s.ZeroLengthBranches++
		}
	}
	return s
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree(%d nodes, %d edges, %d taxa)", len(t.nodes), len(t.edges), t.Taxa.N())
}
