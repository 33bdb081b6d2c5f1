// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package randtree generates random binary trees and taxon-name
// shufflings for testing and benchmarking the transfer-index engines
// against scenarios too large to commit as fixtures.
package randtree

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/evolbioinfo/gotbe/tree"
)

// BranchLength is a discretized source of random branch lengths,
// following the Gamma/LogNormal wrapper style of package cats: a named
// gonum distribution plus the sampling it's used for.
type BranchLength struct {
	Param distuv.Normal
}

// Sample draws one branch length, floored at zero: gen_rand_tree draws
// Normal(0.1, 0.05) and clamps negative draws to zero rather than
// rejecting and resampling.
func (b BranchLength) Sample() float64 {
	v := b.Param.Rand()
	if v < 0 {
		return 0
	}
	return v
}

func (b BranchLength) String() string {
	return fmt.Sprintf("normal=%.6f,%.6f", b.Param.Mu, b.Param.Sigma)
}

// DefaultBranchLength is gen_rand_tree's Normal(0.1, 0.05) distribution.
// distuv.Normal falls back to the package-level global source when Src
// is left nil, which is acceptable here: callers needing a fully
// reproducible stream should seed that global source once up front,
// since only the topology draws in New go through the *rand.Rand
// argument.
func DefaultBranchLength() BranchLength {
	return BranchLength{Param: distuv.Normal{Mu: 0.1, Sigma: 0.05}}
}

type node struct {
	name     string
	children []*node
	length   float64
}

type edgeRef struct {
	parent, child *node
}

// New returns a random binary tree over n taxa, built the way
// gen_rand_tree does: start from a two-leaf tree, then repeatedly pick
// an existing branch uniformly at random and graft a new leaf onto it,
// splitting that branch with a fresh internal node. Branch lengths are
// drawn from bl. If names is nil, taxa are named "1".."n" as
// gen_rand_tree does when given no taxa_names. The returned tree has its
// own, unfixed taxon table, shared with no other tree.
func New(n int, names []string, rng *rand.Rand, bl BranchLength) (*tree.Tree, error) {
	if n < 2 {
		return nil, fmt.Errorf("randtree: need at least 2 taxa, got %d", n)
	}
	if names == nil {
		names = make([]string, n)
		for i := range names {
			names[i] = strconv.Itoa(i + 1)
		}
	}
	if len(names) != n {
		return nil, fmt.Errorf("randtree: got %d names for %d taxa", len(names), n)
	}
	order := Shuffle(names, rng)

	leaf0 := &node{name: order[0]}
	leaf1 := &node{name: order[1]}
	root := &node{children: []*node{leaf0, leaf1}}
	edges := []edgeRef{{root, leaf0}, {root, leaf1}}

	for i := 2; i < n; i++ {
		k := rng.IntN(len(edges))
		e := edges[k]
		newLeaf := &node{name: order[i]}
		split := &node{children: []*node{e.child, newLeaf}}
		for j, c := range e.parent.children {
			if c == e.child {
				e.parent.children[j] = split
				break
			}
		}
		edges[k] = edgeRef{split, e.child}
		edges = append(edges, edgeRef{split, newLeaf}, edgeRef{e.parent, split})
	}

	for _, e := range edges {
		e.child.length = bl.Sample()
	}

	var buf strings.Builder
	writeNode(&buf, root)
	buf.WriteByte(';')

	taxa := tree.NewTaxonTable()
	return tree.ParseString(buf.String(), taxa)
}

func writeNode(buf *strings.Builder, n *node) {
	if len(n.children) == 0 {
		buf.WriteString(n.name)
	} else {
		buf.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNode(buf, c)
		}
		buf.WriteByte(')')
	}
	if n.length > 0 {
		fmt.Fprintf(buf, ":%.10f", n.length)
	}
}

// Shuffle returns a permutation of names using a Fisher-Yates shuffle
// (rand.Shuffle), matching shuffle_taxa's role of randomising which
// taxon name lands on which leaf.
func Shuffle(names []string, rng *rand.Rand) []string {
	out := make([]string, len(names))
	copy(out, names)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
