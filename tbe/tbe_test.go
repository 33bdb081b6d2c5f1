// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/evolbioinfo/gotbe/internal/randtree"
	"github.com/evolbioinfo/gotbe/tbe"
	"github.com/evolbioinfo/gotbe/tree"
)

// sealedPair parses and seals a reference and a replicate tree sharing
// one taxon table, and bijects them.
func sealedPair(t *testing.T, refNewick, repNewick string) (*tree.Tree, *tree.Tree) {
	t.Helper()
	taxa := tree.NewTaxonTable()
	ref, err := tree.ParseString(refNewick, taxa)
	if err != nil {
		t.Fatalf("parsing reference: %v", err)
	}
	taxa.Fix()
	if err := ref.Seal(); err != nil {
		t.Fatalf("sealing reference: %v", err)
	}

	rep, err := tree.ParseString(repNewick, taxa)
	if err != nil {
		t.Fatalf("parsing replicate: %v", err)
	}
	if err := rep.Seal(); err != nil {
		t.Fatalf("sealing replicate: %v", err)
	}
	if err := tree.Bijection(ref, rep); err != nil {
		t.Fatalf("Bijection: %v", err)
	}
	return ref, rep
}

// TestExactMatch checks that an identical replicate gives a transfer
// index of 0 on every internal edge.
func TestExactMatch(t *testing.T) {
	ref, rep := sealedPair(t, "((A:1,B:1):1,(C:1,D:1):1,E:1);", "((A:1,B:1):1,(C:1,D:1):1,E:1);")
	dist, err := tbe.Compute(ref, rep, tbe.AlgoFast)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, i := range ref.Edges() {
		if ref.Node(ref.Edge(i).Child()).IsLeaf() {
			continue
		}
		if dist[i] != 0 {
			t.Errorf("edge %d: transfer index = %d, want 0 for an identical replicate", i, dist[i])
		}
	}
}

// TestSingleLeafSwap checks the transfer index after swapping one leaf
// between two cherries.
func TestSingleLeafSwap(t *testing.T) {
	ref, rep := sealedPair(t, "((A,B),(C,D),E);", "((A,C),(B,D),E);")
	dist, err := tbe.Compute(ref, rep, tbe.AlgoFast)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, i := range ref.Edges() {
		e := ref.Edge(i)
		if ref.Node(e.Child()).IsLeaf() {
			continue
		}
		if got, want := dist[i], 1; got != want {
			t.Errorf("edge %d: transfer index = %d, want %d", i, got, want)
		}
		if got, want := e.TopoDepth(), 2; got != want {
			t.Errorf("edge %d: topo depth = %d, want %d", i, got, want)
		}
	}
}

// TestFourTaxonCaterpillar checks the transfer index on a caterpillar
// topology where exactly one internal edge differs from the reference.
func TestFourTaxonCaterpillar(t *testing.T) {
	ref, rep := sealedPair(t, "(((A:1,B:1):1,C:1):1,D:1,E:1);", "(((A,B),D),C,E);")
	dist, err := tbe.Compute(ref, rep, tbe.AlgoFast)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	differing := 0
	for _, i := range ref.Edges() {
		if ref.Node(ref.Edge(i).Child()).IsLeaf() {
			continue
		}
		if dist[i] != 0 {
			differing++
			if dist[i] != 1 {
				t.Errorf("edge %d: transfer index = %d, want 1", i, dist[i])
			}
		}
	}
	if differing != 1 {
		t.Errorf("edges with a nonzero transfer index: got %d, want 1", differing)
	}
}

// TestNormalizeExactMatch checks that Normalize turns an all-zero
// transfer-index distribution into a support of 1.0 on every internal
// edge.
func TestNormalizeExactMatch(t *testing.T) {
	ref, rep := sealedPair(t, "((A:1,B:1):1,(C:1,D:1):1,E:1);", "((A:1,B:1):1,(C:1,D:1):1,E:1);")
	dist, err := tbe.Compute(ref, rep, tbe.AlgoFast)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	res := &tbe.Result{Replicates: 1, DistSum: dist}
	tbe.Normalize(ref, res, false)
	for _, i := range ref.Edges() {
		if ref.Node(ref.Edge(i).Child()).IsLeaf() {
			continue
		}
		support, ok := ref.Edge(i).Support()
		if !ok {
			t.Fatalf("edge %d: no support recorded", i)
		}
		if support != 1 {
			t.Errorf("edge %d: support = %.6f, want 1.0 for an identical replicate", i, support)
		}
	}
}

// TestNormalizeSingleLeafSwap checks that a depth-2 edge with an
// average transfer distance of 1 gets a support of 0.0: the
// normalisation divides by topoDepth-1, not topoDepth, so the one
// possible transfer exhausts all of the edge's competing branches.
func TestNormalizeSingleLeafSwap(t *testing.T) {
	ref, rep := sealedPair(t, "((A,B),(C,D),E);", "((A,C),(B,D),E);")
	dist, err := tbe.Compute(ref, rep, tbe.AlgoFast)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	res := &tbe.Result{Replicates: 1, DistSum: dist}
	tbe.Normalize(ref, res, false)
	for _, i := range ref.Edges() {
		if ref.Node(ref.Edge(i).Child()).IsLeaf() {
			continue
		}
		support, ok := ref.Edge(i).Support()
		if !ok {
			t.Fatalf("edge %d: no support recorded", i)
		}
		if support != 0 {
			t.Errorf("edge %d: support = %.6f, want 0.0", i, support)
		}
	}
}

// TestNaiveFastAgreement checks that the naive and fast engines agree
// bit-for-bit on a batch of random trees.
func TestNaiveFastAgreement(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	bl := randtree.DefaultBranchLength()

	const taxa = 48
	ref, err := randtree.New(taxa, nil, rng, bl)
	if err != nil {
		t.Fatalf("randtree.New(ref): %v", err)
	}
	ref.Taxa.Fix()
	if err := ref.Seal(); err != nil {
		t.Fatalf("Seal(ref): %v", err)
	}

	names := make([]string, taxa)
	for _, id := range ref.Leaves() {
		n := ref.Node(id)
		names[n.Taxon()] = n.Name()
	}

	for r := 0; r < 10; r++ {
		order := randtree.Shuffle(names, rng)
		gen, err := randtree.New(taxa, order, rng, bl)
		if err != nil {
			t.Fatalf("randtree.New(rep %d): %v", r, err)
		}
		// randtree.New gives every tree its own taxon table; re-read the
		// replicate into ref's table so the two can be bijected.
		var buf strings.Builder
		if err := gen.WriteNewick(&buf); err != nil {
			t.Fatalf("WriteNewick(rep %d): %v", r, err)
		}
		rep, err := tree.ParseString(buf.String(), ref.Taxa)
		if err != nil {
			t.Fatalf("re-parsing rep %d: %v", r, err)
		}
		if err := rep.Seal(); err != nil {
			t.Fatalf("Seal(rep %d): %v", r, err)
		}
		if err := tree.Bijection(ref, rep); err != nil {
			t.Fatalf("Bijection(rep %d): %v", r, err)
		}

		naive, err := tbe.Naive(ref, rep)
		if err != nil {
			t.Fatalf("Naive(rep %d): %v", r, err)
		}
		fast, err := tbe.Compute(ref, rep, tbe.AlgoFast)
		if err != nil {
			t.Fatalf("Compute(rep %d): %v", r, err)
		}
		for _, i := range ref.Edges() {
			if naive[i] != fast[i] {
				t.Errorf("rep %d, edge %d: naive=%d fast=%d", r, i, naive[i], fast[i])
			}
			depth := ref.Edge(i).TopoDepth()
			if fast[i] < 0 || fast[i] > depth {
				t.Errorf("rep %d, edge %d: transfer index %d out of range [0, %d]", r, i, fast[i], depth)
			}
		}
	}
}

// TestFastResetIsIdempotent checks that running the fast engine twice
// on the same pair, with a fresh backend each time, gives
// bitwise-identical results.
func TestFastResetIsIdempotent(t *testing.T) {
	ref, rep := sealedPair(t, "(((A:1,B:1):1,C:1):1,D:1,E:1);", "(((A,B),D),C,E);")
	first, err := tbe.Fast(ref, rep)
	if err != nil {
		t.Fatalf("Fast (first run): %v", err)
	}
	second, err := tbe.Fast(ref, rep)
	if err != nil {
		t.Fatalf("Fast (second run): %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("edge %d: first run = %d, second run = %d", i, first[i], second[i])
		}
	}
}

func TestFBPExactMatch(t *testing.T) {
	ref, rep := sealedPair(t, "((A:1,B:1):1,(C:1,D:1):1,E:1);", "((A:1,B:1):1,(C:1,D:1):1,E:1);")
	hits := tbe.FBP(ref, []*tree.Tree{rep})
	for _, i := range ref.Edges() {
		if ref.Node(ref.Edge(i).Child()).IsLeaf() {
			continue
		}
		if hits[i] != 1 {
			t.Errorf("edge %d: FBP hits = %d, want 1 for an identical replicate", i, hits[i])
		}
	}
}

func TestShapeErrorFallsBackToNaive(t *testing.T) {
	ref, rep := sealedPair(t, "((A,B),(C,D),(E,F));", "((A,B,F),(C,D),E);")
	dist, err := tbe.Compute(ref, rep, tbe.AlgoFast)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	naive, err := tbe.Naive(ref, rep)
	if err != nil {
		t.Fatalf("Naive: %v", err)
	}
	for i := range dist {
		if dist[i] != naive[i] {
			t.Errorf("edge %d: fallback Compute=%d, Naive=%d", i, dist[i], naive[i])
		}
	}
}
