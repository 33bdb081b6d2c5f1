// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/evolbioinfo/gotbe/tree"
)

func TestParseRoundTrip(t *testing.T) {
	in := "((A:1,B:1):1,(C:1,D:1):1,E:1);"
	taxa := tree.NewTaxonTable()
	tr, err := tree.ParseString(in, taxa)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if got, want := tr.NumTaxa(), 5; got != want {
		t.Fatalf("NumTaxa: got %d, want %d", got, want)
	}

	var buf strings.Builder
	if err := tr.WriteNewick(&buf); err != nil {
		t.Fatalf("WriteNewick: %v", err)
	}

	again, err := tree.ParseString(buf.String(), taxa)
	if err != nil {
		t.Fatalf("re-parsing emitted newick: %v", err)
	}
	if got, want := again.NumNodes(), tr.NumNodes(); got != want {
		t.Errorf("NumNodes after round-trip: got %d, want %d", got, want)
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []string{
		"((A,B)",        // missing ');'
		"(A,B));",       // unmatched ')'
		"(A,B):1;",      // branch length on the root
		"(A,[unterminated B);",
	}
	for _, in := range cases {
		taxa := tree.NewTaxonTable()
		if _, err := tree.ParseString(in, taxa); err == nil {
			t.Errorf("ParseString(%q): expected an error, got none", in)
		}
	}
}

func TestSealInvariants(t *testing.T) {
	taxa := tree.NewTaxonTable()
	tr, err := tree.ParseString("((A:1,B:1):1,(C:1,D:1):1,E:1);", taxa)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if err := tr.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	n := tr.NumTaxa()
	for _, i := range tr.Edges() {
		e := tr.Edge(i)
		if got, want := e.Bits().PopCount()+e.Bits().Complement().PopCount(), n; got != want {
			t.Errorf("edge %d: popcount(bits)+popcount(complement): got %d, want %d", i, got, want)
		}
	}

	if err := tr.CheckFastPathShape(); err != nil {
		t.Errorf("CheckFastPathShape: %v", err)
	}
}

func TestCheckFastPathShapeRejectsMultifurcation(t *testing.T) {
	taxa := tree.NewTaxonTable()
	tr, err := tree.ParseString("((A:1,B:1,F:1):1,(C:1,D:1):1,E:1);", taxa)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if err := tr.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	var shapeErr *tree.ShapeError
	if err := tr.CheckFastPathShape(); err == nil {
		t.Fatal("expected a ShapeError for the non-root trifurcation")
	} else if !errors.As(err, &shapeErr) {
		t.Errorf("expected *tree.ShapeError, got %T", err)
	}
}
