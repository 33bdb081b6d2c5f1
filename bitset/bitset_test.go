// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package bitset_test

import (
	"testing"

	"github.com/evolbioinfo/gotbe/bitset"
)

func TestSetTest(t *testing.T) {
	b := bitset.New(70)
	for _, i := range []int{0, 1, 63, 64, 69} {
		b.Set(i)
	}
	for i := 0; i < 70; i++ {
		want := i == 0 || i == 1 || i == 63 || i == 64 || i == 69
		if got := b.Test(i); got != want {
			t.Errorf("bit %d: got %v, want %v", i, got, want)
		}
	}
}

func TestComplementPopCount(t *testing.T) {
	n := 130
	b := bitset.New(n)
	for _, i := range []int{0, 5, 64, 129} {
		b.Set(i)
	}
	c := b.Complement()
	if got, want := b.PopCount()+c.PopCount(), n; got != want {
		t.Errorf("popcount(b)+popcount(complement): got %d, want %d", got, want)
	}
	for i := 0; i < n; i++ {
		if b.Test(i) == c.Test(i) {
			t.Errorf("bit %d: b and complement agree", i)
		}
	}
}

func TestEqualOrComplement(t *testing.T) {
	n := 10
	a := bitset.New(n)
	a.Set(1)
	a.Set(3)
	a.Set(5)

	b := bitset.New(n)
	b.Set(1)
	b.Set(3)
	b.Set(5)
	if !a.EqualOrComplement(b) {
		t.Errorf("identical sets should be EqualOrComplement")
	}

	c := a.Complement()
	if !a.EqualOrComplement(c) {
		t.Errorf("a and its complement should be EqualOrComplement")
	}

	d := bitset.New(n)
	d.Set(2)
	if a.EqualOrComplement(d) {
		t.Errorf("unrelated sets should not be EqualOrComplement")
	}
}

func TestCanonicalKeyStableUnderComplement(t *testing.T) {
	n := 9
	a := bitset.New(n)
	a.Set(0)
	a.Set(1)
	c := a.Complement()

	if a.CanonicalKey() != c.CanonicalKey() {
		t.Errorf("canonical key must be the same for a set and its complement")
	}

	other := bitset.New(n)
	other.Set(2)
	if a.CanonicalKey() == other.CanonicalKey() {
		t.Errorf("unrelated sets should not share a canonical key")
	}
}

func TestUnionInPlace(t *testing.T) {
	n := 20
	a := bitset.New(n)
	a.Set(1)
	b := bitset.New(n)
	b.Set(2)
	a.UnionInPlace(b)
	if !a.Test(1) || !a.Test(2) {
		t.Errorf("union should contain bits from both sets")
	}
}

func TestIntersectionCount(t *testing.T) {
	n := 12
	a := bitset.New(n)
	for _, i := range []int{0, 1, 2, 3} {
		a.Set(i)
	}
	b := bitset.New(n)
	for _, i := range []int{2, 3, 4, 5} {
		b.Set(i)
	}
	if got, want := a.IntersectionCount(b), 2; got != want {
		t.Errorf("intersection count: got %d, want %d", got, want)
	}
}
