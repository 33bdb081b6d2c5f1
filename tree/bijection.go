// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

// Bijection checks that ref and rep carry exactly the same taxon set: it
// is a fatal TaxonMismatchError for rep to carry a taxon absent from ref,
// or vice versa. Both trees must share the same *TaxonTable. Bijection
// only validates; it does not write to either tree, so it is safe to
// call concurrently against a shared ref from multiple goroutines, each
// with its own rep. Callers that need a ref leaf's rep counterpart
// resolve it themselves via rep.LeafByTaxon(ref.Node(id).Taxon()).
func Bijection(ref, rep *Tree) error {
	if ref.Taxa != rep.Taxa {
		return &InvariantViolation{Msg: "Bijection called on trees with different taxon tables"}
	}
	n := ref.Taxa.N()
	for tx := 0; tx < n; tx++ {
		rl := ref.LeafByTaxon(tx)
		pl := rep.LeafByTaxon(tx)
		if rl < 0 && pl < 0 {
			continue
		}
		if rl < 0 {
			return &TaxonMismatchError{Name: rep.Taxa.Name(tx)}
		}
		if pl < 0 {
			return &TaxonMismatchError{Name: ref.Taxa.Name(tx)}
		}
	}
	if len(ref.leaves) != len(rep.leaves) {
		return &InvariantViolation{Msg: "leaf counts differ after a taxon-by-taxon bijection succeeded"}
	}
	return nil
}
