// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import "fmt"

// A TaxonTable is the canonical, ordered list of taxon names shared by the
// reference tree and every replicate tree in a run. The tree that is
// parsed first fixes the order; taxon id equals index in that order.
// Once Fix is called the table is immutable: attempting to introduce a
// new name is a fatal TaxonMismatch error.
type TaxonTable struct {
	names []string
	index map[string]int
	fixed bool
}

// NewTaxonTable returns an empty, unfixed taxon table.
func NewTaxonTable() *TaxonTable {
	return &TaxonTable{
		index: make(map[string]int),
	}
}

// N returns the number of taxa in the table.
func (t *TaxonTable) N() int {
	return len(t.names)
}

// Name returns the taxon name for id, or "" if id is out of range.
func (t *TaxonTable) Name(id int) string {
	if id < 0 || id >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// Fixed reports whether the table no longer accepts new names.
func (t *TaxonTable) Fixed() bool {
	return t.fixed
}

// Fix freezes the table: after this call, ID will return a
// TaxonMismatch error for any name not already known.
func (t *TaxonTable) Fix() {
	t.fixed = true
}

// ID returns the taxon id for name, registering it if the table is not
// yet fixed. If the table is fixed and name is unknown, it returns a
// TaxonMismatch error.
func (t *TaxonTable) ID(name string) (int, error) {
	if id, ok := t.index[name]; ok {
		return id, nil
	}
	if t.fixed {
		return 0, &TaxonMismatchError{Name: name}
	}
	id := len(t.names)
	t.names = append(t.names, name)
	t.index[name] = id
	return id, nil
}

// Has reports whether name is already registered.
func (t *TaxonTable) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *TaxonTable) String() string {
	return fmt.Sprintf("TaxonTable(%d taxa, fixed=%v)", len(t.names), t.fixed)
}
