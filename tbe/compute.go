// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import (
	"errors"

	"github.com/evolbioinfo/gotbe/tree"
)

// Algorithm selects which transfer-index engine Compute uses for a
// replicate.
type Algorithm int

const (
	// AlgoFast prefers the heavy-path engine (Fast), falling back to
	// Naive for any replicate whose shape disqualifies it.
	AlgoFast Algorithm = iota
	// AlgoNaiveOnly always uses the O(n^2) engine.
	AlgoNaiveOnly
)

// Compute returns ref's per-edge minimum transfer distance against
// rep, indexed by reference edge id; ref itself is not written. It implements the fallback policy:
// a *tree.ShapeError from the fast path is not propagated, it just
// routes this one replicate to Naive.
func Compute(ref, rep *tree.Tree, algo Algorithm) ([]int, error) {
	if algo == AlgoFast {
		dist, err := Fast(ref, rep)
		if err == nil {
			return dist, nil
		}
		var shapeErr *tree.ShapeError
		if !errors.As(err, &shapeErr) {
			return nil, err
		}
	}
	return Naive(ref, rep)
}
