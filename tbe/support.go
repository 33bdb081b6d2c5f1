// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import (
	"gonum.org/v1/gonum/stat"

	"github.com/evolbioinfo/gotbe/tree"
)

// Normalize turns a Result's running sums into per-edge support values
// in [0, 1] and writes them onto ref via
// tree.Edge.SetSupport. For TBE, an edge's raw average transfer
// distance is normalised by its topological depth minus one before
// being turned into a support (1 - avg/(topoDepth-1), clamped to 0 when
// negative); an edge of depth 1 or less, which never has a competing
// internal branch to transfer against, gets a support of 1. For FBP,
// the sum is already an exact-match count,
// so normalising is just a fraction of the replicate count.
func Normalize(ref *tree.Tree, res *Result, fbp bool) {
	if res.Replicates == 0 {
		return
	}
	for _, i := range ref.Edges() {
		e := ref.Edge(i)
		if fbp {
			e.SetSupport(float64(res.DistSum[i]) / float64(res.Replicates))
			continue
		}
		avg := float64(res.DistSum[i]) / float64(res.Replicates)
		depth := e.TopoDepth()
		if depth <= 1 {
			e.SetSupport(1)
			continue
		}
		support := 1 - avg/float64(depth-1)
		if support < 0 {
			support = 0
		}
		e.SetSupport(support)
	}
}

// BranchStats summarises one reference edge's replicate distances, for
// the optional per-branch stats report.
type BranchStats struct {
	EdgeID      int
	MeanMinDist float64
	StdDev      float64 // 0 unless Option.CollectStats was set
	TopoDepth   int
	Support     float64
}

// Stats returns one BranchStats entry per reference edge, in edge id
// order. When res.PerEdge is populated (Option.CollectStats), the mean
// and standard deviation come from gonum's stat.MeanStdDev over the raw
// per-replicate distances; otherwise MeanMinDist falls back to the
// running sum divided by the replicate count and StdDev is left at 0.
func Stats(ref *tree.Tree, res *Result) []BranchStats {
	out := make([]BranchStats, ref.NumEdges())
	for _, i := range ref.Edges() {
		e := ref.Edge(i)
		support, _ := e.Support()
		bs := BranchStats{
			EdgeID:    i,
			TopoDepth: e.TopoDepth(),
			Support:   support,
		}
		if res.PerEdge != nil && len(res.PerEdge[i]) > 0 {
			bs.MeanMinDist, bs.StdDev = stat.MeanStdDev(res.PerEdge[i], nil)
		} else if res.Replicates > 0 {
			bs.MeanMinDist = float64(res.DistSum[i]) / float64(res.Replicates)
		}
		out[i] = bs
	}
	return out
}
