// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tbe

import (
	"errors"
	"io"
	"runtime"
	"sync"

	"github.com/evolbioinfo/gotbe/tree"
)

// Result accumulates, per reference edge, the statistics needed to
// report TBE or FBP support after a replicate stream has been fully
// consumed.
type Result struct {
	Replicates int   // replicates that contributed to DistSum
	Skipped    int   // replicates skipped after a recoverable error
	DistSum    []int // per reference edge, summed min transfer distance (TBE) or exact-match count (FBP)

	// PerEdge holds, when Option.CollectStats is set, every replicate's
	// raw contribution for each reference edge, in the order they were
	// accumulated (not dispatch order). Used by Stats to report a real
	// distribution instead of just a running mean.
	PerEdge [][]float64
}

// Option configures a Run.
type Option struct {
	Algorithm Algorithm // AlgoFast (default) or AlgoNaiveOnly
	Workers   int       // 0 uses runtime.NumCPU()
	FBP       bool      // classical Felsenstein support instead of TBE

	// OnSkip, if set, is called once per skipped replicate.
	OnSkip func(index int, err error)

	// Cancel, if set, is checked between replicates: when it is
	// closed, Run stops dispatching new work and returns once workers
	// already in flight have drained.
	Cancel <-chan struct{}

	// CollectStats retains every replicate's raw per-edge distance in
	// Result.PerEdge, for the -S per-branch report. Off by
	// default to keep memory at O(edges) rather than O(edges*replicates).
	CollectStats bool
}

type repJob struct {
	index int
	rep   *tree.Tree
}

type repOutcome struct {
	index int
	dist  []int
	err   error
}

// Run streams replicate trees from next (which returns io.EOF once
// exhausted), bijects each against ref, and dispatches the
// (ref, replicate) pairs across a worker pool using a fork-join model:
// ref is a shared, read-only skeleton (Compute never writes to it; all
// per-computation state lives in values local to the call), so no
// worker needs a private clone of it, only of the replicate it was
// handed.
//
// A replicate whose computation reports an InvariantViolation (of
// package tbe or tree) makes Run return that error once the workers
// have drained; any other per-replicate error is counted in Skipped.
func Run(ref *tree.Tree, next func() (*tree.Tree, error), opt Option) (*Result, error) {
	if !ref.Sealed() {
		return nil, &InvariantViolation{Msg: "Run called on an unsealed reference tree"}
	}
	workers := opt.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan repJob, workers*2)
	outcomes := make(chan repOutcome, workers*2)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				dist, err := processReplicate(ref, j.rep, opt)
				outcomes <- repOutcome{index: j.index, dist: dist, err: err}
			}
		}()
	}

	res := &Result{DistSum: make([]int, ref.NumEdges())}
	if opt.CollectStats {
		res.PerEdge = make([][]float64, ref.NumEdges())
	}
	var fatal error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for o := range outcomes {
			if o.err != nil {
				var iv *InvariantViolation
				var tiv *tree.InvariantViolation
				if errors.As(o.err, &iv) || errors.As(o.err, &tiv) {
					if fatal == nil {
						fatal = o.err
					}
					continue
				}
				res.Skipped++
				if opt.OnSkip != nil {
					opt.OnSkip(o.index, o.err)
				}
				continue
			}
			res.Replicates++
			for i, d := range o.dist {
				res.DistSum[i] += d
				if res.PerEdge != nil {
					res.PerEdge[i] = append(res.PerEdge[i], float64(d))
				}
			}
		}
	}()

	idx := 0
readLoop:
	for {
		select {
		case <-canceled(opt.Cancel):
			break readLoop
		default:
		}
		rep, err := next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Skipped++
			if opt.OnSkip != nil {
				opt.OnSkip(idx, err)
			}
			idx++
			continue
		}
		jobs <- repJob{index: idx, rep: rep}
		idx++
	}
	close(jobs)
	wg.Wait()
	close(outcomes)
	<-done

	if fatal != nil {
		return nil, fatal
	}
	return res, nil
}

// canceled turns a possibly-nil cancel channel into one that always
// blocks, so the select in Run's read loop is a no-op when Cancel was
// left unset.
func canceled(c <-chan struct{}) <-chan struct{} {
	if c == nil {
		return nil
	}
	return c
}

// processReplicate bijects rep against ref and computes its
// contribution to the running DistSum: either a
// per-edge TBE minimum transfer distance, or a per-edge FBP exact-match
// indicator.
func processReplicate(ref, rep *tree.Tree, opt Option) ([]int, error) {
	if err := tree.Bijection(ref, rep); err != nil {
		return nil, err
	}
	if opt.FBP {
		hits := FBP(ref, []*tree.Tree{rep})
		return hits, nil
	}
	return Compute(ref, rep, opt.Algorithm)
}
