// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bench implements a command that checks the fast
// transfer-index engine against the naive one on random trees, and
// reports their relative speed.
package bench

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/js-arias/command"

	"github.com/evolbioinfo/gotbe/internal/randtree"
	"github.com/evolbioinfo/gotbe/tbe"
	"github.com/evolbioinfo/gotbe/tree"
)

var Command = &command.Command{
	Usage: `bench [-n <taxa>] [-r <replicates>] [-s <seed>]`,
	Short: "check the fast engine against the naive engine on random trees",
	Long: `
Command bench generates a random binary reference tree and a set of random
binary replicate trees over the same taxa, computes the transfer index of every reference edge with both
the naive and the fast engine, and reports whether they agree bit-for-bit
along with each engine's wall-clock time.

The flag -n sets the number of taxa (default 64). The flag -r sets the
number of replicate trees (default 20). The flag -s sets the seed for the
random generator; by default the generator is seeded from the OS entropy
source, so successive runs differ.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var (
	numTaxa int
	numReps int
	seed    int64
)

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numTaxa, "n", 64, "")
	c.Flags().IntVar(&numReps, "r", 20, "")
	c.Flags().Int64Var(&seed, "s", 0, "")
}

func run(c *command.Command, args []string) error {
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	bl := randtree.DefaultBranchLength()
	ref, err := randtree.New(numTaxa, nil, rng, bl)
	if err != nil {
		return err
	}
	ref.Taxa.Fix()
	if err := ref.Seal(); err != nil {
		return err
	}

	names := make([]string, numTaxa)
	for _, id := range ref.Leaves() {
		n := ref.Node(id)
		names[n.Taxon()] = n.Name()
	}

	var naiveTime, fastTime time.Duration
	mismatches := 0
	for i := 0; i < numReps; i++ {
		order := randtree.Shuffle(names, rng)
		gen, err := randtree.New(numTaxa, order, rng, bl)
		if err != nil {
			return err
		}
		// Re-read the replicate into ref's taxon table so it can be bijected.
		var buf strings.Builder
		if err := gen.WriteNewick(&buf); err != nil {
			return err
		}
		rep, err := tree.ParseString(buf.String(), ref.Taxa)
		if err != nil {
			return err
		}
		if err := rep.Seal(); err != nil {
			return err
		}
		if err := tree.Bijection(ref, rep); err != nil {
			return err
		}

		t0 := time.Now()
		naive, err := tbe.Naive(ref, rep)
		if err != nil {
			return err
		}
		naiveTime += time.Since(t0)

		t1 := time.Now()
		fast, err := tbe.Compute(ref, rep, tbe.AlgoFast)
		if err != nil {
			return err
		}
		fastTime += time.Since(t1)

		for _, e := range ref.Edges() {
			if naive[e] != fast[e] {
				mismatches++
				fmt.Fprintf(c.Stderr(), "replicate %d: edge %d: naive=%d fast=%d\n", i, e, naive[e], fast[e])
			}
		}
	}

	fmt.Fprintf(c.Stdout(), "taxa=%d replicates=%d mismatches=%d naive=%s fast=%s\n",
		numTaxa, numReps, mismatches, naiveTime, fastTime)
	if mismatches > 0 {
		return fmt.Errorf("bench: %d edge mismatches between naive and fast engines", mismatches)
	}
	return nil
}
