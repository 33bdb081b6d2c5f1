// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package run implements the command that computes branch support for
// a reference tree against a stream of bootstrap replicates.
package run

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/js-arias/command"

	"github.com/evolbioinfo/gotbe/tbe"
	"github.com/evolbioinfo/gotbe/tree"
)

// version identifies the tool for the -v flag.
const version = "gotbe 0.1.0"

var Command = &command.Command{
	Usage: `run -i <tree-file> -b <tree-file>
	[-o <tree-file>] [-a tbe|fbp]
	[-@ <number>] [-S <stats-file>] [-s <seed>]
	[-q] [-v]`,
	Short: "compute branch support from a replicate set",
	Long: `
Command run reads a reference tree and a set of bootstrap replicate trees,
and annotates the reference tree's internal edges with a branch support
value.

The flag -i gives the path of the reference tree file, which must contain a
single Newick tree. The flag -b gives the path of the replicate tree file,
which holds one Newick tree per line or block. Either path may be "-" to
read from standard input.

By default the algorithm is the transfer bootstrap expectation (TBE) of
Lemoine et al. Use -a fbp for the classical Felsenstein bootstrap
proportion instead, which requires an exact bipartition match.

The flag -@ sets the number of worker goroutines used to process
replicates concurrently; by default a single worker is used.

The flag -o sets the output tree file; by default the annotated tree is
written to standard output. The flag -S, if given, writes a tab-delimited
per-branch report with one row per internal reference edge.

The flag -s sets the seed for any optional random shuffles; it has no
effect on this command's own computation, which is deterministic, and is
accepted only for symmetry with the bench command.

The flag -q suppresses the per-run progress summary on standard error. The
flag -v prints the tool's version and exits.
	`,
	SetFlags: setFlags,
	Run:      runCmd,
}

var (
	refPath    string
	repPath    string
	outPath    string
	statsPath  string
	algoFlag   string
	numWorkers int
	seed       int64
	quiet      bool
	showVer    bool
)

func setFlags(c *command.Command) {
	c.Flags().StringVar(&refPath, "i", "", "")
	c.Flags().StringVar(&repPath, "b", "", "")
	c.Flags().StringVar(&outPath, "o", "", "")
	c.Flags().StringVar(&statsPath, "S", "", "")
	c.Flags().StringVar(&algoFlag, "a", "tbe", "")
	c.Flags().IntVar(&numWorkers, "@", 1, "")
	c.Flags().Int64Var(&seed, "s", 0, "")
	c.Flags().BoolVar(&quiet, "q", false, "")
	c.Flags().BoolVar(&showVer, "v", false, "")
}

func runCmd(c *command.Command, args []string) error {
	if showVer {
		fmt.Fprintln(c.Stdout(), version)
		return nil
	}
	if refPath == "" {
		return c.UsageError("flag -i is required: path of the reference tree")
	}
	if repPath == "" {
		return c.UsageError("flag -b is required: path of the replicate trees")
	}

	var fbp bool
	switch algoFlag {
	case "tbe":
		fbp = false
	case "fbp":
		fbp = true
	default:
		return c.UsageError(fmt.Sprintf("flag -a: unknown algorithm %q, want tbe or fbp", algoFlag))
	}

	ref, err := readReference(c, refPath)
	if err != nil {
		return err
	}

	repFile, err := openInput(c, repPath)
	if err != nil {
		return err
	}
	defer repFile.Close()
	scanner := tree.NewReplicateScanner(repFile, ref.Taxa)

	next := func() (*tree.Tree, error) {
		rep, err := scanner.Next()
		if err != nil {
			return nil, err
		}
		if err := rep.Seal(); err != nil {
			return nil, err
		}
		return rep, nil
	}

	opt := tbe.Option{
		Algorithm:    tbe.AlgoFast,
		Workers:      numWorkers,
		FBP:          fbp,
		CollectStats: statsPath != "",
		OnSkip: func(index int, err error) {
			if !quiet {
				fmt.Fprintf(c.Stderr(), "replicate %d: skipped: %v\n", index, err)
			}
		},
	}

	res, err := tbe.Run(ref, next, opt)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(c.Stderr(), "%d replicates used, %d skipped\n", res.Replicates, res.Skipped)
	}

	tbe.Normalize(ref, res, fbp)

	out, closeOut, err := openOutput(c, outPath)
	if err != nil {
		return err
	}
	defer closeOut()
	if err := ref.WriteNewick(out); err != nil {
		return fmt.Errorf("writing output tree: %w", err)
	}

	if statsPath != "" {
		if err := writeStats(ref, res, statsPath); err != nil {
			return err
		}
	}

	return nil
}

func readReference(c *command.Command, path string) (*tree.Tree, error) {
	f, err := openInput(c, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	taxa := tree.NewTaxonTable()
	ref, err := tree.Parse(f, taxa)
	if err != nil {
		return nil, fmt.Errorf("reading reference tree %q: %w", path, err)
	}
	taxa.Fix()
	if err := ref.Seal(); err != nil {
		return nil, err
	}
	return ref, nil
}

func openInput(c *command.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(c.Stdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	return f, nil
}

func openOutput(c *command.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return c.Stdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %q: %w", path, err)
	}
	return f, f.Close, nil
}

// writeStats writes the optional -S report, one row per internal
// reference edge.
func writeStats(ref *tree.Tree, res *tbe.Result, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			err = e
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "edge_id\ttopological_depth\tmean_min_dist\tnormalised_support")

	rows := tbe.Stats(ref, res)
	sort.Slice(rows, func(i, j int) bool { return rows[i].EdgeID < rows[j].EdgeID })
	for _, r := range rows {
		if ref.Node(ref.Edge(r.EdgeID).Child()).IsLeaf() {
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\n", r.EdgeID, r.TopoDepth, r.MeanMinDist, r.Support)
	}
	return w.Flush()
}
