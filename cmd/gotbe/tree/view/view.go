// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package view implements a read-only command that prints a tree's
// summary diagnostics and re-emits it in Newick, for inspecting a file
// outside of a support-computation run.
package view

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"

	"github.com/evolbioinfo/gotbe/tree"
)

var Command = &command.Command{
	Usage: `view [-i <tree-file>]`,
	Short: "print a tree's diagnostics and re-emit it in Newick",
	Long: `
Command view reads a single Newick tree, prints a short diagnostic summary
(number of leaves, internal nodes, zero-length branches, multifurcations),
and re-emits the tree in Newick on standard output.

Unlike the run command, view never treats the input as a bootstrap
replicate: any branch-support labels present in the input are preserved on
output rather than being overwritten, since there is no replicate set to
compute a new support from.

The flag -i gives the path of the tree file; "-" or an absent flag reads
from standard input.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var inPath string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&inPath, "i", "-", "")
}

func run(c *command.Command, args []string) error {
	var r io.Reader = c.Stdin()
	if inPath != "" && inPath != "-" {
		f, err := os.Open(inPath)
		if err != nil {
			return fmt.Errorf("opening %q: %w", inPath, err)
		}
		defer f.Close()
		r = f
	}

	taxa := tree.NewTaxonTable()
	t, err := tree.Parse(r, taxa)
	if err != nil {
		return fmt.Errorf("reading tree: %w", err)
	}
	if err := t.Seal(); err != nil {
		return err
	}

	s := t.Stats()
	fmt.Fprintf(c.Stderr(), "leaves\t%d\n", s.Leaves)
	fmt.Fprintf(c.Stderr(), "internal\t%d\n", s.Internal)
	fmt.Fprintf(c.Stderr(), "zero-length-branches\t%d\n", s.ZeroLengthBranches)
	fmt.Fprintf(c.Stderr(), "multifurcations\t%d\n", s.Multifurcations)

	return t.WriteNewick(c.Stdout())
}
