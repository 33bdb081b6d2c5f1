// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Gotbe computes transfer bootstrap expectation (TBE) and classical
// Felsenstein bootstrap proportion (FBP) branch support for a
// phylogenetic tree against a stream of bootstrap replicates.
package main

import (
	"github.com/js-arias/command"

	"github.com/evolbioinfo/gotbe/cmd/gotbe/bench"
	"github.com/evolbioinfo/gotbe/cmd/gotbe/run"
	"github.com/evolbioinfo/gotbe/cmd/gotbe/tree"
)

var app = &command.Command{
	Usage: "gotbe <command> [<argument>...]",
	Short: "a tool for transfer bootstrap expectation support",
}

func init() {
	app.Add(run.Command)
	app.Add(bench.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
