// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands that inspect phylogenetic
// trees outside of a support-computation run.
package tree

import (
	"github.com/js-arias/command"

	"github.com/evolbioinfo/gotbe/cmd/gotbe/tree/view"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for inspecting phylogenetic trees",
}

func init() {
	Command.Add(view.Command)
}
