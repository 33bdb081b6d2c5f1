// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tbe computes transfer bootstrap expectation (TBE) and
// classical Felsenstein bootstrap proportion (FBP) branch support for a
// reference tree against a stream of replicate trees.
package tbe

import "fmt"

// An InvariantViolation reports an assertion failure inside one of the
// transfer-index engines: a programming defect, never a malformed
// input, so the orchestrator (Run) treats it as fatal rather than a
// per-replicate skip.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("tbe: invariant violated: %s", e.Msg)
}
