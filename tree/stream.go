// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"bufio"
	"bytes"
	"io"
)

// A ReplicateScanner reads a stream of ';'-terminated Newick trees, one
// per call to Next, from a replicate file that may hold one tree per
// line or one tree per block spanning several lines.
// Every tree shares the scanner's taxon table, which should already be
// Fix'd to the reference tree's leaf set so an unknown taxon surfaces
// as a *TaxonMismatchError on that one replicate rather than silently
// growing the table.
type ReplicateScanner struct {
	r    *bufio.Reader
	taxa *TaxonTable
}

// NewReplicateScanner returns a scanner reading from r.
func NewReplicateScanner(r io.Reader, taxa *TaxonTable) *ReplicateScanner {
	return &ReplicateScanner{r: bufio.NewReader(r), taxa: taxa}
}

// Next parses the next tree in the stream. It returns io.EOF once the
// stream holds nothing but trailing whitespace.
func (s *ReplicateScanner) Next() (*Tree, error) {
	var buf bytes.Buffer
	depth := 0
	started := false
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				if !started {
					return nil, io.EOF
				}
				return nil, &SyntaxError{Pos: -1, Msg: "unexpected end of input, missing ';'"}
			}
			return nil, err
		}
		if !started {
			if isSpace(b) {
				continue
			}
			started = true
		}
		if b == '[' {
			depth++
		} else if b == ']' && depth > 0 {
			depth--
		}
		buf.WriteByte(b)
		if depth == 0 && b == ';' {
			break
		}
	}
	return ParseString(buf.String(), s.taxa)
}
