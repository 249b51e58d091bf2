// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import (
	"context"
	"strings"

	"github.com/antgroup/diff3forge/modules/diferenco"
)

// DiffLines computes a two-way diff between ancestor and other entirely
// in-process, selectable via algo, without spawning an external diff
// program. It produces the same TwoWayBlock chain shape RunDiff/
// ParseNormalDiff would, so the merger and emitters are indifferent to
// which path produced it.
func DiffLines(ctx context.Context, algo diferenco.Algorithm, ancestor, other string) (*TwoWayBlock, error) {
	ancestorLines := splitKeepNewline(ancestor)
	otherLines := splitKeepNewline(other)
	changes, err := diferenco.DiffInternal(ctx, lineText(ancestorLines), lineText(otherLines), algo)
	if err != nil {
		return nil, err
	}
	var head, tail *TwoWayBlock
	for _, c := range changes {
		blk := changeToBlock(c, ancestorLines, otherLines)
		if head == nil {
			head = blk
		} else {
			tail.Next = blk
		}
		tail = blk
	}
	return head, nil
}

func lineText(lines []Line) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = string(ln.Data)
	}
	return out
}

// SplitLines splits text into Lines, recording per-line whether it was
// newline-terminated in the source. Exposed for callers (such as the
// merge emitter and the CLI) that need the common ancestor's content in
// the same Line representation the parser and merger use.
func SplitLines(text string) []Line {
	return splitKeepNewline(text)
}

// splitKeepNewline splits text into lines, recording per-line whether it
// was newline-terminated in the source (false only ever for the final
// line of a file lacking a trailing newline).
func splitKeepNewline(text string) []Line {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	trailingNewline := parts[len(parts)-1] == ""
	if trailingNewline {
		parts = parts[:len(parts)-1]
	}
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line{Data: []byte(p), Newline: true}
	}
	if !trailingNewline && len(lines) > 0 {
		lines[len(lines)-1].Newline = false
	}
	return lines
}

func changeToBlock(c diferenco.Change, ancestorLines, otherLines []Line) *TwoWayBlock {
	b := Range{Lo: c.P1 + 1, Hi: c.P1 + c.Del}
	a := Range{Lo: c.P2 + 1, Hi: c.P2 + c.Ins}
	var cmd Command
	switch {
	case c.Del == 0:
		cmd = Add
	case c.Ins == 0:
		cmd = Delete
	default:
		cmd = Change
	}
	return &TwoWayBlock{
		Cmd:    cmd,
		A:      a,
		B:      b,
		LinesA: append([]Line(nil), otherLines[c.P2:c.P2+c.Ins]...),
		LinesB: append([]Line(nil), ancestorLines[c.P1:c.P1+c.Del]...),
	}
}
