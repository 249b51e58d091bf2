// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import (
	"bufio"
	"bytes"
	"io"
)

// WriteEdScript renders a three-way chain as an ed script that transforms
// the common ancestor into the merged result. Groups are emitted in
// reverse order so that line numbers named by an earlier (lower) command
// remain valid after a later (higher) command has already been applied,
// since ed applies a script top-to-bottom against an unmodified buffer
// but each command's addresses are only valid until the next edit shifts
// line numbers above it.
func WriteEdScript(w io.Writer, chain *ThreeWayBlock, opt Options) error {
	blocks := chainToSlice3(chain)
	bw := bufio.NewWriter(w)
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		if opt.OverlapOnly && b.Kind != ALL {
			continue
		}
		if opt.SimpleOnly && b.Kind == ALL {
			continue
		}
		if err := writeEdGroup(bw, b, opt); err != nil {
			return err
		}
	}
	if opt.FinalWrite {
		if _, err := bw.WriteString("w\nq\n"); err != nil {
			return newIOError(err)
		}
	}
	if err := bw.Flush(); err != nil {
		return newIOError(err)
	}
	return nil
}

func chainToSlice3(head *ThreeWayBlock) []*ThreeWayBlock {
	var out []*ThreeWayBlock
	for b := head; b != nil; b = b.Next {
		out = append(out, b)
	}
	return out
}

func writeEdGroup(bw *bufio.Writer, b *ThreeWayBlock, opt Options) error {
	cmd := byte('c')
	if b.FC.Empty() {
		cmd = 'a'
	}
	if err := writeEdHeader(bw, b.FC, cmd); err != nil {
		return err
	}

	var body []Line
	switch b.Kind {
	case ONLY_1:
		body = b.LinesF0
	case ONLY_2:
		if opt.Flagging || opt.Show2nd {
			body = only2ConflictBody(b, opt)
		} else {
			body = b.LinesF1
		}
	case ONLY_3:
		body = b.LinesF0
	case ALL:
		body = conflictBody(b, opt)
	}

	startLine := edBodyStartLine(b.FC, cmd)
	dotLines := writeEdBody(bw, body, startLine)

	if _, err := bw.WriteString(".\n"); err != nil {
		return newIOError(err)
	}
	writeDotFixups(bw, dotLines)
	return nil
}

// edBodyStartLine is the absolute line number (1-based, in the file as it
// stands after this edit) occupied by the body's first line.
func edBodyStartLine(fc Range, cmd byte) int {
	if cmd == 'a' {
		return fc.Lo - 1 + 1
	}
	return fc.Lo
}

func conflictBody(b *ThreeWayBlock, opt Options) []Line {
	var out []Line
	out = append(out, Line{Data: []byte("<<<<<<< " + opt.resolveLabel(0, "A"))})
	out = append(out, b.LinesF0...)
	if opt.Show2nd {
		out = append(out, Line{Data: []byte("||||||| " + opt.resolveLabel(2, "O"))})
		out = append(out, b.LinesFC...)
	}
	out = append(out, Line{Data: []byte("=======")})
	out = append(out, b.LinesF1...)
	out = append(out, Line{Data: []byte(">>>>>>> " + opt.resolveLabel(1, "B"))})
	for i := range out {
		out[i].Newline = true
	}
	return out
}

// only2ConflictBody brackets an ONLY_2 group (only F1 differs from FC) the
// same way conflictBody brackets a genuine two-sided ALL conflict, so -A/
// --show-all (Flagging) can flag which file an unopposed change came from:
// the opening and closing markers both name F1 (the side that actually
// changed) since there is no F0-side content to show in its place.
func only2ConflictBody(b *ThreeWayBlock, opt Options) []Line {
	var out []Line
	label := opt.resolveLabel(1, "B")
	out = append(out, Line{Data: []byte("<<<<<<< " + label)})
	out = append(out, b.LinesF1...)
	if opt.Show2nd {
		out = append(out, Line{Data: []byte("||||||| " + opt.resolveLabel(2, "O"))})
		out = append(out, b.LinesFC...)
	}
	out = append(out, Line{Data: []byte("=======")})
	out = append(out, Line{Data: []byte(">>>>>>> " + label)})
	for i := range out {
		out[i].Newline = true
	}
	return out
}

func writeEdHeader(bw *bufio.Writer, fc Range, cmd byte) error {
	if fc.Empty() {
		if _, err := bw.WriteString(itoa(fc.Lo-1) + "a\n"); err != nil {
			return newIOError(err)
		}
		return nil
	}
	var rng string
	if fc.Lo == fc.Hi {
		rng = itoa(fc.Lo)
	} else {
		rng = itoa(fc.Lo) + "," + itoa(fc.Hi)
	}
	_, err := bw.WriteString(rng + string(cmd) + "\n")
	if err != nil {
		return newIOError(err)
	}
	return nil
}

// writeEdBody writes each content line, escaping a line whose entire
// content is "." (which would otherwise prematurely terminate the ed
// input) by doubling the leading dot, and returns the absolute line
// numbers that need a follow-up "Ns/^\.//" fixup.
func writeEdBody(bw *bufio.Writer, lines []Line, startLine int) []int {
	var dotLines []int
	for k, ln := range lines {
		abs := startLine + k
		if bytes.Equal(ln.Data, []byte(".")) {
			bw.WriteString("..\n")
			dotLines = append(dotLines, abs)
			continue
		}
		bw.Write(ln.Data)
		if ln.Newline {
			bw.WriteByte('\n')
		} else {
			bw.WriteString("\n")
		}
	}
	return dotLines
}

// writeDotFixups appends the "s/^\.//" substitute commands that restore
// lines doubled by writeEdBody, coalescing contiguous runs into a single
// "N,Ms/^\.//" command.
func writeDotFixups(bw *bufio.Writer, dotLines []int) {
	for i := 0; i < len(dotLines); {
		j := i
		for j+1 < len(dotLines) && dotLines[j+1] == dotLines[j]+1 {
			j++
		}
		if i == j {
			bw.WriteString(itoa(dotLines[i]) + "s/^\\.//\n")
		} else {
			bw.WriteString(itoa(dotLines[i]) + "," + itoa(dotLines[j]) + "s/^\\.//\n")
		}
		i = j + 1
	}
}
