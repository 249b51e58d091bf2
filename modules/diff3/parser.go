// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import (
	"bytes"
	"strconv"
)

// ParseNormalDiff parses the text of a GNU "normal" format two-way diff
// into an ordered chain of TwoWayBlocks. An empty buffer yields a nil
// chain (no differences). The buffer must end in a newline; an
// incomplete last line is a fatal PARSE_ERROR.
func ParseNormalDiff(buf []byte) (*TwoWayBlock, error) {
	p := &parser{buf: buf}
	var head, tail *TwoWayBlock
	for p.pos < len(p.buf) {
		blk, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = blk
		} else {
			tail.Next = blk
		}
		tail = blk
	}
	return head, nil
}

type parser struct {
	buf []byte
	pos int
}

// readLine returns the next line, excluding its terminating newline, and
// advances past it. Returns PARSE_ERROR if the buffer ends mid-line.
func (p *parser) readLine() ([]byte, error) {
	start := p.pos
	idx := bytes.IndexByte(p.buf[p.pos:], '\n')
	if idx < 0 {
		return nil, newParseError(start, string(p.buf[start:]))
	}
	line := p.buf[start : start+idx]
	p.pos = start + idx + 1
	return line, nil
}

func parseUint(s []byte) (int, []byte, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(string(s[:i]))
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}

// parseRangeExpr parses "N" or "N,M".
func parseRangeExpr(s []byte) (lo, hi int, rest []byte, ok bool) {
	lo, rest, ok = parseUint(s)
	if !ok {
		return 0, 0, s, false
	}
	hi = lo
	if len(rest) > 0 && rest[0] == ',' {
		hi, rest, ok = parseUint(rest[1:])
		if !ok {
			return 0, 0, s, false
		}
	}
	return lo, hi, rest, true
}

func (p *parser) parseHeader(line []byte) (cmd byte, aLo, aHi, bLo, bHi int, ok bool) {
	s := line
	aLo, aHi, s, ok = parseRangeExpr(s)
	if !ok || len(s) == 0 {
		return
	}
	cmd = s[0]
	if cmd != 'a' && cmd != 'c' && cmd != 'd' {
		ok = false
		return
	}
	s = s[1:]
	bLo, bHi, s, ok = parseRangeExpr(s)
	if !ok || len(s) != 0 {
		ok = false
		return
	}
	return cmd, aLo, aHi, bLo, bHi, true
}

func (p *parser) parseBlock() (*TwoWayBlock, error) {
	headerStart := p.pos
	headerLine, err := p.readLine()
	if err != nil {
		return nil, err
	}
	cmd, aLo, aHi, bLo, bHi, ok := p.parseHeader(headerLine)
	if !ok {
		return nil, newParseError(headerStart, string(headerLine))
	}
	a := Range{Lo: aLo, Hi: aHi}
	b := Range{Lo: bLo, Hi: bHi}
	var command Command
	switch cmd {
	case 'a':
		command = Add
		a = Range{Lo: aLo + 1, Hi: aHi}
	case 'd':
		command = Delete
		b = Range{Lo: bLo + 1, Hi: bHi}
	default:
		command = Change
	}
	linesA, err := p.readContentLines(a.Len(), "< ")
	if err != nil {
		return nil, err
	}
	if command == Change {
		if err := p.expectSeparator(); err != nil {
			return nil, err
		}
	}
	linesB, err := p.readContentLines(b.Len(), "> ")
	if err != nil {
		return nil, err
	}
	return &TwoWayBlock{Cmd: command, A: a, B: b, LinesA: linesA, LinesB: linesB}, nil
}

func (p *parser) expectSeparator() error {
	start := p.pos
	line, err := p.readLine()
	if err != nil {
		return err
	}
	if string(line) != "---" {
		return newParseError(start, string(line))
	}
	return nil
}

// readContentLines reads n lines, each required to start with prefix
// ("< " or "> "), honoring the "\ No newline at end of file" continuation.
func (p *parser) readContentLines(n int, prefix string) ([]Line, error) {
	if n == 0 {
		return nil, nil
	}
	lines := make([]Line, 0, n)
	pb := []byte(prefix)
	for i := 0; i < n; i++ {
		start := p.pos
		raw, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if !bytes.HasPrefix(raw, pb) {
			return nil, newParseError(start, string(raw))
		}
		content := append([]byte(nil), raw[len(pb):]...)
		ln := Line{Data: content, Newline: true}
		if p.pos < len(p.buf) && p.buf[p.pos] == '\\' {
			if _, err := p.readLine(); err != nil {
				return nil, err
			}
			ln.Newline = false
		}
		lines = append(lines, ln)
	}
	return lines, nil
}
