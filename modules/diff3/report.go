// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import (
	"bufio"
	"io"
)

// WriteReport renders a three-way chain in diff3's default "report" format:
// each difference group is introduced by a "====" separator (suffixed per
// kindSeparatorSuffix), followed by one "N:range<cmd>" header and its
// content lines for each of the three files, numbered 1 (F0), 2 (FC), 3
// (F1) in classic diff3 order. Sections are written in file order 1,2,3
// for ALL/ONLY_1 blocks, but odd-file-first for ONLY_2/ONLY_3 blocks (see
// reportSectionOrder): the file that actually differs from the other two
// leads the group.
func WriteReport(w io.Writer, chain *ThreeWayBlock, opt Options) error {
	bw := bufio.NewWriter(w)
	prefix := "  "
	if opt.InitialTab {
		prefix = "\t"
	}
	for b := chain; b != nil; b = b.Next {
		if _, err := bw.WriteString(separatorFor(b.Kind) + "\n"); err != nil {
			return newIOError(err)
		}
		byNumber := map[int]struct {
			rng   Range
			lines []Line
		}{
			1: {b.F0, b.LinesF0},
			2: {b.FC, b.LinesFC},
			3: {b.F1, b.LinesF1},
		}
		for _, n := range reportSectionOrder[b.Kind] {
			s := byNumber[n]
			cmd := sectionCommand(s.rng, b.FC)
			if err := writeRangeHeader(bw, n, s.rng, cmd); err != nil {
				return err
			}
			if err := writeContentLines(bw, s.lines, prefix); err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return newIOError(err)
	}
	return nil
}

// sectionCommand derives the display command letter for one file's range
// relative to the common-ancestor range of the same group: 'a' when this
// file has content but the ancestor didn't (pure insertion), 'd' when this
// file has none but the ancestor did (pure deletion), 'c' otherwise.
func sectionCommand(r, fc Range) byte {
	switch {
	case r.Empty() && !fc.Empty():
		return 'd'
	case !r.Empty() && fc.Empty():
		return 'a'
	default:
		return 'c'
	}
}

func writeRangeHeader(bw *bufio.Writer, n int, r Range, cmd byte) error {
	if _, err := bw.WriteString(itoa(n) + ":"); err != nil {
		return newIOError(err)
	}
	if r.Empty() {
		if _, err := bw.WriteString(itoa(r.Lo - 1)); err != nil {
			return newIOError(err)
		}
	} else if r.Lo == r.Hi {
		if _, err := bw.WriteString(itoa(r.Lo)); err != nil {
			return newIOError(err)
		}
	} else {
		if _, err := bw.WriteString(itoa(r.Lo) + "," + itoa(r.Hi)); err != nil {
			return newIOError(err)
		}
	}
	if err := bw.WriteByte(cmd); err != nil {
		return newIOError(err)
	}
	return bw.WriteByte('\n')
}

func writeContentLines(bw *bufio.Writer, lines []Line, prefix string) error {
	for _, ln := range lines {
		if _, err := bw.WriteString(prefix); err != nil {
			return newIOError(err)
		}
		if _, err := bw.Write(ln.Data); err != nil {
			return newIOError(err)
		}
		if ln.Newline {
			if err := bw.WriteByte('\n'); err != nil {
				return newIOError(err)
			}
		} else {
			if _, err := bw.WriteString("\n\\ No newline at end of file\n"); err != nil {
				return newIOError(err)
			}
		}
	}
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
