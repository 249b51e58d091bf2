// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import (
	"bufio"
	"io"
)

// WriteMerge renders a three-way chain as a merged file: untouched spans
// of the common ancestor are copied verbatim, ONLY_1/ONLY_3 groups are
// resolved automatically to whichever side changed, and ALL groups
// (genuine conflicts) are wrapped in conflict markers. ONLY_2 groups are
// likewise resolved automatically unless show2nd is set, in which case
// they are wrapped in conflict markers too (mirroring ed-script's
// Show2nd/Flagging-gated ONLY_2 bracket treatment), per the invariant
// that conflicts are present iff an ALL block was seen, or an ONLY_2
// block was seen under show2nd. ancestorLines is the full common-ancestor
// file, split into lines; it supplies the untouched gaps between and
// around chain blocks since the chain itself holds only difference
// regions. Returns true if any such conflict block was seen.
func WriteMerge(w io.Writer, chain *ThreeWayBlock, ancestorLines []Line, diff3Style bool, show2nd bool, labelO, labelA, labelB string) (bool, error) {
	bw := bufio.NewWriter(w)
	conflicts := false
	linesRead := 0 // count of ancestor lines already copied (1-based high-water mark)

	copyAncestorThrough := func(through int) error {
		for linesRead < through {
			if err := writeLine(bw, ancestorLines[linesRead]); err != nil {
				return err
			}
			linesRead++
		}
		return nil
	}

	for b := chain; b != nil; b = b.Next {
		if err := copyAncestorThrough(b.FC.Lo - 1); err != nil {
			return conflicts, err
		}

		switch b.Kind {
		case ONLY_1:
			if err := writeLines(bw, b.LinesF0); err != nil {
				return conflicts, err
			}
		case ONLY_2:
			if show2nd {
				conflicts = true
				if err := writeOnly2Conflict(bw, b, diff3Style, labelO, labelB); err != nil {
					return conflicts, err
				}
			} else if err := writeLines(bw, b.LinesF1); err != nil {
				return conflicts, err
			}
		case ONLY_3:
			if err := writeLines(bw, b.LinesF0); err != nil {
				return conflicts, err
			}
		case ALL:
			conflicts = true
			if err := writeConflict(bw, b, diff3Style, labelO, labelA, labelB); err != nil {
				return conflicts, err
			}
		}

		if b.FC.Hi > linesRead {
			linesRead = b.FC.Hi
		}
	}

	if err := copyAncestorThrough(len(ancestorLines)); err != nil {
		return conflicts, err
	}

	if err := bw.Flush(); err != nil {
		return conflicts, newIOError(err)
	}
	return conflicts, nil
}

func writeConflict(bw *bufio.Writer, b *ThreeWayBlock, diff3Style bool, labelO, labelA, labelB string) error {
	if _, err := bw.WriteString("<<<<<<< " + labelA + "\n"); err != nil {
		return newIOError(err)
	}
	if err := writeLines(bw, b.LinesF0); err != nil {
		return err
	}
	if diff3Style {
		if _, err := bw.WriteString("||||||| " + labelO + "\n"); err != nil {
			return newIOError(err)
		}
		if err := writeLines(bw, b.LinesFC); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("=======\n"); err != nil {
		return newIOError(err)
	}
	if err := writeLines(bw, b.LinesF1); err != nil {
		return err
	}
	if _, err := bw.WriteString(">>>>>>> " + labelB + "\n"); err != nil {
		return newIOError(err)
	}
	return nil
}

// writeOnly2Conflict brackets an ONLY_2 group the same way writeConflict
// brackets an ALL group, except there is no F0-side content to show in
// place of the "mine" section: both the opening and closing markers name
// labelB (the side that actually changed).
func writeOnly2Conflict(bw *bufio.Writer, b *ThreeWayBlock, diff3Style bool, labelO, labelB string) error {
	if _, err := bw.WriteString("<<<<<<< " + labelB + "\n"); err != nil {
		return newIOError(err)
	}
	if err := writeLines(bw, b.LinesF1); err != nil {
		return err
	}
	if diff3Style {
		if _, err := bw.WriteString("||||||| " + labelO + "\n"); err != nil {
			return newIOError(err)
		}
		if err := writeLines(bw, b.LinesFC); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("=======\n"); err != nil {
		return newIOError(err)
	}
	if _, err := bw.WriteString(">>>>>>> " + labelB + "\n"); err != nil {
		return newIOError(err)
	}
	return nil
}

func writeLines(bw *bufio.Writer, lines []Line) error {
	for _, ln := range lines {
		if err := writeLine(bw, ln); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(bw *bufio.Writer, ln Line) error {
	if _, err := bw.Write(ln.Data); err != nil {
		return newIOError(err)
	}
	if ln.Newline {
		if err := bw.WriteByte('\n'); err != nil {
			return newIOError(err)
		}
	}
	return nil
}
