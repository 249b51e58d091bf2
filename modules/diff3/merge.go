// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import "bytes"

// Merge3 combines the two-way diffs "other-vs-ancestor" for file 0 (F0 vs
// FC) and file 1 (F1 vs FC) into a single three-way chain, fabricating F0/F1
// content for groups where one side made no change so every block carries
// complete content for all three files. It implements the "using group"
// high-water-mark algorithm: whichever thread's current block claims the
// lower range of the common file goes first; while the other thread's
// pending block overlaps the range just claimed (its B.Lo falls within or
// immediately after what has already been admitted), it is folded into the
// same group instead of starting a new one.
func Merge3(chain0, chain1 *TwoWayBlock) (*ThreeWayBlock, error) {
	t0 := chainToSlice(chain0)
	t1 := chainToSlice(chain1)
	var out []*ThreeWayBlock
	i0, i1 := 0, 0
	prevHighFC, prevHigh0, prevHigh1 := 0, 0, 0
	for i0 < len(t0) || i1 < len(t1) {
		var g0, g1 []*TwoWayBlock
		var hwMark int
		var hwThread int
		switch {
		case i0 >= len(t0):
			hwThread, hwMark = 1, t1[i1].B.Hi
			g1 = append(g1, t1[i1])
			i1++
		case i1 >= len(t1):
			hwThread, hwMark = 0, t0[i0].B.Hi
			g0 = append(g0, t0[i0])
			i0++
		case t0[i0].B.Lo <= t1[i1].B.Lo:
			hwThread, hwMark = 0, t0[i0].B.Hi
			g0 = append(g0, t0[i0])
			i0++
		default:
			hwThread, hwMark = 1, t1[i1].B.Hi
			g1 = append(g1, t1[i1])
			i1++
		}
		for {
			other := 1 - hwThread
			var oi *int
			var ot []*TwoWayBlock
			if other == 0 {
				oi, ot = &i0, t0
			} else {
				oi, ot = &i1, t1
			}
			if *oi >= len(ot) {
				break
			}
			cand := ot[*oi]
			if cand.B.Lo > hwMark+1 {
				break
			}
			if other == 0 {
				g0 = append(g0, cand)
			} else {
				g1 = append(g1, cand)
			}
			*oi++
			if cand.B.Hi > hwMark {
				hwMark = cand.B.Hi
				hwThread = other
			}
		}

		lowc, highc := groupRangeFC(g0, g1)
		linesFC, err := fabricateFC(g0, g1, lowc, highc)
		if err != nil {
			return nil, err
		}

		f0 := Range{Lo: prevHigh0 + (lowc - prevHighFC), Hi: 0}
		f1 := Range{Lo: prevHigh1 + (lowc - prevHighFC), Hi: 0}
		linesF0, hi0 := fabricateSide(g0, lowc, highc, f0.Lo, linesFC)
		linesF1, hi1 := fabricateSide(g1, lowc, highc, f1.Lo, linesFC)
		f0.Hi, f1.Hi = hi0, hi1

		kind := classify(g0, g1, linesF0, linesF1)
		out = append(out, &ThreeWayBlock{
			Kind: kind, F0: f0, F1: f1, FC: Range{Lo: lowc, Hi: highc},
			LinesF0: linesF0, LinesF1: linesF1, LinesFC: linesFC,
		})

		prevHighFC, prevHigh0, prevHigh1 = highc, hi0, hi1
	}
	return sliceToChain(out), nil
}

// groupRangeFC computes the common-file range a fabricated group spans:
// the lowest B.Lo across its member blocks through the highest B.Hi, an
// empty range counting as ending at its B.Lo-1.
func groupRangeFC(g0, g1 []*TwoWayBlock) (lo, hi int) {
	lo, hi = -1, -1
	consider := func(blocks []*TwoWayBlock) {
		for _, b := range blocks {
			l, h := b.B.Lo, b.B.Hi
			if b.B.Empty() {
				l, h = b.B.Lo, b.B.Lo-1
			}
			if lo == -1 || l < lo {
				lo = l
			}
			if h > hi {
				hi = h
			}
		}
	}
	consider(g0)
	consider(g1)
	if lo == -1 {
		lo, hi = 1, 0
	}
	return lo, hi
}

// fabricateFC reconstructs the common-file content of the group from
// whichever blocks actually carry ancestor content (Change and Delete
// blocks; Add blocks have an empty B range and contribute nothing). When
// both threads claim overlapping FC content it must agree byte-for-byte,
// else the inputs are mutually inconsistent two-way diffs.
func fabricateFC(g0, g1 []*TwoWayBlock, lo, hi int) ([]Line, error) {
	n := hi - lo + 1
	if n <= 0 {
		return nil, nil
	}
	lines := make([]Line, n)
	filled := make([]bool, n)
	apply := func(blocks []*TwoWayBlock) error {
		for _, b := range blocks {
			if b.B.Empty() {
				continue
			}
			for k, ln := range b.LinesB {
				idx := b.B.Lo + k - lo
				if idx < 0 || idx >= n {
					return newInternalInconsistency("fabricated FC index out of range")
				}
				if filled[idx] && !linesEqual(lines[idx], ln) {
					return newInternalInconsistency("conflicting ancestor content at line %d", lo+idx)
				}
				lines[idx] = ln
				filled[idx] = true
			}
		}
		return nil
	}
	if err := apply(g0); err != nil {
		return nil, err
	}
	if err := apply(g1); err != nil {
		return nil, err
	}
	return lines, nil
}

func linesEqual(a, b Line) bool {
	return a.Newline == b.Newline && bytes.Equal(a.Data, b.Data)
}

// fabricateSide builds the fabricated-file content and line range for one
// thread over the group. If the thread contributed no blocks, the content
// is simply the common content (the thread made no change over this span).
// If it did contribute, gaps between its blocks (and at the ends of the
// group) are filled by copying the corresponding common content.
func fabricateSide(blocks []*TwoWayBlock, loc, hic int, startLine int, fc []Line) ([]Line, int) {
	if len(blocks) == 0 {
		out := append([]Line(nil), fc...)
		return out, startLine + len(out) - 1
	}
	var out []Line
	cpos := loc
	for _, b := range blocks {
		bLo, bHi := b.B.Lo, b.B.Hi
		if b.B.Empty() {
			bLo, bHi = b.B.Lo, b.B.Lo-1
		}
		for cpos < bLo {
			out = append(out, fc[cpos-loc])
			cpos++
		}
		out = append(out, b.LinesA...)
		if bHi >= bLo {
			cpos = bHi + 1
		}
	}
	for cpos <= hic {
		out = append(out, fc[cpos-loc])
		cpos++
	}
	hi := startLine + len(out) - 1
	if len(out) == 0 {
		hi = startLine - 1
	}
	return out, hi
}

func classify(g0, g1 []*TwoWayBlock, f0, f1 []Line) Kind {
	switch {
	case len(g0) == 0:
		return ONLY_2
	case len(g1) == 0:
		return ONLY_1
	}
	if linesSliceEqual(f0, f1) {
		return ONLY_3
	}
	return ALL
}

func linesSliceEqual(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !linesEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
