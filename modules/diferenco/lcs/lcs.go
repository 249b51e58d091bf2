// Package lcs computes a minimal edit script between two comparable slices
// using a longest-common-subsequence alignment (Hunt-Szymanski).
package lcs

// Diff is a single edit hunk: the elements at [Start,End) in the first slice
// are replaced by the elements at [ReplStart,ReplEnd) in the second slice.
// Either range may be empty, giving a pure insertion or deletion.
type Diff struct {
	Start     int
	End       int
	ReplStart int
	ReplEnd   int
}

type candidate[E comparable] struct {
	i, j  int
	chain *candidate[E]
}

// lcsChain runs the Hunt-Szymanski algorithm: for every element of a, the
// positions it occurs at in b are threaded onto the candidate list kept in
// strictly increasing b-index order, so the final candidate's chain yields
// the LCS in reverse.
func lcsChain[E comparable](a, b []E) *candidate[E] {
	positions := make(map[E][]int, len(b))
	for j, item := range b {
		positions[item] = append(positions[item], j)
	}

	null := &candidate[E]{i: -1, j: -1}
	candidates := []*candidate[E]{null}

	for i, item := range a {
		bIndices := positions[item]
		r := 0
		c := candidates[0]
		for _, j := range bIndices {
			var s int
			for s = r; s < len(candidates); s++ {
				if candidates[s].j < j && (s == len(candidates)-1 || candidates[s+1].j > j) {
					break
				}
			}
			if s >= len(candidates) {
				continue
			}
			next := &candidate[E]{i: i, j: j, chain: candidates[s]}
			if r == len(candidates) {
				candidates = append(candidates, c)
			} else {
				candidates[r] = c
			}
			r = s + 1
			c = next
			if r == len(candidates) {
				break // no point examining further occurrences of item
			}
		}
		if r < len(candidates) {
			candidates[r] = c
		} else {
			candidates = append(candidates, c)
		}
	}
	return candidates[len(candidates)-1]
}

// matchPairs walks the candidate chain and returns the matched (i, j) index
// pairs in ascending order.
func matchPairs[E comparable](a, b []E) [][2]int {
	var pairs [][2]int
	for c := lcsChain(a, b); c != nil && c.i >= 0; c = c.chain {
		pairs = append(pairs, [2]int{c.i, c.j})
	}
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}

// DiffSlices returns the minimal edit script turning a into b.
func DiffSlices[E comparable](a, b []E) []Diff {
	var diffs []Diff
	ai, bi := 0, 0
	for _, p := range matchPairs(a, b) {
		mi, mj := p[0], p[1]
		if mi > ai || mj > bi {
			diffs = append(diffs, Diff{Start: ai, End: mi, ReplStart: bi, ReplEnd: mj})
		}
		ai, bi = mi+1, mj+1
	}
	if ai < len(a) || bi < len(b) {
		diffs = append(diffs, Diff{Start: ai, End: len(a), ReplStart: bi, ReplEnd: len(b)})
	}
	return diffs
}
