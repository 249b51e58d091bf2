package diferenco

import (
	"context"

	"github.com/antgroup/diff3forge/modules/diferenco/lcs"
)

// MinimalDiff derives the changes from the longest common subsequence
// computed by lcs.DiffSlices.
func MinimalDiff[E comparable](ctx context.Context, L1 []E, L2 []E) ([]Change, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	diffs := lcs.DiffSlices(L1, L2)
	changes := make([]Change, 0, len(diffs))
	for _, d := range diffs {
		changes = append(changes, Change{P1: d.Start, P2: d.ReplStart, Del: d.End - d.Start, Ins: d.ReplEnd - d.ReplStart})
	}
	return changes, nil
}
