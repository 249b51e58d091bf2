// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

// Options configures how a three-way chain is rendered by the emitters.
// It is immutable once constructed and is passed read-only to WriteReport
// and WriteEdScript; WriteMerge takes its settings as explicit arguments.
type Options struct {
	// EdScript selects the editor-script emitter instead of the default
	// report emitter.
	EdScript bool
	// Flagging annotates each conflict group in the ed-script output with
	// the name of the overridden file (-A/--show-all).
	Flagging bool
	// Show2nd includes file 2's (the ancestor's) content in a conflict
	// group even when unchanged (-A/--show-all, -E/--show-overlap).
	Show2nd bool
	// OverlapOnly restricts ed-script output to genuine ALL conflicts,
	// suppressing ONLY_1/ONLY_2/ONLY_3 groups (-x/--overlap-only, -X).
	OverlapOnly bool
	// SimpleOnly restricts ed-script output to non-overlapping ONLY_1/
	// ONLY_2/ONLY_3 groups, suppressing ALL conflicts (-3/--easy-only).
	SimpleOnly bool
	// FinalWrite appends "w\nq\n" to ed-script output so it can be piped
	// straight into ed (-e without -i omits this; -i includes it).
	FinalWrite bool
	// InitialTab prefixes each content line with a tab instead of two
	// spaces in report output (-T/--initial-tab).
	InitialTab bool
	// Merge selects the merge-with-conflict-markers emitter
	// (-m/--merge); mutually exclusive with EdScript.
	Merge bool
	// Labels holds the three display names used in conflict markers and
	// flagging comments, in F0/F1/FC order. Empty entries fall back to
	// the corresponding file path.
	Labels [3]string
}

// resolveLabel returns the display label for file index i (0, 1 or 2 for
// FC), preferring an explicit -L label over the literal path.
func (o Options) resolveLabel(i int, path string) string {
	if o.Labels[i] != "" {
		return o.Labels[i]
	}
	return path
}
