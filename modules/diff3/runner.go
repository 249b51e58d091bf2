// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import (
	"context"
	"errors"
	"os/exec"

	"github.com/antgroup/diff3forge/modules/command"
)

// RunDiff invokes an external diff program (GNU-diff-compatible normal
// format) comparing other against ancestor and returns the parsed
// two-way chain. Exit status 0 (no differences) and 1 (differences
// found) are both successful outcomes; anything else is classified per
// the diff program's own exit-status convention. The invocation is
// "<program> [-a] [--strip-trailing-cr] --horizon-lines=100
// --no-directory -- FILE1 FILE2": "--horizon-lines=100" is always
// forwarded to keep hunks stable across unrelated nearby changes;
// textMode forwards -a (treat all files as text) and stripCR forwards
// --strip-trailing-cr.
func RunDiff(ctx context.Context, program string, ancestorPath, otherPath string, textMode, stripCR bool) (*TwoWayBlock, error) {
	var diffArgs []string
	if textMode {
		diffArgs = append(diffArgs, "-a")
	}
	if stripCR {
		diffArgs = append(diffArgs, "--strip-trailing-cr")
	}
	diffArgs = append(diffArgs, "--horizon-lines=100", "--no-directory", "--", otherPath, ancestorPath)
	cmd := command.New(ctx, command.NoDir, program, diffArgs...)
	out, err := cmd.Output()
	if err != nil {
		if classified := classifyRunError(err); classified != nil {
			return nil, classified
		}
	}
	return ParseNormalDiff(out)
}

// classifyRunError maps a diff subprocess's failure into the taxonomy a
// caller can act on: exit codes 0 and 1 are not failures at all (nil is
// returned for them), 127 means the program could not be found, 126 means it could not be
// executed, and any other non-zero status is an unexpected abnormal
// termination.
func classifyRunError(err error) error {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		switch ee.ExitCode() {
		case 0, 1:
			return nil
		case 127:
			return &Error{Kind: ErrNotFound, Message: "diff program not found", Err: err}
		case 126:
			return &Error{Kind: ErrExecFailed, Message: "diff program could not be executed", Err: err}
		default:
			return &Error{Kind: ErrSubprocessFailed, Message: command.FromError(err), Err: err}
		}
	}
	return &Error{Kind: ErrExecFailed, Message: "failed to start diff program", Err: err}
}
