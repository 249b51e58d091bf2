// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"

	"github.com/antgroup/diff3forge/modules/trace"
)

// Globals carries the flags shared by every subcommand.
type Globals struct {
	Verbose bool
	CWD     string
}

func (g *Globals) DbgPrint(format string, args ...any) {
	if !g.Verbose {
		return
	}
	trace.DbgPrint(format, args...)
}

type Debuger = trace.Debuger

var (
	ErrArgRequired = errors.New("arg required")
)

// ErrExitCode carries a process exit status alongside a user-facing message,
// mirroring the distinct exit codes (1 = conflicts present, 2 = usage/IO error).
type ErrExitCode struct {
	ExitCode int
	Message  string
}

func (e *ErrExitCode) Error() string {
	return e.Message
}

func IsExitCode(err error, code int) bool {
	var e *ErrExitCode
	if errors.As(err, &e) {
		return e.ExitCode == code
	}
	return false
}
