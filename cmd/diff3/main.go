// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/antgroup/diff3forge/modules/diferenco"
	"github.com/antgroup/diff3forge/modules/diff3"
	"github.com/antgroup/diff3forge/pkg/tr"
	"github.com/antgroup/diff3forge/pkg/version"
	"github.com/spf13/cobra"
)

var W = tr.W

type options struct {
	showAll       bool
	showOverlap   bool
	overlapOnly   bool // -x
	excludeOnly   bool // -X: like -x, but drop the ALL group's own ancestor section
	easyOnly      bool // -3
	edScript      bool // -e
	interactive   bool // -i: -e plus a trailing "w\nq\n"
	merge         bool
	textMode      bool
	initialTab    bool
	stripCR       bool
	labels        []string
	diffProgram   string
	diffAlgorithm string
	quiet         bool
}

func (o *options) validate() error {
	exclusive := 0
	for _, v := range []bool{o.showAll, o.showOverlap, o.excludeOnly, o.overlapOnly, o.edScript, o.easyOnly} {
		if v {
			exclusive++
		}
	}
	if exclusive > 1 {
		return fmt.Errorf("%s", W("at most one of -A, -E, -X, -x, -e, -3 may be given"))
	}
	if o.interactive && o.merge {
		return fmt.Errorf("%s", W("-i and -m/--merge are mutually exclusive"))
	}
	if len(o.labels) > 0 && !(o.showAll || o.showOverlap || o.excludeOnly) {
		return fmt.Errorf("%s", W("-L/--label requires -A, -E or -X"))
	}
	if len(o.labels) > 3 {
		return fmt.Errorf("%s", W("at most three -L/--label options may be given"))
	}
	return nil
}

func (o *options) toMergeOptions() diff3.Options {
	opt := diff3.Options{
		EdScript:    o.edScript || o.interactive,
		Flagging:    o.showAll,
		Show2nd:     o.showAll || o.showOverlap,
		OverlapOnly: o.overlapOnly || o.excludeOnly,
		SimpleOnly:  o.easyOnly,
		FinalWrite:  o.interactive,
		InitialTab:  o.initialTab,
		Merge:       o.merge,
	}
	for i := 0; i < len(o.labels) && i < 3; i++ {
		opt.Labels[i] = o.labels[i]
	}
	return opt
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:     "diff3 [OPTION]... MYFILE OLDFILE YOURFILE",
		Short:   W("Compare three files line by line and report or merge their differences"),
		Version: version.GetVersion(),
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff3(cmd, args, o)
		},
		SilenceUsage: true,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("diff3 %s (%s), built %v\n", version.GetVersion(), version.GetBuildCommit(), version.GetBuildTime()))

	flags := cmd.Flags()
	flags.BoolVarP(&o.showAll, "show-all", "A", false, W("output all changes, flagging conflicts"))
	flags.BoolVarP(&o.showOverlap, "show-overlap", "E", false, W("like -A, but hide changes only in OLDFILE or only in one of MYFILE/YOURFILE"))
	flags.BoolVarP(&o.easyOnly, "easy-only", "3", false, W("like -E, but hide changes in MYFILE or YOURFILE alone"))
	flags.BoolVarP(&o.overlapOnly, "overlap-only", "x", false, W("like -E, but hide changes that are not overlaps"))
	flags.BoolVarP(&o.excludeOnly, "X", "X", false, W("like -x, but hide the common ancestor's content in a conflict"))
	flags.BoolVarP(&o.edScript, "ed", "e", false, W("output unmerged changes as an ed script"))
	flags.BoolVarP(&o.interactive, "interactive", "i", false, W("like -e, but append a trailing w and q command"))
	flags.BoolVarP(&o.merge, "merge", "m", false, W("output merged file instead of ed script, resolving conflicts with markers"))
	flags.BoolVarP(&o.textMode, "text", "a", false, W("treat all files as text"))
	flags.BoolVarP(&o.initialTab, "initial-tab", "T", false, W("make tabs line up by prepending a tab"))
	flags.BoolVar(&o.stripCR, "strip-trailing-cr", false, W("strip trailing carriage return on input"))
	flags.StringArrayVarP(&o.labels, "label", "L", nil, W("use LABEL instead of file name (can be repeated up to three times)"))
	flags.StringVar(&o.diffProgram, "diff-program", "", W("use PROGRAM to compare files"))
	flags.StringVar(&o.diffAlgorithm, "diff-algorithm", "", W("select the in-process diff algorithm instead of invoking an external diff program"))
	flags.BoolVarP(&o.quiet, "quiet", "q", false, W("has no effect here; the batch subcommand takes its own -q"))

	return cmd
}

func runDiff3(cmd *cobra.Command, args []string, o *options) error {
	if err := o.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "diff3: %s: %v\n", W("usage error"), err)
		return &usageError{err: err}
	}
	myFile, oldFile, yourFile := args[0], args[1], args[2]
	if err := validateStdinOperands(myFile, oldFile, yourFile); err != nil {
		fmt.Fprintf(os.Stderr, "diff3: %s: %v\n", W("usage error"), err)
		return &usageError{err: err}
	}

	// Exactly one operand may be "-" (standard input). Since the common
	// (OLDFILE) side is compared against both other operands, a literal
	// "-" can't be handed to the diff program/readFile twice — stdin has
	// no replay. Materialize it into a private temp file up front instead
	// of trying to pick which of the two comparisons gets the live stream:
	// every downstream consumer then just sees an ordinary, re-readable
	// path, for however many operands are "-" (at most one, per validate).
	myFile, cleanupMy, err := materializeStdin(myFile)
	if err != nil {
		return reportErr(&usageError{err: err})
	}
	defer cleanupMy()
	oldFile, cleanupOld, err := materializeStdin(oldFile)
	if err != nil {
		return reportErr(&usageError{err: err})
	}
	defer cleanupOld()
	yourFile, cleanupYour, err := materializeStdin(yourFile)
	if err != nil {
		return reportErr(&usageError{err: err})
	}
	defer cleanupYour()

	ctx := context.Background()
	chain0, err := diffSides(ctx, o, oldFile, myFile)
	if err != nil {
		return reportErr(err)
	}
	chain1, err := diffSides(ctx, o, oldFile, yourFile)
	if err != nil {
		return reportErr(err)
	}
	three, err := diff3.Merge3(chain0, chain1)
	if err != nil {
		return reportErr(err)
	}

	opt := o.toMergeOptions()
	if len(opt.Labels[0]) == 0 {
		opt.Labels[0] = myFile
	}
	if len(opt.Labels[1]) == 0 {
		opt.Labels[1] = yourFile
	}
	if len(opt.Labels[2]) == 0 {
		opt.Labels[2] = oldFile
	}

	switch {
	case o.merge:
		ancestorText, err := readFile(oldFile)
		if err != nil {
			return reportErr(err)
		}
		conflicts, err := diff3.WriteMerge(os.Stdout, three, diff3.SplitLines(ancestorText), true, opt.Show2nd, opt.Labels[2], opt.Labels[0], opt.Labels[1])
		if err != nil {
			return reportErr(err)
		}
		if conflicts {
			return &conflictsPresent{}
		}
		return nil
	case o.edScript || o.interactive:
		if err := diff3.WriteEdScript(os.Stdout, three, opt); err != nil {
			return reportErr(err)
		}
		return conflictsIn(three, opt.Show2nd)
	default:
		if err := diff3.WriteReport(os.Stdout, three, opt); err != nil {
			return reportErr(err)
		}
		return conflictsIn(three, opt.Show2nd)
	}
}

// validateStdinOperands enforces that at most one of the three file
// operands is "-" (standard input); two or more would each need a turn
// reading the same, non-replayable stream.
func validateStdinOperands(myFile, oldFile, yourFile string) error {
	n := 0
	for _, p := range []string{myFile, oldFile, yourFile} {
		if p == "-" {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("%s", W("at most one of MYFILE, OLDFILE, YOURFILE may be '-'"))
	}
	return nil
}

// materializeStdin passes path through unchanged unless it is "-", in
// which case it reads all of standard input into a private temp file and
// returns that file's path instead, along with a cleanup func that removes
// it. The returned path can be read as many times as needed (RunDiff and
// readFile each open it independently), unlike the original stdin stream.
func materializeStdin(path string) (string, func(), error) {
	noop := func() {}
	if path != "-" {
		return path, noop, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", noop, fmt.Errorf("%s: %w", W("failed to read standard input"), err)
	}
	f, err := os.CreateTemp("", "diff3-stdin-*")
	if err != nil {
		return "", noop, fmt.Errorf("%s: %w", W("failed to buffer standard input"), err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", noop, fmt.Errorf("%s: %w", W("failed to buffer standard input"), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", noop, fmt.Errorf("%s: %w", W("failed to buffer standard input"), err)
	}
	name := f.Name()
	return name, func() { os.Remove(name) }, nil
}

func diffSides(ctx context.Context, o *options, ancestorPath, otherPath string) (*diff3.TwoWayBlock, error) {
	if o.diffProgram != "" {
		return diff3.RunDiff(ctx, o.diffProgram, ancestorPath, otherPath, o.textMode, o.stripCR)
	}
	algo, err := diferenco.AlgorithmFromName(o.diffAlgorithm)
	if err != nil {
		return nil, err
	}
	ancestorText, err := readFile(ancestorPath)
	if err != nil {
		return nil, err
	}
	otherText, err := readFile(otherPath)
	if err != nil {
		return nil, err
	}
	return diff3.DiffLines(ctx, algo, ancestorText, otherText)
}

func readFile(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// conflictsIn reports whether chain has at least one block that counts as
// a conflict: an ALL block always does, and an ONLY_2 block does too once
// show2nd is set (mirroring WriteMerge's own conflict accounting).
func conflictsIn(chain *diff3.ThreeWayBlock, show2nd bool) error {
	for b := chain; b != nil; b = b.Next {
		if b.Kind == diff3.ALL || (show2nd && b.Kind == diff3.ONLY_2) {
			return &conflictsPresent{}
		}
	}
	return nil
}

type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }

type conflictsPresent struct{}

func (e *conflictsPresent) Error() string { return "conflicts present" }

func reportErr(err error) error {
	fmt.Fprintf(os.Stderr, "diff3: %v\n", err)
	return err
}

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch err.(type) {
	case *conflictsPresent:
		return 1
	case *usageError:
		return 2
	}
	if de, ok := err.(*diff3.Error); ok {
		return de.ExitCode()
	}
	return 2
}

func main() {
	cmd := newRootCmd()
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newMergeFileCmd())
	cmd.AddCommand(newVersionCmd())
	err := cmd.Execute()
	os.Exit(exitCodeFor(err))
}
