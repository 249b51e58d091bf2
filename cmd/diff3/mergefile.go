// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/antgroup/diff3forge/pkg/command"
	"github.com/spf13/cobra"
)

// newMergeFileCmd exposes command.MergeFile, the merge-file subcommand
// shared with the rest of the toolchain, so -L/-stdout/-diff3/-zdiff3
// behave identically here and there.
func newMergeFileCmd() *cobra.Command {
	g := &command.Globals{}
	mf := &command.MergeFile{}
	cmd := &cobra.Command{
		Use:   "merge-file [OPTION]... FILE1 ORIG-FILE FILE2",
		Short: mf.Summary(),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf.F1, mf.O, mf.F2 = args[0], args[1], args[2]
			if err := mf.Run(g); err != nil {
				if _, ok := err.(*command.ErrExitCode); ok {
					return &conflictsPresent{} // exit code 1, same as top-level merge
				}
				return reportErr(err)
			}
			return nil
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.BoolVar(&mf.Stdout, "stdout", false, W("send results to standard output instead of overwriting FILE1"))
	flags.BoolVarP(&mf.Diff3, "diff3", "A", false, W("include the common ancestor's text in conflict markers"))
	flags.BoolVar(&mf.ZDiff3, "zdiff3", false, W("use zealous diff3 conflict markers"))
	flags.StringVar(&mf.DiffAlgorithm, "diff-algorithm", "", W("select the in-process diff algorithm"))
	flags.StringArrayVarP(&mf.L, "label", "L", nil, W("use LABEL instead of file name (can be repeated up to three times)"))
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, W("print debug diagnostics to stderr"))
	return cmd
}

func newVersionCmd() *cobra.Command {
	v := &command.Version{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: W("print version information"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Run(&command.Globals{})
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.BoolVar(&v.BuildOptions, "build-options", false, W("also print build options"))
	flags.BoolVarP(&v.JSON, "json", "j", false, W("print version information as JSON"))
	return cmd
}
