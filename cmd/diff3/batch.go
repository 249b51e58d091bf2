// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/antgroup/diff3forge/modules/diferenco"
	"github.com/antgroup/diff3forge/modules/diff3"
	"github.com/antgroup/diff3forge/modules/wildmatch"
	"github.com/antgroup/diff3forge/pkg/progress"
	"github.com/spf13/cobra"
)

type batchOptions struct {
	diffAlgorithm string
	exclude       []string
	quiet         bool
	outDir        string
}

func newBatchCmd() *cobra.Command {
	bo := &batchOptions{}
	cmd := &cobra.Command{
		Use:   "batch MYDIR OLDDIR YOURDIR",
		Short: W("Three-way merge every file that exists in all three directory trees"),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(args, bo)
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVar(&bo.diffAlgorithm, "diff-algorithm", "", W("select the in-process diff algorithm"))
	flags.StringArrayVar(&bo.exclude, "exclude", nil, W("glob pattern of relative paths to skip (can be repeated)"))
	flags.BoolVarP(&bo.quiet, "quiet", "q", false, W("suppress the progress bar"))
	flags.StringVar(&bo.outDir, "output-dir", "", W("write merged files under this directory instead of MYDIR in place"))
	return cmd
}

func runBatch(args []string, bo *batchOptions) error {
	myDir, oldDir, yourDir := args[0], args[1], args[2]
	algo, err := diferenco.AlgorithmFromName(bo.diffAlgorithm)
	if err != nil {
		return reportErr(err)
	}
	excludes := make([]*wildmatch.Wildmatch, 0, len(bo.exclude))
	for _, p := range bo.exclude {
		excludes = append(excludes, wildmatch.NewWildmatch(p))
	}

	rels, err := commonRelativeFiles(myDir, oldDir, yourDir, excludes)
	if err != nil {
		return reportErr(err)
	}

	bar := progress.NewBatch(len(rels), bo.quiet)
	anyConflict := false
	for _, rel := range rels {
		conflict, err := mergeOne(algo, myDir, oldDir, yourDir, bo.outDir, rel)
		if err != nil {
			bar.Abort()
			return reportErr(fmt.Errorf("%s: %w", rel, err))
		}
		if conflict {
			anyConflict = true
		}
		bar.Increment(conflict)
	}
	bar.Wait()
	if anyConflict {
		return &conflictsPresent{}
	}
	return nil
}

func mergeOne(algo diferenco.Algorithm, myDir, oldDir, yourDir, outDir, rel string) (bool, error) {
	textA, err := readFile(filepath.Join(myDir, rel))
	if err != nil {
		return false, err
	}
	textO, err := readFile(filepath.Join(oldDir, rel))
	if err != nil {
		return false, err
	}
	textB, err := readFile(filepath.Join(yourDir, rel))
	if err != nil {
		return false, err
	}
	ctx := context.Background()
	chain0, err := diff3.DiffLines(ctx, algo, textO, textA)
	if err != nil {
		return false, err
	}
	chain1, err := diff3.DiffLines(ctx, algo, textO, textB)
	if err != nil {
		return false, err
	}
	three, err := diff3.Merge3(chain0, chain1)
	if err != nil {
		return false, err
	}
	dest := filepath.Join(myDir, rel)
	if outDir != "" {
		dest = filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return false, err
		}
	}
	fd, err := os.Create(dest)
	if err != nil {
		return false, err
	}
	defer fd.Close()
	conflicts, err := diff3.WriteMerge(fd, three, diff3.SplitLines(textO), true, false, "base", "mine", "yours")
	if err != nil {
		return false, err
	}
	return conflicts, nil
}

// commonRelativeFiles walks myDir and keeps the relative paths that also
// exist in oldDir and yourDir and match none of the exclude patterns.
func commonRelativeFiles(myDir, oldDir, yourDir string, excludes []*wildmatch.Wildmatch) ([]string, error) {
	var rels []string
	err := filepath.Walk(myDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(myDir, path)
		if err != nil {
			return err
		}
		for _, ex := range excludes {
			if ex.Match(rel) {
				return nil
			}
		}
		if !fileExists(filepath.Join(oldDir, rel)) || !fileExists(filepath.Join(yourDir, rel)) {
			return nil
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(rels)
	return rels, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
