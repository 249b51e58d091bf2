// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/antgroup/diff3forge/modules/diferenco"
	"github.com/antgroup/diff3forge/modules/diff3"
)

// MergeFile implements the merge-file subcommand: a three-way merge of two
// revisions of a file against their common ancestor.
type MergeFile struct {
	Stdout        bool
	Diff3         bool
	ZDiff3        bool
	DiffAlgorithm string
	L             []string
	F1            string
	O             string
	F2            string
}

const (
	mergeFileSummaryFormat = `%sdiff3 merge-file [<options>] [-L <name1> [-L <orig> [-L <name2>]]] <file1> <orig-file> <file2>`
)

func (c *MergeFile) Summary() string {
	return fmt.Sprintf(mergeFileSummaryFormat, W("Usage: "))
}

func readText(p string, textConv bool) (string, error) {
	fd, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer fd.Close()
	si, err := fd.Stat()
	if err != nil {
		return "", err
	}
	content, _, err := diferenco.ReadUnifiedText(fd, si.Size(), textConv)
	return content, err
}

func (c *MergeFile) labels() (labelA, labelO, labelB string) {
	labelA, labelO, labelB = c.F1, c.O, c.F2
	if len(c.L) > 0 {
		labelA = c.L[0]
	}
	if len(c.L) > 1 {
		labelO = c.L[1]
	}
	if len(c.L) > 2 {
		labelB = c.L[2]
	}
	return
}

func (c *MergeFile) Run(g *Globals) error {
	algo, err := diferenco.AlgorithmFromName(c.DiffAlgorithm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: parse diff-algorithm error: %v\n", err)
		return err
	}
	labelA, labelO, labelB := c.labels()
	g.DbgPrint("merge-file: diff3=%v zdiff3=%v algorithm=%s labels=(%s,%s,%s)", c.Diff3, c.ZDiff3, c.DiffAlgorithm, labelA, labelO, labelB)
	textO, err := readText(c.O, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: open <orig-file> error: %v\n", err)
		return err
	}
	textA, err := readText(c.F1, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: open <file1> error: %v\n", err)
		return err
	}
	textB, err := readText(c.F2, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: open <file2> error: %v\n", err)
		return err
	}
	ctx := context.Background()
	chain0, err := diff3.DiffLines(ctx, algo, textO, textA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: diff error: %v\n", err)
		return err
	}
	chain1, err := diff3.DiffLines(ctx, algo, textO, textB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: diff error: %v\n", err)
		return err
	}
	three, err := diff3.Merge3(chain0, chain1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: merge error: %v\n", err)
		return err
	}
	var buf bytes.Buffer
	// -A/--diff3 and --zdiff3 both ask for the ancestor's text in the
	// conflict marker block; only the separator convention differs
	// between the two upstream tools, which this engine does not model.
	conflict, err := diff3.WriteMerge(&buf, three, diff3.SplitLines(textO), c.Diff3 || c.ZDiff3, false, labelO, labelA, labelB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "merge-file: merge error: %v\n", err)
		return err
	}
	if c.Stdout {
		_, _ = io.Copy(os.Stdout, &buf)
	} else {
		if err := os.WriteFile(c.F1, buf.Bytes(), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "merge-file: write %s error: %v\n", c.F1, err)
			return err
		}
	}
	if conflict {
		return &ErrExitCode{ExitCode: 1, Message: "conflict"}
	}
	return nil
}
