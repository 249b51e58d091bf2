// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diff3 implements a GNU diff3-compatible three-way textual
// comparison and merge engine: it parses normal-format two-way diffs (or
// computes them in-process), fabricates a three-way chain from the pair,
// and renders that chain as a report, an ed script, or a merged file with
// conflict markers.
package diff3

import (
	"bytes"
	"context"
	"io"

	"github.com/antgroup/diff3forge/modules/diferenco"
)

// MergeResult is the outcome of a three-way Merge: the merged content and
// whether any genuine conflict (an ALL block) was found within it.
type MergeResult struct {
	Result    io.Reader
	Conflicts bool
}

// Merge performs a three-way merge of a and b against the common ancestor
// o, rendering the result with conflict markers. diff3Style controls
// whether conflict markers include the ancestor's own content between
// "|||||||" and "======="; labelA and labelB name the two non-ancestor
// sides in those markers.
func Merge(a, o, b io.Reader, diff3Style bool, labelA, labelB string) (*MergeResult, error) {
	textA, err := readAllString(a)
	if err != nil {
		return nil, newIOError(err)
	}
	textO, err := readAllString(o)
	if err != nil {
		return nil, newIOError(err)
	}
	textB, err := readAllString(b)
	if err != nil {
		return nil, newIOError(err)
	}
	content, conflicts, err := merge(context.Background(), textO, textA, textB, "", labelA, labelB, diff3Style)
	if err != nil {
		return nil, err
	}
	return &MergeResult{Result: bytes.NewReader([]byte(content)), Conflicts: conflicts}, nil
}

// SimpleMerge is Merge's string-based counterpart: it merges textA and
// textB against the common ancestor textO and always renders diff3-style
// conflict markers (including the ancestor's content between "|||||||"
// and "=======", labeled labelO).
func SimpleMerge(ctx context.Context, textO, textA, textB, labelO, labelA, labelB string) (string, bool, error) {
	return merge(ctx, textO, textA, textB, labelO, labelA, labelB, true)
}

func merge(ctx context.Context, textO, textA, textB, labelO, labelA, labelB string, diff3Style bool) (string, bool, error) {
	chain0, err := DiffLines(ctx, diferenco.Unspecified, textO, textA)
	if err != nil {
		return "", false, err
	}
	chain1, err := DiffLines(ctx, diferenco.Unspecified, textO, textB)
	if err != nil {
		return "", false, err
	}
	three, err := Merge3(chain0, chain1)
	if err != nil {
		return "", false, err
	}
	ancestorLines := splitKeepNewline(textO)
	var buf bytes.Buffer
	conflicts, err := WriteMerge(&buf, three, ancestorLines, diff3Style, false, labelO, labelA, labelB)
	if err != nil {
		return "", false, err
	}
	return buf.String(), conflicts, nil
}

func readAllString(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
