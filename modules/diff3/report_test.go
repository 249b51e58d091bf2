// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportSeparators(t *testing.T) {
	chain := &ThreeWayBlock{
		Kind: ALL, F0: Range{1, 1}, F1: Range{1, 1}, FC: Range{1, 1},
		LinesF0: []Line{{Data: []byte("x"), Newline: true}},
		LinesF1: []Line{{Data: []byte("y"), Newline: true}},
		LinesFC: []Line{{Data: []byte("a"), Newline: true}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, chain, Options{}))
	out := buf.String()
	assert.True(t, len(out) >= 5 && out[:5] == "====\n", "expected a bare ==== separator for an ALL conflict, got %q", out)
	assert.Contains(t, out, "1:1c\n  x\n", "expected file 1's section")
	assert.Contains(t, out, "2:1c\n  a\n", "expected file 2's section")
	assert.Contains(t, out, "3:1c\n  y\n", "expected file 3's section")
}

func TestWriteReportOnlyKindSuffixes(t *testing.T) {
	cases := []struct {
		kind   Kind
		suffix string
	}{
		{ONLY_1, "====1\n"},
		{ONLY_2, "====3\n"},
		{ONLY_3, "====2\n"},
	}
	for _, c := range cases {
		chain := &ThreeWayBlock{Kind: c.kind, F0: Range{1, 1}, F1: Range{1, 1}, FC: Range{1, 1}}
		var buf bytes.Buffer
		require.NoError(t, WriteReport(&buf, chain, Options{}))
		assert.True(t, len(buf.String()) >= len(c.suffix) && buf.String()[:len(c.suffix)] == c.suffix,
			"kind %v: got separator %q, want prefix %q", c.kind, buf.String(), c.suffix)
	}
}
