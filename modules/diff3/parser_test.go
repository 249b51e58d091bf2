// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diff3

import "testing"

func TestParseNormalDiffAdd(t *testing.T) {
	chain, err := ParseNormalDiff([]byte("2a3,4\n> x\n> y\n"))
	if err != nil {
		t.Fatalf("ParseNormalDiff: %v", err)
	}
	if chain == nil || chain.Cmd != Add {
		t.Fatalf("expected a single Add block, got %+v", chain)
	}
	if !chain.A.Empty() || chain.A.Lo != 3 {
		t.Fatalf("A range = %+v, want empty at 3", chain.A)
	}
	if chain.B.Lo != 3 || chain.B.Hi != 4 {
		t.Fatalf("B range = %+v, want {3 4}", chain.B)
	}
	if len(chain.LinesB) != 2 || string(chain.LinesB[0].Data) != "x" || string(chain.LinesB[1].Data) != "y" {
		t.Fatalf("LinesB = %+v", chain.LinesB)
	}
}

func TestParseNormalDiffDelete(t *testing.T) {
	chain, err := ParseNormalDiff([]byte("3,4d2\n< x\n< y\n"))
	if err != nil {
		t.Fatalf("ParseNormalDiff: %v", err)
	}
	if chain == nil || chain.Cmd != Delete {
		t.Fatalf("expected a single Delete block, got %+v", chain)
	}
	if chain.A.Lo != 3 || chain.A.Hi != 4 {
		t.Fatalf("A range = %+v, want {3 4}", chain.A)
	}
	if !chain.B.Empty() {
		t.Fatalf("B range = %+v, want empty", chain.B)
	}
}

func TestParseNormalDiffMultipleBlocks(t *testing.T) {
	chain, err := ParseNormalDiff([]byte("1c1\n< a\n---\n> b\n3a4\n> c\n"))
	if err != nil {
		t.Fatalf("ParseNormalDiff: %v", err)
	}
	if chain == nil || chain.Next == nil || chain.Next.Next != nil {
		t.Fatalf("expected exactly two chained blocks")
	}
	if chain.Cmd != Change || chain.Next.Cmd != Add {
		t.Fatalf("unexpected command sequence: %v, %v", chain.Cmd, chain.Next.Cmd)
	}
}

func TestParseNormalDiffEmpty(t *testing.T) {
	chain, err := ParseNormalDiff(nil)
	if err != nil {
		t.Fatalf("ParseNormalDiff(nil): %v", err)
	}
	if chain != nil {
		t.Fatalf("expected nil chain for empty input, got %+v", chain)
	}
}

func TestParseNormalDiffIncompleteLine(t *testing.T) {
	_, err := ParseNormalDiff([]byte("1c1\n< a\n---\n> b"))
	if err == nil {
		t.Fatalf("expected a PARSE_ERROR for a missing trailing newline")
	}
	var de *Error
	if !errorsAs(err, &de) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if de.Kind != ErrParse {
		t.Fatalf("Kind = %v, want ErrParse", de.Kind)
	}
}

func errorsAs(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}
