package diferenco

import (
	"context"
	"strings"
	"testing"
)

func applyChanges(before, after []string, changes []Change) []string {
	var out []string
	p1 := 0
	for _, c := range changes {
		out = append(out, before[p1:c.P1]...)
		out = append(out, after[c.P2:c.P2+c.Ins]...)
		p1 = c.P1 + c.Del
	}
	out = append(out, before[p1:]...)
	return out
}

func TestDiffInternalRoundTrip(t *testing.T) {
	before := strings.Split("alpha\nbeta\ngamma\ndelta\n", "\n")
	after := strings.Split("alpha\nBETA\ngamma\ndelta\nepsilon\n", "\n")
	for _, a := range []Algorithm{Histogram, Myers, ONP, Patience, Minimal} {
		changes, err := diffInternal(context.Background(), before, after, a)
		if err != nil {
			t.Fatalf("%s: diffInternal error: %v", a, err)
		}
		got := applyChanges(before, after, changes)
		if strings.Join(got, "|") != strings.Join(after, "|") {
			t.Fatalf("%s: applyChanges = %v, want %v", a, got, after)
		}
	}
}

func TestDiffInternalIdentical(t *testing.T) {
	lines := strings.Split("one\ntwo\nthree\n", "\n")
	for _, a := range []Algorithm{Histogram, Myers, ONP, Patience, Minimal} {
		changes, err := diffInternal(context.Background(), lines, lines, a)
		if err != nil {
			t.Fatalf("%s: diffInternal error: %v", a, err)
		}
		if len(changes) != 0 {
			t.Fatalf("%s: expected no changes for identical input, got %v", a, changes)
		}
	}
}

func TestAlgorithmFromName(t *testing.T) {
	cases := map[string]Algorithm{
		"":          Unspecified,
		"histogram": Histogram,
		"myers":     Myers,
		"patience":  Patience,
		"onp":       ONP,
		"minimal":   Minimal,
	}
	for name, want := range cases {
		got, err := AlgorithmFromName(name)
		if err != nil {
			t.Fatalf("AlgorithmFromName(%q) error: %v", name, err)
		}
		if got != want {
			t.Fatalf("AlgorithmFromName(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := AlgorithmFromName("bogus"); err == nil {
		t.Fatal("expected error for unsupported algorithm name")
	}
}
