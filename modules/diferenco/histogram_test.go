package diferenco

import (
	"strings"
	"testing"
)

func TestHistogram(t *testing.T) {
	a := strings.Split("alpha\nbeta\ngamma\ndelta\n", "\n")
	b := strings.Split("alpha\nBETA\ngamma\ndelta\nepsilon\n", "\n")
	changes := HistogramDiff(a, b)
	got := applyChanges(a, b, changes)
	want := strings.Join(b, "|")
	if strings.Join(got, "|") != want {
		t.Fatalf("HistogramDiff round-trip = %v, want %v", got, b)
	}
}
