// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"os"

	"github.com/antgroup/diff3forge/modules/term"
	"github.com/antgroup/diff3forge/pkg/tr"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stderr.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w > 80 {
		return 80
	}
	return w
}

func barFiller() string {
	switch term.StderrMode {
	case term.HAS_TRUECOLOR:
		return "\x1b[38;2;72;198;239m#\x1b[0m"
	case term.HAS_256COLOR:
		return "\x1b[36m#\x1b[0m"
	default:
		return "#"
	}
}

// Batch renders overall progress for batch-mode merge-file runs: one bar
// tracking how many manifest entries have been processed.
type Batch struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// NewBatch starts a progress display for total manifest entries. Pass quiet
// to suppress it entirely (batch mode passes its -q/--quiet flag).
func NewBatch(total int, quiet bool) *Batch {
	if quiet || total <= 0 {
		return &Batch{}
	}
	width := termWidth()
	p := mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithAutoRefresh(),
		mpb.WithWidth(width),
	)
	task := tr.W("Merging")
	bar := p.New(int64(total),
		mpb.BarStyle().Filler(barFiller()).Padding(" "),
		mpb.PrependDecorators(
			decor.Name(task, decor.WC{W: len(task) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.BarWidth(width),
		mpb.AppendDecorators(
			decor.Percentage(),
			decor.OnComplete(decor.EwmaETA(decor.ET_STYLE_GO, 30), "done"),
		),
	)
	return &Batch{p: p, bar: bar}
}

// Increment reports one manifest entry finished. The conflict flag does
// not change the display: a conflicting entry advances the bar by one
// like any other.
func (b *Batch) Increment(conflict bool) {
	if b.bar == nil {
		return
	}
	if conflict {
		b.bar.SetCurrent(b.bar.Current() + 1)
		return
	}
	b.bar.Increment()
}

// Wait blocks until the underlying renderer has drained.
func (b *Batch) Wait() {
	if b.p == nil {
		return
	}
	b.p.Wait()
}

// Abort stops the bar immediately, used on a fatal error mid-batch.
func (b *Batch) Abort() {
	if b.bar == nil {
		return
	}
	b.bar.Abort(true)
	fmt.Fprintln(os.Stderr)
}
