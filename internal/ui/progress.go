package ui

import (
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress renders one bar per arc while its chapters download. Disabled
// in quiet, verbose and errors-only modes, where it would fight with line
// output.
type Progress struct {
	p       *mpb.Progress
	enabled bool
}

func NewProgress(enabled bool) *Progress {
	if !enabled {
		return &Progress{}
	}
	return &Progress{
		p: mpb.New(
			mpb.WithWidth(52),
			mpb.WithOutput(os.Stdout),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
		enabled: true,
	}
}

func (p *Progress) Close() {
	if p.enabled {
		p.p.Wait()
	}
}

// ArcBar starts a bar for one arc with the chapter count as its total.
func (p *Progress) ArcBar(name string, total int) *Bar {
	if !p.enabled {
		return &Bar{}
	}

	bar := p.p.New(
		int64(total),
		mpb.BarStyle().Rbound("]"),
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name(name+"  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d chapters", decor.WCSyncWidth),
		),
	)
	return &Bar{bar: bar, total: int64(total)}
}

type Bar struct {
	bar   *mpb.Bar
	total int64
}

func (b *Bar) Increment() {
	if b.bar != nil {
		b.bar.Increment()
	}
}

// Done fills and completes the bar even when chapters were skipped.
func (b *Bar) Done() {
	if b.bar != nil {
		b.bar.SetCurrent(b.total)
		b.bar.SetTotal(b.total, true)
	}
}
