// Where: internal/infra/ui/progress.go
// What: Single-line download progress bar.
// Why: Show refresh progress on stderr without a full-screen TUI.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
)

const (
	progressWidth    = 30
	progressInterval = 100 * time.Millisecond
)

// ProgressBar redraws one line per update with a carriage return.
type ProgressBar struct {
	out      io.Writer
	label    string
	bar      progress.Model
	lastDraw time.Time
	drawn    bool
	now      func() time.Time
}

// NewProgressBar returns a bar labelled with the downloaded file name.
func NewProgressBar(out io.Writer, label string) *ProgressBar {
	return &ProgressBar{
		out:   out,
		label: label,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
		now:   time.Now,
	}
}

// Update redraws at most every progressInterval, and always when the
// transfer is complete.
func (p *ProgressBar) Update(written, total int64) {
	now := p.now()
	complete := total > 0 && written >= total
	if p.drawn && !complete && now.Sub(p.lastDraw) < progressInterval {
		return
	}
	p.lastDraw = now
	p.drawn = true

	if total <= 0 {
		fmt.Fprintf(p.out, "\r%s %s", p.label, humanize.Bytes(uint64(written)))
		return
	}
	ratio := float64(written) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	fmt.Fprintf(p.out, "\r%s %s %s/%s", p.label, p.bar.ViewAs(ratio),
		humanize.Bytes(uint64(written)), humanize.Bytes(uint64(total)))
}

// Finish terminates the progress line.
func (p *ProgressBar) Finish() {
	if p.drawn {
		fmt.Fprintln(p.out)
	}
}
