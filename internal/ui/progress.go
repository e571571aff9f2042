package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

const (
	defaultBarWidth = 40
	minBarWidth     = 10
	// cells taken by the elapsed time and byte counters around the bar
	counterWidth   = 48
	redrawInterval = 100 * time.Millisecond
)

// FitWidth returns a bar width that keeps the whole progress line within
// cols terminal columns.
func FitWidth(cols int) int {
	if cols <= 0 {
		return defaultBarWidth
	}
	return min(max(cols-counterWidth, minBarWidth), defaultBarWidth)
}

// ProgressBar draws a single-line byte progress indicator.
type ProgressBar struct {
	out    io.Writer
	bar    progress.Model
	styles Styles
	now    func() time.Time

	total    int64
	current  int64
	started  time.Time
	lastDraw time.Time
}

// NewProgressBar creates a bar writing to out. A width of zero uses the
// default bar width.
func NewProgressBar(out io.Writer, theme Theme, width int) *ProgressBar {
	if width <= 0 {
		width = defaultBarWidth
	}
	return &ProgressBar{
		out: out,
		bar: progress.New(
			progress.WithGradient(theme.BarStart, theme.BarEnd),
			progress.WithWidth(width),
			progress.WithoutPercentage(),
		),
		styles: theme.Styles(),
		now:    time.Now,
	}
}

// Start resets the bar for a transfer of total bytes and draws it.
func (p *ProgressBar) Start(total int64) {
	p.total = max(total, 0)
	p.current = 0
	p.started = p.now()
	p.lastDraw = time.Time{}
	p.draw()
}

// Set records the transferred byte count. Redraws are throttled.
func (p *ProgressBar) Set(transferred int64) {
	p.current = transferred
	if p.now().Sub(p.lastDraw) < redrawInterval && transferred < p.total {
		return
	}
	p.draw()
}

// Finish draws the final state and ends the line.
func (p *ProgressBar) Finish() {
	p.draw()
	_, _ = io.WriteString(p.out, "\n")
}

func (p *ProgressBar) draw() {
	p.lastDraw = p.now()
	_, _ = io.WriteString(p.out, "\r"+p.Line()+ansi.EraseLineRight)
}

// Line renders the bar and its counters without any cursor control.
func (p *ProgressBar) Line() string {
	percent := 0.0
	if p.total > 0 {
		percent = float64(p.current) / float64(p.total)
	}
	elapsed := p.now().Sub(p.started)
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(p.current) / secs
	}
	return fmt.Sprintf("%s %s %s %s",
		p.styles.MutedText.Render("["+formatElapsed(elapsed)+"]"),
		p.bar.ViewAs(percent),
		p.styles.Text.Render(humanize.Bytes(uint64(p.current))+"/"+humanize.Bytes(uint64(p.total))),
		p.styles.MutedText.Render("| "+humanize.Bytes(uint64(rate))+"/s"),
	)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
