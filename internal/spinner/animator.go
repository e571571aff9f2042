package spinner

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"

	"github.com/five82/e6viu/internal/errs"
)

// Animator draws a randomly chosen animation from its set while a caller
// waits on something slow.
type Animator struct {
	out   io.Writer
	set   Set
	style lipgloss.Style
	pick  func(n int) int
	label string
}

// Option customizes an Animator.
type Option func(*Animator)

// WithStyle renders every frame through style.
func WithStyle(style lipgloss.Style) Option {
	return func(a *Animator) { a.style = style }
}

// WithLabel prints label after each frame.
func WithLabel(label string) Option {
	return func(a *Animator) { a.label = label }
}

// WithPicker replaces the uniform random choice of animation.
func WithPicker(pick func(n int) int) Option {
	return func(a *Animator) { a.pick = pick }
}

// NewAnimator creates an Animator writing to out.
func NewAnimator(out io.Writer, set Set, opts ...Option) *Animator {
	a := &Animator{
		out:   out,
		set:   set,
		style: lipgloss.NewStyle(),
		pick:  rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Animation is a running spinner. The zero value and nil are stopped.
type Animation struct {
	Definition Definition

	out    io.Writer
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Start picks an animation and begins drawing it in a background goroutine.
// Nothing is written when the set is empty.
func (a *Animator) Start() (*Animation, error) {
	if len(a.set) == 0 {
		return nil, errs.ErrEmptyDefinitionSet
	}
	def := lo.SampleBy(a.set, a.pick)

	frames := make([]string, len(def.Frames))
	for i, frame := range def.Frames {
		if a.label != "" {
			frame += " " + a.label
		}
		frames[i] = a.style.Render(frame) + ansi.EraseLineRight + ansi.CursorHorizontalAbsolute(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	anim := &Animation{
		Definition: def,
		out:        a.out,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	_, _ = io.WriteString(a.out, ansi.HideCursor)
	go anim.run(ctx, frames, def.Interval)
	return anim, nil
}

func (an *Animation) run(ctx context.Context, frames []string, interval time.Duration) {
	defer close(an.done)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		for _, frame := range frames {
			_, _ = io.WriteString(an.out, frame)
			timer.Reset(interval)
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
		}
	}
}

// Stop cancels the animation, clears the frame and shows the cursor again.
// It is safe to call more than once and on a nil Animation.
func (an *Animation) Stop() {
	if an == nil || an.cancel == nil {
		return
	}
	an.once.Do(func() {
		an.cancel()
		<-an.done
		_, _ = io.WriteString(an.out, ansi.EraseEntireLine+ansi.CursorHorizontalAbsolute(1)+ansi.ShowCursor)
	})
}
