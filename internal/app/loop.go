package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/five82/e6viu/internal/e621"
	"github.com/five82/e6viu/internal/errs"
	"github.com/five82/e6viu/internal/state"
	"github.com/five82/e6viu/internal/ui"
)

// LoopConfig wires the loop's collaborators.
type LoopConfig struct {
	Fetcher     Fetcher
	Downloader  Downloader
	Renderer    Renderer
	Prompter    Prompter
	Indicator   Indicator
	Progress    Progress
	Tags        []string
	ScratchPath string
	// Permalink builds the post page URL shown after each image.
	Permalink func(id int64) string
	Out       io.Writer
	Styles    ui.Styles
	Logger    *slog.Logger
}

// Loop runs the fetch, filter, download, render and prompt cycle.
type Loop struct {
	cfg LoopConfig
	log *slog.Logger
}

// NewLoop builds a Loop. Out defaults to stdout.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Permalink == nil {
		cfg.Permalink = func(id int64) string { return fmt.Sprintf("https://e621.net/posts/%d", id) }
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{cfg: cfg, log: logger}
}

// Run drives the loop until the user quits, returning nil, or until a step
// fails, returning its error. Context cancellation ends the loop with the
// context's error.
func (l *Loop) Run(ctx context.Context) error {
	var post e621.Post
	next := state.Fetching
	skipped := 0

	for {
		if next != state.Terminated {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		l.log.Debug("loop state", "state", next)

		switch next {
		case state.Fetching:
			p, err := l.fetch(ctx)
			if err != nil {
				return err
			}
			post = p
			next = state.Filtering

		case state.Filtering:
			accepted := e621.Accept(post.File.Ext) && post.File.URL != ""
			if !accepted {
				skipped++
				l.log.Debug("skipping post", "id", post.ID, "ext", post.File.Ext, "has_url", post.File.URL != "", "skipped", skipped)
			} else {
				skipped = 0
			}
			next = state.AfterFilter(accepted)

		case state.Downloading:
			if err := l.download(ctx, post); err != nil {
				return err
			}
			next = state.Rendering

		case state.Rendering:
			if err := l.render(post); err != nil {
				return err
			}
			next = state.AwaitingInput

		case state.AwaitingInput:
			choice, err := l.cfg.Prompter.Await(ctx)
			if err != nil {
				return err
			}
			next = choice

		case state.Terminated:
			l.log.Info("session ended")
			return nil

		default:
			return fmt.Errorf("unexpected loop state %v", next)
		}
	}
}

// fetch runs the activity indicator for exactly the duration of the catalog
// call. The indicator is cleared before any error is reported.
func (l *Loop) fetch(ctx context.Context) (e621.Post, error) {
	stop, err := l.cfg.Indicator.Start()
	if err != nil {
		return e621.Post{}, fmt.Errorf("start spinner: %w", err)
	}
	post, err := l.cfg.Fetcher.FetchRandomPost(ctx, l.cfg.Tags)
	stop()
	if err != nil {
		return e621.Post{}, fmt.Errorf("fetch post: %w", err)
	}
	return post, nil
}

func (l *Loop) download(ctx context.Context, post e621.Post) error {
	l.log.Info("downloading post", "id", post.ID, "ext", post.File.Ext, "size", post.File.Size)
	l.cfg.Progress.Start(post.File.Size)
	err := l.cfg.Downloader.Download(ctx, post.File.URL, post.File.Size, l.cfg.ScratchPath, l.cfg.Progress.Set)
	l.cfg.Progress.Finish()
	if err != nil {
		return fmt.Errorf("download post %d: %w", post.ID, err)
	}
	return nil
}

// render draws the scratch file, removes it and prints the post links. An
// image that cannot be decoded is reported and the links are still shown.
func (l *Loop) render(post e621.Post) error {
	out := l.cfg.Out
	st := l.cfg.Styles

	if err := l.cfg.Renderer.Render(l.cfg.ScratchPath); err != nil {
		if !errors.Is(err, errs.ErrRender) {
			return err
		}
		l.log.Warn("image not displayed", "id", post.ID, "error", err)
		fmt.Fprintln(out, st.WarningText.Render("Could not display image: "+err.Error()))
	}
	if err := os.Remove(l.cfg.ScratchPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove scratch file: %w", errs.ErrIO, err)
	}

	fmt.Fprintln(out, st.Link.Render(post.File.URL))
	fmt.Fprintln(out, st.Link.Render(l.cfg.Permalink(post.ID)))
	fmt.Fprintln(out, st.MutedText.Render(fmt.Sprintf("rating: %s  score: %d  favorites: %d",
		post.Rating, post.Score.Total, post.FavCount)))
	return nil
}
