//go:generate go run go.uber.org/mock/mockgen -source=collaborators.go -destination=mock_collaborators_test.go -package=app

package app

import (
	"context"

	"github.com/five82/e6viu/internal/download"
	"github.com/five82/e6viu/internal/e621"
	"github.com/five82/e6viu/internal/spinner"
	"github.com/five82/e6viu/internal/state"
)

// Fetcher returns one random post for a tag list.
type Fetcher interface {
	FetchRandomPost(ctx context.Context, tags []string) (e621.Post, error)
}

// Downloader streams a remote file to a local path.
type Downloader interface {
	Download(ctx context.Context, url string, total int64, dest string, onProgress download.ProgressFunc) error
}

// Renderer draws an image file to the terminal.
type Renderer interface {
	Render(path string) error
}

// Prompter blocks until the user picks the next state.
type Prompter interface {
	Await(ctx context.Context) (state.LoopState, error)
}

// Indicator shows activity while a fetch is outstanding. The returned stop
// function must be safe to call more than once.
type Indicator interface {
	Start() (stop func(), err error)
}

// Progress displays download progress.
type Progress interface {
	Start(total int64)
	Set(transferred int64)
	Finish()
}

type animatorIndicator struct {
	animator *spinner.Animator
}

func (a animatorIndicator) Start() (func(), error) {
	anim, err := a.animator.Start()
	if err != nil {
		return nil, err
	}
	return anim.Stop, nil
}
