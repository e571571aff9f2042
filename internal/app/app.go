package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"

	"github.com/five82/e6viu/internal/config"
	"github.com/five82/e6viu/internal/download"
	"github.com/five82/e6viu/internal/e621"
	"github.com/five82/e6viu/internal/logging"
	"github.com/five82/e6viu/internal/prefs"
	"github.com/five82/e6viu/internal/render"
	"github.com/five82/e6viu/internal/spinner"
	"github.com/five82/e6viu/internal/ui"
)

const (
	kittyNotice    = "Results are best viewed using the kitty terminal."
	missingToken   = "Warning: E621_TOKEN is not set, requests will be sent without authentication."
	fetchingLabel  = "Fetching"
	dotenvFileName = ".env"
)

// Options configure a viewer session. Zero values fall back to the config
// file and then to built-in defaults.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/e6viu/prefs.toml
	Tags       []string
	Paws       bool
	Cubs       bool
	Renderer   string
	LogLevel   string
	// DotenvFiles are loaded before reading credentials. Nil means ".env".
	DotenvFiles []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run loads configuration, wires the components and drives the viewer
// until the user quits or a step fails.
func Run(ctx context.Context, opts Options) error {
	in, out, errOut := opts.streams()

	cfg, err := Settings(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()
	logger.Info("session started", "tags", cfg.SearchTags(), "base_url", cfg.BaseURL, "renderer", cfg.Renderer)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "error", err)
	}
	theme := ui.GetTheme(userPrefs.Theme)
	styles := theme.Styles()

	dotenv := opts.DotenvFiles
	if dotenv == nil {
		dotenv = []string{dotenvFileName}
	}
	cred, err := config.LoadCredentials(cfg.Username, dotenv...)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if cred == nil {
		logger.Warn("E621_TOKEN not set")
		fmt.Fprintln(errOut, styles.WarningText.Render(missingToken))
	}

	client, err := e621.NewClient(e621.Options{
		BaseURL:           cfg.BaseURL,
		UserAgent:         cfg.UserAgent,
		Credential:        cred,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger.With("component", "e621"),
	})
	if err != nil {
		return fmt.Errorf("init e621 client: %w", err)
	}

	set, err := spinner.Loader{
		CachePath: cfg.SpinnerCachePath,
		SourceURL: cfg.SpinnerSourceURL,
		UserAgent: cfg.UserAgent,
		HTTP:      &http.Client{Timeout: cfg.RequestTimeout},
		Logger:    logger.With("component", "spinner"),
	}.Load(ctx)
	if err != nil {
		return fmt.Errorf("load spinners: %w", err)
	}

	mode, err := render.ParseMode(cfg.Renderer)
	if err != nil {
		return err
	}
	renderer := render.New(out, render.Options{
		Mode:   mode,
		Logger: logger.With("component", "render"),
	})
	if renderer.Mode() != render.ModeKitty {
		fmt.Fprintln(out, styles.MutedText.Render(kittyNotice))
	}

	loop := NewLoop(LoopConfig{
		Fetcher: client,
		Downloader: download.New(download.Options{
			UserAgent: cfg.UserAgent,
			Logger:    logger.With("component", "download"),
		}),
		Renderer: renderer,
		Prompter: ui.NewPrompt(in, out, theme),
		Indicator: animatorIndicator{spinner.NewAnimator(out, set,
			spinner.WithStyle(styles.Spinner),
			spinner.WithLabel(styles.MutedText.Render(fetchingLabel)),
		)},
		Progress:    ui.NewProgressBar(out, theme, ui.FitWidth(terminalWidth())),
		Tags:        cfg.SearchTags(),
		ScratchPath: cfg.ScratchPath,
		Permalink:   client.Permalink,
		Out:         out,
		Styles:      styles,
		Logger:      logger.With("component", "loop"),
	})
	if err := loop.Run(ctx); err != nil {
		logger.Error("session failed", "error", err)
		return err
	}
	return nil
}

// Settings loads the config file and applies the command line overrides.
func Settings(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if tags := config.CleanTags(opts.Tags); len(tags) > 0 {
		cfg.Tags = tags
	}
	if opts.Paws {
		cfg.Tags = append([]string(nil), config.PawsTags...)
	}
	if opts.Cubs {
		cfg.IncludeCubs = true
	}
	if opts.Renderer != "" {
		cfg.Renderer = strings.ToLower(opts.Renderer)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(opts.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (o Options) streams() (io.Reader, io.Writer, io.Writer) {
	in, out, errOut := o.In, o.Out, o.Err
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return in, out, errOut
}

func terminalWidth() int {
	cols, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return 0
	}
	return cols
}
