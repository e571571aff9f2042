package spinner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/five82/e6viu/internal/errs"
)

// DefaultSourceURL is the published cli-spinners animation catalog.
const DefaultSourceURL = "https://raw.githubusercontent.com/sindresorhus/cli-spinners/main/spinners.json"

// Definition is a named terminal animation.
type Definition struct {
	Name     string
	Interval time.Duration
	Frames   []string
}

// Set is a collection of definitions ordered by name.
type Set []Definition

type rawDefinition struct {
	Interval int64    `json:"interval"`
	Frames   []string `json:"frames"`
}

// Parse decodes a cli-spinners document: a JSON object mapping animation
// names to their interval in milliseconds and frame list. Entries without
// frames or with a non-positive interval are dropped.
func Parse(data []byte) (Set, error) {
	var raw map[string]rawDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: spinner definitions: %w", errs.ErrParse, err)
	}
	set := make(Set, 0, len(raw))
	for name, def := range raw {
		if def.Interval <= 0 || len(def.Frames) == 0 {
			continue
		}
		set = append(set, Definition{
			Name:     name,
			Interval: time.Duration(def.Interval) * time.Millisecond,
			Frames:   def.Frames,
		})
	}
	sort.Slice(set, func(i, j int) bool { return set[i].Name < set[j].Name })
	return set, nil
}

// Loader reads spinner definitions from a local cache, fetching the remote
// document on first use.
type Loader struct {
	CachePath string
	SourceURL string
	UserAgent string
	HTTP      *http.Client
	Logger    *slog.Logger
}

// Load returns the cached definitions, downloading and caching the source
// document verbatim when the cache file does not exist yet.
func (l Loader) Load(ctx context.Context) (Set, error) {
	log := l.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if _, err := os.Stat(l.CachePath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: stat spinner cache: %w", errs.ErrIO, err)
		}
		log.Info("fetching spinner definitions", "url", l.sourceURL(), "cache", l.CachePath)
		if err := l.fetch(ctx); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(l.CachePath)
	if err != nil {
		return nil, fmt.Errorf("%w: read spinner cache: %w", errs.ErrIO, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (delete %s to refetch)", err, l.CachePath)
	}
	log.Debug("loaded spinner definitions", "count", len(set))
	return set, nil
}

func (l Loader) sourceURL() string {
	if l.SourceURL == "" {
		return DefaultSourceURL
	}
	return l.SourceURL
}

func (l Loader) fetch(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.sourceURL(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}
	client := l.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: fetch spinner definitions: %w", errs.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: spinner source returned status %d", errs.ErrNetwork, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(l.CachePath), 0o755); err != nil {
		return fmt.Errorf("%w: create spinner cache dir: %w", errs.ErrIO, err)
	}
	partial := l.CachePath + ".part"
	file, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("%w: create spinner cache: %w", errs.ErrIO, err)
	}
	_, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()
	if copyErr != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("%w: read spinner definitions: %w", errs.ErrNetwork, copyErr)
	}
	if closeErr != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("%w: write spinner cache: %w", errs.ErrIO, closeErr)
	}
	if err := os.Rename(partial, l.CachePath); err != nil {
		return fmt.Errorf("%w: store spinner cache: %w", errs.ErrIO, err)
	}
	return nil
}
