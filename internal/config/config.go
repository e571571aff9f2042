package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/five82/e6viu/internal/spinner"
)

// Config holds the viewer settings after defaults, file values and flags
// are merged.
type Config struct {
	BaseURL           string        `validate:"required,url"`
	Username          string        `validate:"excludes=:"`
	Tags              []string      `validate:"dive,required"`
	MinScore          int           `validate:"gte=0"`
	IncludeCubs       bool
	ScratchPath       string        `validate:"required"`
	SpinnerCachePath  string        `validate:"required"`
	SpinnerSourceURL  string        `validate:"required,url"`
	UserAgent         string        `validate:"required"`
	Renderer          string        `validate:"oneof=auto kitty blocks"`
	LogFile           string        `validate:"required"`
	LogLevel          string        `validate:"oneof=debug info warn error"`
	RequestsPerSecond float64       `validate:"gte=0"`
	RequestTimeout    time.Duration `validate:"gt=0"`
}

const (
	defaultConfigPath  = "~/.config/e6viu/config.toml"
	defaultLogFile     = "~/.local/state/e6viu/e6viu.log"
	defaultBaseURL     = "https://e621.net"
	defaultUserAgent   = "e6viu/0.1 (terminal viewer)"
	defaultMinScore    = 100
	defaultRenderer    = "auto"
	defaultLogLevel    = "info"
	defaultRPS         = 2
	defaultTimeout     = 30 * time.Second
	scratchFileName    = "e6-file"
	spinnerCacheName   = "spinners.json"
	excludeCubsTag     = "-cub"
	minScoreTagPattern = "score:>%d"
)

var (
	defaultTags = []string{"fox"}
	// PawsTags replace the configured tags when the paws shortcut is used.
	PawsTags = []string{"paws", "pawpads"}
)

var validate = validator.New()

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:           defaultBaseURL,
		Tags:              append([]string(nil), defaultTags...),
		MinScore:          defaultMinScore,
		ScratchPath:       filepath.Join(os.TempDir(), scratchFileName),
		SpinnerCachePath:  filepath.Join(os.TempDir(), spinnerCacheName),
		SpinnerSourceURL:  spinner.DefaultSourceURL,
		UserAgent:         defaultUserAgent,
		Renderer:          defaultRenderer,
		LogFile:           mustExpand(defaultLogFile),
		LogLevel:          defaultLogLevel,
		RequestsPerSecond: defaultRPS,
		RequestTimeout:    defaultTimeout,
	}
}

// Load reads the TOML config at path, falling back to defaults when missing.
// Empty values keep their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL           string   `toml:"base_url"`
		Username          string   `toml:"username"`
		Tags              []string `toml:"tags"`
		MinScore          *int     `toml:"min_score"`
		IncludeCubs       bool     `toml:"include_cubs"`
		ScratchPath       string   `toml:"scratch_path"`
		SpinnerCachePath  string   `toml:"spinner_cache_path"`
		SpinnerSourceURL  string   `toml:"spinner_source_url"`
		UserAgent         string   `toml:"user_agent"`
		Renderer          string   `toml:"renderer"`
		LogFile           string   `toml:"log_file"`
		LogLevel          string   `toml:"log_level"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
		RequestTimeout    string   `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.BaseURL, raw.BaseURL)
	setString(&cfg.Username, raw.Username)
	if tags := CleanTags(raw.Tags); len(tags) > 0 {
		cfg.Tags = tags
	}
	if raw.MinScore != nil {
		cfg.MinScore = *raw.MinScore
	}
	cfg.IncludeCubs = raw.IncludeCubs
	setPath(&cfg.ScratchPath, raw.ScratchPath)
	setPath(&cfg.SpinnerCachePath, raw.SpinnerCachePath)
	setString(&cfg.SpinnerSourceURL, raw.SpinnerSourceURL)
	setString(&cfg.UserAgent, raw.UserAgent)
	setString(&cfg.Renderer, strings.ToLower(raw.Renderer))
	setPath(&cfg.LogFile, raw.LogFile)
	setString(&cfg.LogLevel, strings.ToLower(raw.LogLevel))
	if raw.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := parseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SearchTags returns the user tags plus the score floor and cub exclusion.
func (c Config) SearchTags() []string {
	tags := CleanTags(c.Tags)
	if c.MinScore > 0 {
		tags = append(tags, fmt.Sprintf(minScoreTagPattern, c.MinScore))
	}
	if !c.IncludeCubs {
		tags = append(tags, excludeCubsTag)
	}
	return lo.Uniq(tags)
}

// CleanTags trims tags, splits comma separated entries and drops empties.
func CleanTags(tags []string) []string {
	split := lo.FlatMap(tags, func(tag string, _ int) []string {
		return strings.Split(tag, ",")
	})
	trimmed := lo.Map(split, func(tag string, _ int) string {
		return strings.TrimSpace(tag)
	})
	return lo.Compact(trimmed)
}

func setString(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func setPath(dst *string, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	*dst = mustExpand(value)
}

// parseDuration accepts Go duration strings and bare seconds.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
