package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/five82/e6viu/internal/spinner"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if !reflect.DeepEqual(cfg.Tags, []string{"fox"}) {
		t.Fatalf("Tags = %v, want [fox]", cfg.Tags)
	}
	if cfg.MinScore != 100 {
		t.Fatalf("MinScore = %d, want 100", cfg.MinScore)
	}
	if cfg.ScratchPath != filepath.Join(os.TempDir(), "e6-file") {
		t.Fatalf("ScratchPath = %q, want e6-file in temp dir", cfg.ScratchPath)
	}
	if cfg.SpinnerSourceURL != spinner.DefaultSourceURL {
		t.Fatalf("SpinnerSourceURL = %q, want %q", cfg.SpinnerSourceURL, spinner.DefaultSourceURL)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "  https://e926.net  "
username = " kalka "
tags = [" wolf ", "", "canine,feral"]
min_score = 0
include_cubs = true
scratch_path = "~/scratch/e6-file"
renderer = "Blocks"
log_level = "DEBUG"
requests_per_second = 0.5
request_timeout = "45s"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://e926.net" {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, "https://e926.net")
	}
	if cfg.Username != "kalka" {
		t.Fatalf("Username = %q, want kalka", cfg.Username)
	}
	if !reflect.DeepEqual(cfg.Tags, []string{"wolf", "canine", "feral"}) {
		t.Fatalf("Tags = %v, want [wolf canine feral]", cfg.Tags)
	}
	if cfg.MinScore != 0 || !cfg.IncludeCubs {
		t.Fatalf("MinScore/IncludeCubs = %d/%v, want 0/true", cfg.MinScore, cfg.IncludeCubs)
	}
	if cfg.ScratchPath != filepath.Join(home, "scratch", "e6-file") {
		t.Fatalf("ScratchPath = %q, want it under HOME %q", cfg.ScratchPath, home)
	}
	if cfg.Renderer != "blocks" || cfg.LogLevel != "debug" {
		t.Fatalf("Renderer/LogLevel = %q/%q, want blocks/debug", cfg.Renderer, cfg.LogLevel)
	}
	if cfg.RequestsPerSecond != 0.5 {
		t.Fatalf("RequestsPerSecond = %v, want 0.5", cfg.RequestsPerSecond)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Fatalf("RequestTimeout = %v, want 45s", cfg.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
base_url = "   "
tags = []
renderer = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.BaseURL, defaultBaseURL)
	}
	if !reflect.DeepEqual(cfg.Tags, defaultTags) {
		t.Fatalf("Tags = %v, want %v", cfg.Tags, defaultTags)
	}
	if cfg.Renderer != defaultRenderer {
		t.Fatalf("Renderer = %q, want %q", cfg.Renderer, defaultRenderer)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`tags = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_BadTimeoutFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`request_timeout = "soon"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want duration error")
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"renderer", func(c *Config) { c.Renderer = "sixel" }},
		{"log level", func(c *Config) { c.LogLevel = "trace" }},
		{"base url", func(c *Config) { c.BaseURL = "not a url" }},
		{"negative score", func(c *Config) { c.MinScore = -1 }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"empty tag", func(c *Config) { c.Tags = []string{""} }},
		{"colon in username", func(c *Config) { c.Username = "a:b" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("Validate returned nil error")
			}
		})
	}
}

func TestSearchTags(t *testing.T) {
	cfg := Default()
	if got, want := cfg.SearchTags(), []string{"fox", "score:>100", "-cub"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SearchTags = %v, want %v", got, want)
	}

	cfg.Tags = PawsTags
	cfg.IncludeCubs = true
	cfg.MinScore = 0
	if got, want := cfg.SearchTags(), []string{"paws", "pawpads"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SearchTags = %v, want %v", got, want)
	}

	cfg.Tags = []string{"fox", "fox", " "}
	if got, want := cfg.SearchTags(), []string{"fox"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SearchTags = %v, want %v", got, want)
	}
}

func TestCleanTags(t *testing.T) {
	got := CleanTags([]string{"fox, canine", " ", "score:>50"})
	want := []string{"fox", "canine", "score:>50"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CleanTags = %v, want %v", got, want)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("E621_TOKEN", "")
	t.Setenv("E621_USER", "")

	cred, err := LoadCredentials("kalka")
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if cred != nil {
		t.Fatalf("credential = %+v, want nil without a token", cred)
	}

	t.Setenv("E621_TOKEN", " secret ")
	cred, err = LoadCredentials("kalka")
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if cred == nil || cred.Username != "kalka" || cred.APIKey != "secret" {
		t.Fatalf("credential = %+v, want kalka/secret", cred)
	}

	t.Setenv("E621_USER", "other")
	cred, err = LoadCredentials("kalka")
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if cred.Username != "other" {
		t.Fatalf("Username = %q, want E621_USER to win", cred.Username)
	}
}

func TestLoadCredentials_DotenvFile(t *testing.T) {
	t.Setenv("E621_TOKEN", "")
	t.Setenv("E621_USER", "")
	// godotenv does not override variables that are already set, so clear them.
	os.Unsetenv("E621_TOKEN")
	os.Unsetenv("E621_USER")

	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	if err := os.WriteFile(file, []byte("E621_TOKEN=fromfile\nE621_USER=dotuser\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cred, err := LoadCredentials("", filepath.Join(dir, "missing.env"), file)
	if err != nil {
		t.Fatalf("LoadCredentials: %v", err)
	}
	if cred == nil || cred.APIKey != "fromfile" || cred.Username != "dotuser" {
		t.Fatalf("credential = %+v, want dotuser/fromfile", cred)
	}
	t.Cleanup(func() {
		os.Unsetenv("E621_TOKEN")
		os.Unsetenv("E621_USER")
	})
}
