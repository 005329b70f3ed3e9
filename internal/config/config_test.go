package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"reclaim/internal/config"
)

func TestLoadDefaultConfigExpandsRoot(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("RECLAIM_ROOT", "")
	t.Setenv("RECLAIM_LOG_LEVEL", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if !filepath.IsAbs(cfg.Paths.Root) {
		t.Fatalf("expected absolute root, got %q", cfg.Paths.Root)
	}
	if cfg.Archive.Suffix != ".7z" {
		t.Fatalf("unexpected archive suffix: %q", cfg.Archive.Suffix)
	}
	if cfg.Transcode.Engine != config.EngineFFmpeg {
		t.Fatalf("unexpected engine: %q", cfg.Transcode.Engine)
	}
	if cfg.Transcode.OutputExtension != ".webm" {
		t.Fatalf("unexpected output extension: %q", cfg.Transcode.OutputExtension)
	}
	if !cfg.Exclude.Hidden {
		t.Fatal("expected hidden entries excluded by default")
	}
	if cfg.Rename.Hash != "sha256" {
		t.Fatalf("unexpected hash: %q", cfg.Rename.Hash)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "reclaim.toml")
	root := filepath.Join(tempDir, "media")

	type payload struct {
		Paths struct {
			Root string `toml:"root"`
		} `toml:"paths"`
		Exclude struct {
			Extensions []string `toml:"extensions"`
		} `toml:"exclude"`
		Transcode struct {
			OutputExtension string `toml:"output_extension"`
		} `toml:"transcode"`
		Rename struct {
			Hash string `toml:"hash"`
		} `toml:"rename"`
	}
	custom := payload{}
	custom.Paths.Root = root
	custom.Exclude.Extensions = []string{"TMP", ".Part"}
	custom.Transcode.OutputExtension = "WebM"
	custom.Rename.Hash = "XXH3"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}
	t.Setenv("RECLAIM_ROOT", "")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("unexpected root: %q", cfg.Paths.Root)
	}
	if strings.Join(cfg.Exclude.Extensions, ",") != ".tmp,.part" {
		t.Fatalf("expected canonical extensions, got %v", cfg.Exclude.Extensions)
	}
	if cfg.Transcode.OutputExtension != ".webm" {
		t.Fatalf("expected .webm, got %q", cfg.Transcode.OutputExtension)
	}
	if cfg.Rename.Hash != "xxh3" {
		t.Fatalf("expected xxh3, got %q", cfg.Rename.Hash)
	}
	if cfg.Archive.Suffix != ".7z" {
		t.Fatalf("expected default suffix retained, got %q", cfg.Archive.Suffix)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "reclaim.toml")
	if err := os.WriteFile(configPath, []byte("[archive]\nsufix = \".zip\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RECLAIM_ROOT", root)
	t.Setenv("RECLAIM_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("expected root from env, got %q", cfg.Paths.Root)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level from env, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"engine", func(c *config.Config) { c.Transcode.Engine = "handbrake" }, "transcode.engine"},
		{"drapto container", func(c *config.Config) {
			c.Transcode.Engine = config.EngineDrapto
			c.Transcode.OutputExtension = ".webm"
		}, "transcode.output_extension"},
		{"hash", func(c *config.Config) { c.Rename.Hash = "md5" }, "rename.hash"},
		{"glob", func(c *config.Config) { c.Exclude.Patterns = []string{"[a-"} }, "exclude.patterns"},
		{"archive tools", func(c *config.Config) { c.Archive.Tools = nil }, "archive.tools"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestOutputExtensionRemovedFromInputs(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "reclaim.toml")
	body := "[transcode]\nengine = \"drapto\"\noutput_extension = \"\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Transcode.OutputExtension != ".mkv" {
		t.Fatalf("expected drapto default container, got %q", cfg.Transcode.OutputExtension)
	}
	for _, ext := range cfg.Transcode.InputExtensions {
		if ext == ".mkv" {
			t.Fatalf("output extension still listed as input: %v", cfg.Transcode.InputExtensions)
		}
	}
}

func TestRenameTargetDirResolvesAgainstRoot(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Root = "/srv/media"
	if got := cfg.RenameTargetDir(); got != filepath.Join("/srv/media", "by-hash") {
		t.Fatalf("unexpected target dir: %q", got)
	}
	cfg.Rename.TargetDir = "/mnt/hashed"
	if got := cfg.RenameTargetDir(); got != "/mnt/hashed" {
		t.Fatalf("unexpected absolute target dir: %q", got)
	}
}

func TestExpandHomeKeepsRelativePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandHome("hashed")
	if err != nil || got != "hashed" {
		t.Fatalf("ExpandHome(relative) = %q, %v", got, err)
	}
	got, err = config.ExpandHome("~/hashed")
	if err != nil || got != filepath.Join(home, "hashed") {
		t.Fatalf("ExpandHome(~/hashed) = %q, %v", got, err)
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RECLAIM_ROOT", "")
	t.Setenv("RECLAIM_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[transcode]") {
		t.Fatal("sample config missing transcode section")
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if len(cfg.Exclude.Patterns) != 2 {
		t.Fatalf("unexpected sample patterns: %v", cfg.Exclude.Patterns)
	}
}
