package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	Root   string `toml:"root"`
	LogDir string `toml:"log_dir"`
}

// Exclude contains the entry filters shared by every job.
type Exclude struct {
	Hidden            bool     `toml:"hidden"`
	Extensions        []string `toml:"extensions"`
	IncludeExtensions []string `toml:"include_extensions"`
	Patterns          []string `toml:"patterns"`
}

// Archive contains configuration for the archive job.
type Archive struct {
	Tools        []string `toml:"tools"`
	ProbeArgs    []string `toml:"probe_args"`
	SearchDirs   []string `toml:"search_dirs"`
	Suffix       string   `toml:"suffix"`
	Flags        []string `toml:"flags"`
	DeleteSource bool     `toml:"delete_source"`
}

// Transcode contains configuration for the transcode job.
type Transcode struct {
	// Engine selects "ffmpeg" (external process) or "drapto" (in-process).
	Engine          string   `toml:"engine"`
	Tools           []string `toml:"tools"`
	ProbeTools      []string `toml:"probe_tools"`
	SearchDirs      []string `toml:"search_dirs"`
	InputExtensions []string `toml:"input_extensions"`
	OutputExtension string   `toml:"output_extension"`
	CodecFlags      []string `toml:"codec_flags"`
	// Validate probes each output with ffprobe before the source is removed.
	Validate     bool `toml:"validate"`
	DeleteSource bool `toml:"delete_source"`
}

// Rename contains configuration for the content-addressed rename job.
type Rename struct {
	TargetDir  string   `toml:"target_dir"`
	Hash       string   `toml:"hash"`
	Extensions []string `toml:"extensions"`
	Move       bool     `toml:"move"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for reclaim.
//
// Configuration sections by job:
//   - Paths: the tree to process and optional log directory
//   - Exclude: hidden/extension/glob filters shared by every job
//   - Archive: archiver lookup, suffix and flags
//   - Transcode: encoder engine, codec flags and output validation
//   - Rename: content-addressed target directory and hash algorithm
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Exclude   Exclude   `toml:"exclude"`
	Archive   Archive   `toml:"archive"`
	Transcode Transcode `toml:"transcode"`
	Rename    Rename    `toml:"rename"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ApplyRoot overrides the configured root for a single run and re-derives the
// paths that depend on it.
func (c *Config) ApplyRoot(root string) error {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil
	}
	expanded, err := expandPath(root)
	if err != nil {
		return fmt.Errorf("root: %w", err)
	}
	c.Paths.Root = expanded
	return nil
}

// RenameTargetDir returns the absolute rename target directory. Relative
// values are resolved against the root.
func (c *Config) RenameTargetDir() string {
	dir := strings.TrimSpace(c.Rename.TargetDir)
	if dir == "" {
		dir = defaultRenameTargetDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(c.Paths.Root, dir)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandHome expands a leading "~" and leaves every other value, including
// relative paths, untouched.
func ExpandHome(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if !strings.HasPrefix(pathValue, "~") {
		return pathValue, nil
	}
	return expandPath(pathValue)
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
