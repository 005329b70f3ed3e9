package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateExclude(); err != nil {
		return err
	}
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.Root) == "" {
		return errors.New("paths.root must be set")
	}
	return nil
}

func (c *Config) validateExclude() error {
	for _, pattern := range c.Exclude.Patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return fmt.Errorf("exclude.patterns: invalid glob %q", pattern)
		}
	}
	return nil
}

func (c *Config) validateArchive() error {
	if len(c.Archive.Tools) == 0 {
		return errors.New("archive.tools must list at least one command")
	}
	if c.Archive.Suffix == "." {
		return errors.New("archive.suffix must not be empty")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	switch c.Transcode.Engine {
	case EngineFFmpeg:
		if len(c.Transcode.Tools) == 0 {
			return errors.New("transcode.tools must list at least one command when transcode.engine is ffmpeg")
		}
	case EngineDrapto:
		if c.Transcode.OutputExtension != draptoOutputExtension {
			return fmt.Errorf("transcode.output_extension must be %s when transcode.engine is drapto", draptoOutputExtension)
		}
	default:
		return fmt.Errorf("transcode.engine: unsupported value %q (want %s or %s)", c.Transcode.Engine, EngineFFmpeg, EngineDrapto)
	}
	if c.Transcode.OutputExtension == "." {
		return errors.New("transcode.output_extension must not be empty")
	}
	if c.Transcode.Validate && len(c.Transcode.ProbeTools) == 0 {
		return errors.New("transcode.probe_tools must list at least one command when transcode.validate is true")
	}
	return nil
}

func (c *Config) validateRename() error {
	switch c.Rename.Hash {
	case "sha256", "xxh3":
	default:
		return fmt.Errorf("rename.hash: unsupported value %q (want sha256 or xxh3)", c.Rename.Hash)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	return nil
}
