package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExclude()
	c.normalizeArchive()
	c.normalizeTranscode()
	c.normalizeRename()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("RECLAIM_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Root = value
	}
	if strings.TrimSpace(c.Paths.Root) == "" {
		c.Paths.Root = defaultRoot
	}
	var err error
	if c.Paths.Root, err = expandPath(strings.TrimSpace(c.Paths.Root)); err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
			return fmt.Errorf("paths.log_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeExclude() {
	c.Exclude.Extensions = normalizeExtensions(c.Exclude.Extensions)
	c.Exclude.IncludeExtensions = normalizeExtensions(c.Exclude.IncludeExtensions)
	c.Exclude.Patterns = trimAll(c.Exclude.Patterns)
}

func (c *Config) normalizeArchive() {
	c.Archive.Tools = trimAll(c.Archive.Tools)
	c.Archive.SearchDirs = trimAll(c.Archive.SearchDirs)
	c.Archive.Suffix = normalizeExtension(c.Archive.Suffix)
	if c.Archive.Suffix == "" {
		c.Archive.Suffix = defaultArchiveSuffix
	}
}

func (c *Config) normalizeTranscode() {
	c.Transcode.Engine = strings.ToLower(strings.TrimSpace(c.Transcode.Engine))
	if c.Transcode.Engine == "" {
		c.Transcode.Engine = defaultTranscodeEngine
	}
	c.Transcode.Tools = trimAll(c.Transcode.Tools)
	c.Transcode.ProbeTools = trimAll(c.Transcode.ProbeTools)
	c.Transcode.SearchDirs = trimAll(c.Transcode.SearchDirs)
	c.Transcode.InputExtensions = normalizeExtensions(c.Transcode.InputExtensions)
	c.Transcode.OutputExtension = normalizeExtension(c.Transcode.OutputExtension)
	if c.Transcode.OutputExtension == "" {
		c.Transcode.OutputExtension = defaultOutputExtension
		if c.Transcode.Engine == EngineDrapto {
			c.Transcode.OutputExtension = draptoOutputExtension
		}
	}
	inputs := c.Transcode.InputExtensions[:0]
	for _, ext := range c.Transcode.InputExtensions {
		if ext != c.Transcode.OutputExtension {
			inputs = append(inputs, ext)
		}
	}
	c.Transcode.InputExtensions = inputs
}

func (c *Config) normalizeRename() {
	c.Rename.Hash = strings.ToLower(strings.TrimSpace(c.Rename.Hash))
	if c.Rename.Hash == "" {
		c.Rename.Hash = defaultRenameHash
	}
	if expanded, err := ExpandHome(c.Rename.TargetDir); err == nil {
		c.Rename.TargetDir = expanded
	}
	c.Rename.Extensions = normalizeExtensions(c.Rename.Extensions)
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("RECLAIM_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func normalizeExtensions(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		ext := normalizeExtension(v)
		if ext == "" {
			continue
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
