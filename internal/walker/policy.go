package walker

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// hiddenPrefix marks hidden entries by platform convention.
const hiddenPrefix = "."

// PolicyOptions configures NewPolicy.
type PolicyOptions struct {
	SkipHidden bool
	// ExcludeExtensions drops files whose extension is listed.
	ExcludeExtensions []string
	// IncludeExtensions, when non-empty, keeps only files whose extension is
	// listed. It never filters directories.
	IncludeExtensions []string
	// Patterns are doublestar globs. A pattern containing a slash matches the
	// root-relative path; otherwise it matches the entry name.
	Patterns []string
}

// Policy decides which entries a walk drops. It is immutable once built.
type Policy struct {
	skipHidden bool
	exclude    map[string]struct{}
	include    map[string]struct{}
	patterns   []string
}

// NewPolicy validates opts and builds a Policy.
func NewPolicy(opts PolicyOptions) (Policy, error) {
	p := Policy{
		skipHidden: opts.SkipHidden,
		exclude:    extensionSet(opts.ExcludeExtensions),
		include:    extensionSet(opts.IncludeExtensions),
	}
	for _, pattern := range opts.Patterns {
		pattern = strings.TrimSpace(filepath.ToSlash(pattern))
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return Policy{}, fmt.Errorf("exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		p.patterns = append(p.patterns, pattern)
	}
	return p, nil
}

// Excludes reports whether an entry with the given root-relative path should
// be dropped.
func (p Policy) Excludes(relPath string, isDir bool) bool {
	rel := filepath.ToSlash(relPath)
	name := rel
	if idx := strings.LastIndexByte(rel, '/'); idx >= 0 {
		name = rel[idx+1:]
	}
	if p.skipHidden && strings.HasPrefix(name, hiddenPrefix) {
		return true
	}
	for _, pattern := range p.patterns {
		subject := name
		if strings.Contains(pattern, "/") {
			subject = rel
		}
		if ok, _ := doublestar.Match(pattern, subject); ok {
			return true
		}
	}
	if isDir {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := p.exclude[ext]; ok {
		return true
	}
	if len(p.include) > 0 {
		if _, ok := p.include[ext]; !ok {
			return true
		}
	}
	return false
}

// NormalizeExtension lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func extensionSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if ext := NormalizeExtension(v); ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}
