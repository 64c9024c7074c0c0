package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DocumentFinder = (*Finder)(nil)

// Finder expands document glob patterns. A leading "**/" matches any number
// of directories; the rest of a pattern uses filepath.Match syntax.
type Finder struct {
	walker *Walker
}

// NewFinder creates a new Finder.
func NewFinder(walker *Walker) *Finder {
	return &Finder{walker: walker}
}

// Find returns the files under root matching any of patterns, sorted and deduplicated.
func (f *Finder) Find(root string, patterns, ignore []string) ([]string, error) {
	for _, p := range patterns {
		if _, err := filepath.Match(strings.TrimPrefix(p, "**/"), ""); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "pattern", p)
		}
	}

	var found []string
	for path := range f.walker.WalkFiles(root, ignore) {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if slices.ContainsFunc(patterns, func(p string) bool { return matchPattern(p, rel) }) {
			found = append(found, path)
		}
	}

	slices.Sort(found)
	return slices.Compact(found), nil
}

// matchPattern matches a slash-separated relative path against pattern.
func matchPattern(pattern, rel string) bool {
	rest, recursive := strings.CutPrefix(pattern, "**/")
	if !recursive {
		ok, _ := filepath.Match(filepath.ToSlash(pattern), rel)
		return ok
	}

	// Try the remaining pattern against every suffix that starts at a segment boundary.
	for {
		if ok, _ := filepath.Match(rest, rel); ok {
			return true
		}
		_, after, found := strings.Cut(rel, "/")
		if !found {
			return false
		}
		rel = after
	}
}
