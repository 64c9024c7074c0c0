// Package splice applies offset-safe replacements to document text.
package splice

import (
	"cmp"
	"slices"

	"go.trai.ch/qsnap/internal/core/domain"
)

// Edit replaces the bytes covered by Span with Replacement.
type Edit struct {
	Span        domain.Span
	Replacement string
}

// Apply returns text with span replaced by replacement.
// Bytes outside [span.Start, span.End) are left untouched.
func Apply(text string, span domain.Span, replacement string) string {
	return text[:span.Start] + replacement + text[span.End:]
}

// ApplyAll applies non-overlapping edits to text.
// Edits are folded in descending start order so each one sees offsets
// that earlier replacements have not shifted.
func ApplyAll(text string, edits []Edit) string {
	ordered := slices.Clone(edits)
	slices.SortStableFunc(ordered, func(a, b Edit) int {
		return cmp.Compare(b.Span.Start, a.Span.Start)
	})

	out := text
	for _, e := range ordered {
		out = Apply(out, e.Span, e.Replacement)
	}
	return out
}

// Replacement returns the link-wrapped artifact that replaces a raw reference.
func Replacement(artifactPath, url string) string {
	return "[![diagram](" + artifactPath + ")](" + url + ")"
}
