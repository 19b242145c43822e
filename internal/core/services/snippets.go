package services

import (
	"strings"
	"unicode/utf8"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

// Snippet extraction bounds.
const (
	maxSnippets   = 3
	snippetLength = 200
)

// extractSnippets returns up to maxSnippets excerpts from the document's
// content sample, each centered on the first occurrence of one of the
// query terms. When no term occurs in the sample, the leading excerpt is
// returned instead so every match has something to display.
func extractSnippets(doc domain.Document, terms []string) []string {
	sample := domain.SampleContent(doc.Content)
	if sample == "" {
		return nil
	}
	lower := strings.ToLower(sample)

	var snippets []string
	var covered [][2]int

	for _, term := range terms {
		if len(snippets) >= maxSnippets {
			break
		}
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		pos := strings.Index(lower, term)
		if pos < 0 {
			continue
		}
		if within(covered, pos) {
			// Another term already produced a window over this spot.
			continue
		}
		start, end := window(sample, pos, len(term))
		covered = append(covered, [2]int{start, end})
		snippets = append(snippets, trimSnippet(sample, start, end))
	}

	if len(snippets) == 0 {
		start, end := window(sample, 0, 0)
		snippets = append(snippets, trimSnippet(sample, start, end))
	}
	return snippets
}

// window computes a snippetLength-byte range centered on the term at
// pos, clamped to the sample and aligned to rune boundaries.
func window(sample string, pos, termLen int) (int, int) {
	start := pos + termLen/2 - snippetLength/2
	if start < 0 {
		start = 0
	}
	end := start + snippetLength
	if end > len(sample) {
		end = len(sample)
		start = end - snippetLength
		if start < 0 {
			start = 0
		}
	}
	for start > 0 && !utf8.RuneStart(sample[start]) {
		start--
	}
	for end < len(sample) && !utf8.RuneStart(sample[end]) {
		end++
	}
	return start, end
}

// trimSnippet tidies the excerpt and marks truncated edges.
func trimSnippet(sample string, start, end int) string {
	snippet := strings.TrimSpace(sample[start:end])
	snippet = strings.Join(strings.Fields(snippet), " ")
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(sample) {
		snippet += "..."
	}
	return snippet
}

// within reports whether pos falls inside any already covered range.
func within(ranges [][2]int, pos int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}
