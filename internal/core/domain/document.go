package domain

import "time"

// Document is one indexed note with its text and structured metadata.
// It is the canonical representation after the vault has parsed a note.
// Documents are immutable once indexed: a changed file produces a new
// Document that replaces the old one by ID on the next re-index.
type Document struct {
	// ID is the unique identifier, stable across re-indexes as long as
	// the note's path is unchanged.
	ID string

	// Path is the original location of the note within the vault.
	Path string

	// Title is the human-readable note title.
	Title string

	// Content is the full plain-text content after markdown stripping.
	Content string

	// Tags holds the note's tags, lowercased, without the '#' prefix.
	Tags []string

	// Frontmatter contains the note's string-valued frontmatter fields,
	// keyed by lowercased field name.
	Frontmatter map[string]string

	// Links holds the targets of outgoing wikilinks in the note.
	Links []string

	// LastModified is the note's modification time, used for recency
	// scoring and ranking tie-breaks.
	LastModified time.Time
}

// HasTag reports whether the document carries the given lowercased tag.
func (d Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DocumentFailure records one note that could not be turned into a
// Document during a scan or index build. Failures are counted and
// reported; they never abort the batch.
type DocumentFailure struct {
	// Path identifies the note that failed.
	Path string

	// Err is the underlying cause.
	Err error
}
