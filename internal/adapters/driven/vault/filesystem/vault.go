// Package filesystem implements the Vault port over a directory of
// markdown notes. Notes are parsed into domain Documents: YAML
// frontmatter, tags, wikilinks, a title from the frontmatter, first
// heading or filename, and plain-text content with markdown stripped.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
	"github.com/JacobKramerDK/noteprep/internal/core/ports/driven"
	"github.com/JacobKramerDK/noteprep/internal/logger"
)

// Ensure Vault implements the interface.
var _ driven.Vault = (*Vault)(nil)

// Vault reads markdown notes from a directory tree.
type Vault struct {
	root string
}

// NewVault creates a vault rooted at the given directory.
func NewVault(root string) *Vault {
	return &Vault{root: root}
}

// Root returns the vault directory.
func (v *Vault) Root() string {
	return v.root
}

// Scan walks the vault and emits one Document per parseable markdown
// note. Per-note failures go to the failure channel; they never abort
// the scan. Both channels are closed when the walk finishes or ctx is
// cancelled.
func (v *Vault) Scan(ctx context.Context) (<-chan domain.Document, <-chan domain.DocumentFailure) {
	docs := make(chan domain.Document)
	failures := make(chan domain.DocumentFailure)

	go func() {
		defer close(docs)
		defer close(failures)

		err := filepath.WalkDir(v.root, func(path string, entry fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if err != nil {
				failures <- domain.DocumentFailure{Path: path, Err: err}
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.IsDir() {
				// Hidden directories (.git, .obsidian, ...) are not notes.
				if name := entry.Name(); name != "." && strings.HasPrefix(name, ".") && path != v.root {
					return filepath.SkipDir
				}
				return nil
			}
			if !isMarkdown(path) {
				return nil
			}

			doc, parseErr := v.parseNote(path, entry)
			if parseErr != nil {
				failures <- domain.DocumentFailure{Path: path, Err: parseErr}
				return nil
			}
			docs <- doc
			return nil
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("Vault walk aborted: %v", err)
		}
	}()

	return docs, failures
}

// isMarkdown reports whether the path looks like a markdown note.
func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// parseNote reads and parses one note into a Document. The document ID
// is the vault-relative path, so it stays stable across re-indexes as
// long as the note is not moved.
func (v *Vault) parseNote(path string, entry fs.DirEntry) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read note: %w", err)
	}

	info, err := entry.Info()
	if err != nil {
		return domain.Document{}, fmt.Errorf("stat note: %w", err)
	}

	rel, err := filepath.Rel(v.root, path)
	if err != nil {
		rel = path
	}
	id := filepath.ToSlash(rel)

	meta, body, err := splitFrontmatter(string(data))
	if err != nil {
		return domain.Document{}, err
	}

	links := extractWikilinks(body)
	content := stripMarkdown(body)

	tags := meta.tags
	tags = append(tags, extractInlineTags(body)...)
	tags = dedupe(tags)

	title := meta.fields["title"]
	if title == "" {
		title = extractTitle(body, path)
	}

	return domain.Document{
		ID:           id,
		Path:         path,
		Title:        title,
		Content:      content,
		Tags:         tags,
		Frontmatter:  meta.fields,
		Links:        links,
		LastModified: info.ModTime(),
	}, nil
}

// extractTitle finds the first H1 heading or falls back to the filename.
func extractTitle(body, path string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}

	filename := filepath.Base(path)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

var (
	wikilinkRe  = regexp.MustCompile(`\[\[([^\]|]+)(\|[^\]]+)?\]\]`)
	inlineTagRe = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}_/-]+)`)
)

// extractWikilinks returns the targets of [[target]] and
// [[target|alias]] links.
func extractWikilinks(body string) []string {
	var links []string
	for _, m := range wikilinkRe.FindAllStringSubmatch(body, -1) {
		target := strings.TrimSpace(m[1])
		if target != "" {
			links = append(links, target)
		}
	}
	return dedupe(links)
}

// extractInlineTags returns lowercased #tag occurrences from the body.
func extractInlineTags(body string) []string {
	var tags []string
	for _, m := range inlineTagRe.FindAllStringSubmatch(body, -1) {
		tags = append(tags, strings.ToLower(m[2]))
	}
	return tags
}

// dedupe removes duplicates, preserving first-seen order.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Markdown stripping patterns.
var (
	codeBlockRe    = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe   = regexp.MustCompile("`[^`]+`")
	imageRe        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe   = regexp.MustCompile(`(?m)^>\s*`)
	hrRe           = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkerRe   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedListRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown reduces a markdown body to searchable plain text.
// Wikilinks collapse to their display text so link targets stay
// matchable; tag markers keep their word.
func stripMarkdown(body string) string {
	content := wikilinkRe.ReplaceAllStringFunc(body, func(link string) string {
		m := wikilinkRe.FindStringSubmatch(link)
		if m[2] != "" {
			return strings.TrimPrefix(m[2], "|")
		}
		return m[1]
	})

	content = codeBlockRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = headingRe.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = blockquoteRe.ReplaceAllString(content, "")
	content = hrRe.ReplaceAllString(content, "")
	content = listMarkerRe.ReplaceAllString(content, "")
	content = numberedListRe.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "#", "")
	content = multiNewlineRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
