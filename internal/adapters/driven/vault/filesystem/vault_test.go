package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

// collect drains both scan channels.
func collect(t *testing.T, v *Vault) ([]domain.Document, []domain.DocumentFailure) {
	t.Helper()
	docs, failures := v.Scan(context.Background())

	var gotDocs []domain.Document
	var gotFailures []domain.DocumentFailure
	for docs != nil || failures != nil {
		select {
		case d, ok := <-docs:
			if !ok {
				docs = nil
				continue
			}
			gotDocs = append(gotDocs, d)
		case f, ok := <-failures:
			if !ok {
				failures = nil
				continue
			}
			gotFailures = append(gotFailures, f)
		}
	}
	return gotDocs, gotFailures
}

func writeNote(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestVault_Scan tests parsing a small vault tree
func TestVault_Scan(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "meetings/q4-planning.md", `---
title: Q4 Planning Meeting
tags: [planning, roadmap]
project: atlas
---
# Ignored Heading

Sarah Chen walked through the [[Roadmap 2026|roadmap]] milestones. #planning
`)
	writeNote(t, dir, "scratch.txt", "not a note")

	v := NewVault(dir)
	docs, failures := collect(t, v)

	require.Len(t, docs, 1)
	assert.Empty(t, failures)

	doc := docs[0]
	assert.Equal(t, "meetings/q4-planning.md", doc.ID)
	assert.Equal(t, "Q4 Planning Meeting", doc.Title)
	assert.ElementsMatch(t, []string{"planning", "roadmap"}, doc.Tags)
	assert.Equal(t, "atlas", doc.Frontmatter["project"])
	assert.Equal(t, []string{"Roadmap 2026"}, doc.Links)
	assert.Contains(t, doc.Content, "Sarah Chen")
	assert.Contains(t, doc.Content, "roadmap")
	assert.NotContains(t, doc.Content, "[[")
	assert.False(t, doc.LastModified.IsZero())
}

// TestVault_TitleFallbacks tests heading and filename titles
func TestVault_TitleFallbacks(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "with-heading.md", "# Actual Title\n\nbody")
	writeNote(t, dir, "weekly_sync-notes.md", "no heading at all")

	v := NewVault(dir)
	docs, _ := collect(t, v)
	require.Len(t, docs, 2)

	titles := map[string]string{}
	for _, d := range docs {
		titles[d.ID] = d.Title
	}
	assert.Equal(t, "Actual Title", titles["with-heading.md"])
	assert.Equal(t, "weekly sync notes", titles["weekly_sync-notes.md"])
}

// TestVault_BadFrontmatter tests that parse failures are reported, not fatal
func TestVault_BadFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "good.md", "# Fine\n\ncontent")
	writeNote(t, dir, "bad.md", "---\n: not : valid : yaml [\n---\nbody")

	v := NewVault(dir)
	docs, failures := collect(t, v)

	assert.Len(t, docs, 1)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Path, "bad.md")
	assert.Error(t, failures[0].Err)
}

// TestVault_SkipsHiddenDirs tests that dot-directories are ignored
func TestVault_SkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "visible.md", "# Visible")
	writeNote(t, dir, ".obsidian/cache.md", "# Hidden")

	v := NewVault(dir)
	docs, _ := collect(t, v)

	require.Len(t, docs, 1)
	assert.Equal(t, "visible.md", docs[0].ID)
}

// TestVault_CancelledScan tests that cancellation stops the walk
func TestVault_CancelledScan(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "a.md", "# A")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs, failures := NewVault(dir).Scan(ctx)
	var got int
	for docs != nil || failures != nil {
		select {
		case _, ok := <-docs:
			if !ok {
				docs = nil
				continue
			}
			got++
		case _, ok := <-failures:
			if !ok {
				failures = nil
				continue
			}
		}
	}
	assert.Zero(t, got)
}

// TestSplitFrontmatter_Variants tests frontmatter forms
func TestSplitFrontmatter_Variants(t *testing.T) {
	meta, body, err := splitFrontmatter("no frontmatter here")
	require.NoError(t, err)
	assert.Empty(t, meta.fields)
	assert.Equal(t, "no frontmatter here", body)

	meta, body, err = splitFrontmatter("---\ntags: planning, Roadmap\nowner: Sarah Chen\n---\nbody text")
	require.NoError(t, err)
	assert.Equal(t, []string{"planning", "roadmap"}, meta.tags)
	assert.Equal(t, "Sarah Chen", meta.fields["owner"])
	assert.Equal(t, "body text", body)

	meta, _, err = splitFrontmatter("---\ntags:\n  - '#planning'\n  - Deep/Work\n---\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"planning", "deep/work"}, meta.tags)
}

// TestExtractInlineTags tests inline #tag parsing
func TestExtractInlineTags(t *testing.T) {
	tags := extractInlineTags("Start #planning mid #Q4-goals end\n#nested/tag")
	assert.ElementsMatch(t, []string{"planning", "q4-goals", "nested/tag"}, tags)

	// Headings are not tags.
	assert.Empty(t, extractInlineTags("word# nope"))
}

// TestStripMarkdown tests plain-text reduction
func TestStripMarkdown(t *testing.T) {
	in := "# Heading\n\nSome **bold** text with `code` and a [link](http://x).\n\n```\nfenced\n```\n\n- item one\n> quote"
	out := stripMarkdown(in)

	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "`")
	assert.NotContains(t, out, "fenced")
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "link")
	assert.Contains(t, out, "item one")
	assert.Contains(t, out, "quote")
}
