// Package memory provides the in-memory implementation of
// driven.DocumentIndex: per-field inverted maps with forward-prefix
// tokenization, rebuilt wholesale on every index request and swapped in
// atomically.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
	"github.com/JacobKramerDK/noteprep/internal/core/ports/driven"
	"github.com/JacobKramerDK/noteprep/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.DocumentIndex = (*Index)(nil)

// Prefix tokenization bounds. Tokens are indexed together with every
// prefix of at least minPrefixLen runes, so partial-word queries match.
// Tokens longer than maxTokenLen are truncated before expansion to keep
// posting growth bounded.
const (
	minPrefixLen = 2
	maxTokenLen  = 24
)

// Indexed field names.
const (
	fieldTitle       = "title"
	fieldContent     = "content"
	fieldTags        = "tags"
	fieldFrontmatter = "frontmatter"
)

// postings maps a token to the set of document IDs containing it.
type postings map[string]map[string]struct{}

// generation is one complete, internally consistent build of the index.
// Generations are immutable after construction; a re-index produces a
// new generation that replaces the old one in a single assignment.
type generation struct {
	id     string
	docs   map[string]domain.Document
	fields map[string]postings
	failed int
}

// Index is the in-memory document index. The current generation is
// exclusively owned and replaced only inside IndexDocuments; all other
// operations treat it as read-only.
type Index struct {
	mu       sync.RWMutex
	gen      *generation
	building bool

	// Single-slot queue for overlapping index requests. The first call
	// arriving mid-build is parked here; further calls are dropped as
	// redundant until the slot empties.
	pending    []domain.Document
	pendingSet bool

	progress driven.ProgressFunc
}

// NewIndex creates an empty, never-indexed index.
func NewIndex() *Index {
	return &Index{}
}

// SetProgress installs a listener for build stage transitions.
// Must be called before the first IndexDocuments call.
func (ix *Index) SetProgress(fn driven.ProgressFunc) {
	ix.progress = fn
}

// IndexDocuments replaces the entire index with a fresh generation.
// See driven.DocumentIndex for the overlap policy.
func (ix *Index) IndexDocuments(ctx context.Context, docs []domain.Document) error {
	ix.mu.Lock()
	if ix.building {
		if ix.pendingSet {
			// A request is already queued; this one is redundant.
			logger.Debug("Index request dropped: one already queued")
			ix.mu.Unlock()
			return nil
		}
		logger.Debug("Index build in flight, queueing request (%d documents)", len(docs))
		ix.pending = docs
		ix.pendingSet = true
		ix.mu.Unlock()
		return nil
	}
	ix.building = true
	ix.mu.Unlock()

	batch := docs
	for {
		err := ix.buildAndSwap(ctx, batch)

		ix.mu.Lock()
		if ix.pendingSet {
			batch = ix.pending
			ix.pending = nil
			ix.pendingSet = false
			ix.mu.Unlock()
			if err != nil {
				logger.Warn("Index build failed, continuing with queued request: %v", err)
			}
			continue
		}
		ix.building = false
		ix.mu.Unlock()
		return err
	}
}

// buildAndSwap constructs a new generation and makes it visible. The
// previous generation stays queryable until the swap; its structures are
// released for collection the moment the assignment happens.
func (ix *Index) buildAndSwap(ctx context.Context, docs []domain.Document) error {
	logger.Section("Index Build")
	ix.notify(domain.IndexProgress{Stage: domain.StageScanning})

	gen := &generation{
		id:   uuid.New().String(),
		docs: make(map[string]domain.Document, len(docs)),
		fields: map[string]postings{
			fieldTitle:       {},
			fieldContent:     {},
			fieldTags:        {},
			fieldFrontmatter: {},
		},
	}

	// Validation pass: collect the accepted set, count the rest.
	accepted := make([]domain.Document, 0, len(docs))
	for i := range docs {
		if err := ctx.Err(); err != nil {
			ix.notify(domain.IndexProgress{Stage: domain.StageError, Message: err.Error()})
			return fmt.Errorf("index build cancelled: %w", err)
		}
		if err := validateDocument(gen.docs, docs[i]); err != nil {
			gen.failed++
			logger.Debug("Excluding %s: %v", docs[i].Path, err)
			continue
		}
		gen.docs[docs[i].ID] = docs[i]
		accepted = append(accepted, docs[i])
	}

	ix.notify(domain.IndexProgress{
		Stage:         domain.StageParsing,
		DocumentCount: len(accepted),
		FailedCount:   gen.failed,
	})

	// Tokenization pass: fill the per-field postings.
	for i := range accepted {
		if err := ctx.Err(); err != nil {
			ix.notify(domain.IndexProgress{Stage: domain.StageError, Message: err.Error()})
			return fmt.Errorf("index build cancelled: %w", err)
		}
		indexDocument(gen, accepted[i])
	}

	ix.mu.Lock()
	ix.gen = gen
	ix.mu.Unlock()

	logger.Info("Index generation %s: %d documents, %d failed", gen.id, len(gen.docs), gen.failed)
	ix.notify(domain.IndexProgress{
		Stage:         domain.StageComplete,
		DocumentCount: len(gen.docs),
		FailedCount:   gen.failed,
	})
	return nil
}

// validateDocument rejects documents the index cannot hold: missing
// IDs, duplicate IDs within the batch, and documents with no searchable
// text in any field.
func validateDocument(seen map[string]domain.Document, doc domain.Document) error {
	if doc.ID == "" {
		return domain.ErrMissingDocumentID
	}
	if _, dup := seen[doc.ID]; dup {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateDocument, doc.ID)
	}
	if strings.TrimSpace(doc.Title) == "" &&
		strings.TrimSpace(doc.Content) == "" &&
		len(doc.Tags) == 0 &&
		len(doc.Frontmatter) == 0 {
		return domain.ErrEmptyDocument
	}
	return nil
}

// indexDocument adds one document's tokens to every field structure.
func indexDocument(gen *generation, doc domain.Document) {
	addTokens(gen.fields[fieldTitle], doc.ID, tokenizeField(doc.Title))

	sample := domain.SampleContent(doc.Content)
	addTokens(gen.fields[fieldContent], doc.ID, tokenizeField(sample))

	addTokens(gen.fields[fieldTags], doc.ID, doc.Tags)

	for key, value := range doc.Frontmatter {
		addTokens(gen.fields[fieldFrontmatter], doc.ID, tokenizeField(key))
		addTokens(gen.fields[fieldFrontmatter], doc.ID, tokenizeField(value))
	}
}

// tokenizeField lowercases and splits a field on whitespace.
func tokenizeField(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// addTokens records doc under every forward prefix of each token.
func addTokens(p postings, docID string, tokens []string) {
	for _, token := range tokens {
		token = strings.ToLower(token)
		if token == "" {
			continue
		}
		runes := []rune(token)
		if len(runes) > maxTokenLen {
			runes = runes[:maxTokenLen]
		}
		// Index the token and all prefixes down to minPrefixLen, so a
		// query for "plan" matches a note containing "planning".
		for end := len(runes); end >= minPrefixLen; end-- {
			insert(p, string(runes[:end]), docID)
		}
		if len(runes) < minPrefixLen {
			insert(p, string(runes), docID)
		}
	}
}

func insert(p postings, token, docID string) {
	set, ok := p[token]
	if !ok {
		set = make(map[string]struct{})
		p[token] = set
	}
	set[docID] = struct{}{}
}

// Search returns the IDs of documents matching any of the given terms
// in any field. It never fails; a never-built index yields an empty set.
func (ix *Index) Search(terms []string) map[string]struct{} {
	ix.mu.RLock()
	gen := ix.gen
	ix.mu.RUnlock()

	result := make(map[string]struct{})
	if gen == nil {
		return result
	}

	for _, term := range terms {
		for _, token := range tokenizeField(term) {
			runes := []rune(token)
			if len(runes) > maxTokenLen {
				runes = runes[:maxTokenLen]
			}
			token = string(runes)
			for _, p := range gen.fields {
				for id := range p[token] {
					result[id] = struct{}{}
				}
			}
		}
	}
	return result
}

// Get returns the document with the given ID from the current generation.
func (ix *Index) Get(id string) (domain.Document, bool) {
	ix.mu.RLock()
	gen := ix.gen
	ix.mu.RUnlock()

	if gen == nil {
		return domain.Document{}, false
	}
	doc, ok := gen.docs[id]
	return doc, ok
}

// All returns every document in the current generation.
func (ix *Index) All() []domain.Document {
	ix.mu.RLock()
	gen := ix.gen
	ix.mu.RUnlock()

	if gen == nil {
		return nil
	}
	docs := make([]domain.Document, 0, len(gen.docs))
	for id := range gen.docs {
		docs = append(docs, gen.docs[id])
	}
	return docs
}

// Status returns a snapshot of the current generation.
func (ix *Index) Status() domain.IndexStatus {
	ix.mu.RLock()
	gen := ix.gen
	ix.mu.RUnlock()

	if gen == nil {
		return domain.IndexStatus{}
	}
	return domain.IndexStatus{
		IsIndexed:     true,
		DocumentCount: len(gen.docs),
		FailedCount:   gen.failed,
		Generation:    gen.id,
	}
}

func (ix *Index) notify(p domain.IndexProgress) {
	if ix.progress != nil {
		ix.progress(p)
	}
}
