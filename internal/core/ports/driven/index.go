package driven

import (
	"context"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

// DocumentIndex maintains a queryable in-memory structure over the
// title, content, tags and frontmatter fields of a document collection.
//
// The index is exclusively owned by IndexDocuments: all other operations
// treat the current generation as read-only. A build replaces the
// previous generation in one atomic swap, never by in-place mutation;
// readers see the old generation until the new one is complete.
type DocumentIndex interface {
	// IndexDocuments replaces the entire index with a fresh generation
	// built from docs. Per-document validation failures are counted and
	// excluded without aborting the batch.
	//
	// Overlapping invocations are serialised: a call arriving while a
	// build is in flight is queued to run immediately afterwards; if a
	// request is already queued the new call is dropped as redundant.
	// Queued and dropped calls return nil.
	IndexDocuments(ctx context.Context, docs []domain.Document) error

	// Search returns the IDs of documents whose title, content, tags or
	// frontmatter contain a prefix match for any of the given terms.
	// It never fails; an empty or never-built index yields an empty set.
	Search(terms []string) map[string]struct{}

	// Get returns the document with the given ID from the current
	// generation.
	Get(id string) (domain.Document, bool)

	// All returns every document in the current generation, in
	// unspecified order.
	All() []domain.Document

	// Status returns a snapshot of the current generation.
	Status() domain.IndexStatus
}
