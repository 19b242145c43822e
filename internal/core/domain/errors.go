package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Classification is
// decided at the point of origin with errors.Is, never inferred from
// message text downstream.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotIndexed indicates no index generation has been built yet.
	// Retrieval resolves this by returning an empty match list, never
	// by failing the caller.
	ErrNotIndexed = errors.New("index not built")

	// ErrInvalidWeights indicates out-of-range or malformed relevance
	// weights. Resolved by substituting the documented defaults.
	ErrInvalidWeights = errors.New("invalid relevance weights")

	// ErrDuplicateDocument indicates two documents in one batch share
	// an ID. The later document is excluded and counted as failed.
	ErrDuplicateDocument = errors.New("duplicate document id")

	// ErrMissingDocumentID indicates a document arrived without an ID.
	ErrMissingDocumentID = errors.New("missing document id")

	// ErrEmptyDocument indicates a document with no searchable text in
	// any field.
	ErrEmptyDocument = errors.New("document has no searchable text")
)
