// Package domain defines the core business entities for noteprep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An indexed note with text and structured metadata
//   - QueryContext: Meeting-derived search input (title, attendees, topics)
//   - RelevanceWeights: Configurable multipliers for scoring factors
//   - ContextMatch: A scored, ranked query/document association
//   - IndexStatus: Snapshot of the current index generation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
