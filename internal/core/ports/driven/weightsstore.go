package driven

import "github.com/JacobKramerDK/noteprep/internal/core/domain"

// WeightsStore persists relevance weight configuration.
// Backed by a TOML file in the noteprep config directory.
type WeightsStore interface {
	// Load returns the stored weights, or domain.ErrNotFound when no
	// weights have been saved.
	Load() (domain.RelevanceWeights, error)

	// Save stores the given weights.
	Save(w domain.RelevanceWeights) error
}
