package driving

import (
	"context"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

// ContextService provides meeting-context retrieval to external actors.
// Retrieval is best-effort: an empty match list is a normal outcome,
// never an error.
type ContextService interface {
	// FindRelevantContext returns documents relevant to the given
	// meeting context, sorted by descending relevance score, capped to
	// the configured maximum. A zero weights value means "use stored or
	// default weights".
	FindRelevantContext(ctx context.Context, query domain.QueryContext, weights domain.RelevanceWeights) ([]domain.ContextMatch, error)

	// Reindex replaces the index with a fresh build over docs.
	Reindex(ctx context.Context, docs []domain.Document) error

	// IndexStatus returns the current index snapshot.
	IndexStatus() domain.IndexStatus

	// State returns the service lifecycle state.
	State() domain.ServiceState
}
