package driven

import (
	"context"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

// Vault supplies parsed documents from a note collection.
// Implementations stream documents as they are parsed; per-note parse
// failures are reported on the failure channel and never abort the scan.
type Vault interface {
	// Scan walks the vault and emits one Document per parseable note.
	// Both channels are closed when the scan completes or ctx is
	// cancelled.
	Scan(ctx context.Context) (<-chan domain.Document, <-chan domain.DocumentFailure)
}
