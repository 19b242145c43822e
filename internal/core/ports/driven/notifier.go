package driven

import "github.com/JacobKramerDK/noteprep/internal/core/domain"

// ProgressFunc receives stage transitions during an index build.
// Listeners are called synchronously from the indexing goroutine and
// must not block; how progress is displayed is up to the consumer.
type ProgressFunc func(domain.IndexProgress)
