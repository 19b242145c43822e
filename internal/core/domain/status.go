package domain

// IndexStatus is a point-in-time snapshot of the current index generation.
type IndexStatus struct {
	// IsIndexed reports whether at least one index build has completed.
	IsIndexed bool

	// DocumentCount is the number of documents in the current generation.
	DocumentCount int

	// FailedCount is the number of documents excluded from the current
	// generation because they could not be parsed or validated.
	FailedCount int

	// Generation identifies the current index generation.
	Generation string
}

// IndexStage identifies a phase of an index build, reported through the
// progress notification channel.
type IndexStage string

// Index build stages.
const (
	// StageScanning means documents are being collected and validated.
	StageScanning IndexStage = "scanning"

	// StageParsing means per-field structures are being tokenized and built.
	StageParsing IndexStage = "parsing"

	// StageComplete means the new generation has been swapped in.
	StageComplete IndexStage = "complete"

	// StageError means the build failed catastrophically and no new
	// generation became visible.
	StageError IndexStage = "error"
)

// IsValid returns true if the stage is recognised.
func (s IndexStage) IsValid() bool {
	switch s {
	case StageScanning, StageParsing, StageComplete, StageError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s IndexStage) String() string {
	return string(s)
}

// IndexProgress is the payload pushed to progress listeners during an
// index build. How it is displayed is up to the consumer.
type IndexProgress struct {
	// Stage is the build phase being reported.
	Stage IndexStage

	// DocumentCount is the number of documents accepted so far.
	DocumentCount int

	// FailedCount is the number of documents excluded so far.
	FailedCount int

	// Message carries optional human-readable detail, e.g. the reason
	// for an error stage or a note that defaults were substituted.
	Message string
}

// ServiceState is the retrieval service's lifecycle state.
type ServiceState string

// Service states. Idle is initial; there is no terminal state — the
// service remains queryable indefinitely across repeated re-indexes.
const (
	StateIdle     ServiceState = "idle"
	StateIndexing ServiceState = "indexing"
	StateIndexed  ServiceState = "indexed"
	StateError    ServiceState = "error"
)

// String returns the string representation.
func (s ServiceState) String() string {
	return string(s)
}
