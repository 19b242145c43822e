package domain

// RelevanceWeights controls how much each scoring factor contributes to
// the combined relevance score. Weights are supplied per call (or
// defaulted) and treated as an immutable value; the engine never mutates
// a weights value in place.
type RelevanceWeights struct {
	// Title weights the title-to-title similarity.
	Title float64

	// Content weights the content-to-query similarity.
	Content float64

	// Tags weights the tag/topic overlap.
	Tags float64

	// Attendees weights the attendee-name match signal.
	Attendees float64

	// SearchBonus weights membership in the index candidate set.
	SearchBonus float64

	// Recency weights the modification-time decay bonus.
	Recency float64
}

// DefaultWeights returns the documented default weight set. The defaults
// sum to 1.0 so a perfect match on every signal yields a score of 1.0
// without clamping.
func DefaultWeights() RelevanceWeights {
	return RelevanceWeights{
		Title:       0.30,
		Content:     0.25,
		Tags:        0.20,
		Attendees:   0.15,
		SearchBonus: 0.05,
		Recency:     0.05,
	}
}

// IsValid reports whether every weight is finite and within [0,1].
// Out-of-range weights are never applied; callers substitute defaults.
func (w RelevanceWeights) IsValid() bool {
	for _, v := range []float64{w.Title, w.Content, w.Tags, w.Attendees, w.SearchBonus, w.Recency} {
		if v != v { // NaN
			return false
		}
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Sanitize returns w unchanged when valid, otherwise the default set.
// The second return value reports whether a substitution occurred.
func (w RelevanceWeights) Sanitize() (RelevanceWeights, bool) {
	if w.IsValid() {
		return w, false
	}
	return DefaultWeights(), true
}

// IsZero reports whether all weights are zero, which callers treat the
// same as "not supplied".
func (w RelevanceWeights) IsZero() bool {
	return w == RelevanceWeights{}
}
