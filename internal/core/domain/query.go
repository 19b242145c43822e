package domain

// QueryContext is the meeting-derived search input. It is constructed by
// the caller per query and never mutated by the engine.
type QueryContext struct {
	// Title is the meeting title.
	Title string

	// Attendees holds attendee names, in calendar order. Entries may be
	// plain names or "First Last <email>" forms.
	Attendees []string

	// Topics holds free-form topic strings, in calendar order.
	Topics []string
}

// IsEmpty reports whether the context carries no usable search signal.
func (q QueryContext) IsEmpty() bool {
	return q.Title == "" && len(q.Attendees) == 0 && len(q.Topics) == 0
}

// ContextMatch is a scored, ranked association between a query and a
// document. Matches are produced fresh per query and never cached beyond
// the single response.
type ContextMatch struct {
	// Document is the matched note.
	Document Document

	// RelevanceScore is the combined relevance score, always in [0,1].
	RelevanceScore float64

	// MatchedFields names the field signals that contributed meaningfully
	// to the score: "title", "content", "tags" and/or "attendees".
	MatchedFields []string

	// Snippets holds short excerpts around matched terms, for display.
	Snippets []string
}
