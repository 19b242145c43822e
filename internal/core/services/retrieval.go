// Package services implements the driving ports: the retrieval
// orchestrator plus its relevance scoring and snippet extraction
// helpers.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
	"github.com/JacobKramerDK/noteprep/internal/core/ports/driven"
	"github.com/JacobKramerDK/noteprep/internal/core/ports/driving"
	"github.com/JacobKramerDK/noteprep/internal/logger"
	"github.com/JacobKramerDK/noteprep/internal/textmatch"
)

// Ensure RetrievalService implements the interface.
var _ driving.ContextService = (*RetrievalService)(nil)

// Retrieval defaults. Adjustable per instance via the Set methods.
const (
	defaultMinScore      = 0.1
	defaultMaxResults    = 10
	defaultMinCandidates = 5
)

// RetrievalService orchestrates context retrieval: candidate lookup in
// the document index, per-candidate relevance scoring, threshold
// filtering, ranking and snippet attachment. Retrieval is advisory and
// best-effort; it degrades to an empty match list rather than failing.
type RetrievalService struct {
	index        driven.DocumentIndex
	weightsStore driven.WeightsStore

	mu        sync.RWMutex
	state     domain.ServiceState
	listeners []driven.ProgressFunc

	minScore      float64
	maxResults    int
	minCandidates int

	scorer scorer
}

// NewRetrievalService creates a retrieval service over the given index.
func NewRetrievalService(index driven.DocumentIndex) *RetrievalService {
	return &RetrievalService{
		index:         index,
		state:         domain.StateIdle,
		minScore:      defaultMinScore,
		maxResults:    defaultMaxResults,
		minCandidates: defaultMinCandidates,
		scorer:        scorer{now: time.Now},
	}
}

// SetWeightsStore sets the optional store that supplies weights when a
// caller does not pass any.
func (s *RetrievalService) SetWeightsStore(store driven.WeightsStore) {
	s.weightsStore = store
}

// SetMinScore overrides the minimum relevance score a match must reach.
func (s *RetrievalService) SetMinScore(min float64) {
	s.minScore = min
}

// SetMaxResults overrides the result cap.
func (s *RetrievalService) SetMaxResults(max int) {
	if max > 0 {
		s.maxResults = max
	}
}

// SetClock overrides the scoring clock. Useful for testing.
func (s *RetrievalService) SetClock(now func() time.Time) {
	s.scorer = scorer{now: now}
}

// Notify registers a listener for index progress and weight
// substitution notices. Listeners are invoked synchronously and must
// not block.
func (s *RetrievalService) Notify(fn driven.ProgressFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// HandleProgress receives stage transitions from the index and fans
// them out to registered listeners, tracking the service state machine.
// Wire it as the index's progress function.
func (s *RetrievalService) HandleProgress(p domain.IndexProgress) {
	s.mu.Lock()
	switch p.Stage {
	case domain.StageScanning, domain.StageParsing:
		s.state = domain.StateIndexing
	case domain.StageComplete:
		s.state = domain.StateIndexed
	case domain.StageError:
		s.state = domain.StateError
	}
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(p)
	}
}

// State returns the service lifecycle state.
func (s *RetrievalService) State() domain.ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Reindex replaces the index with a fresh build over docs.
// Overlapping calls follow the index's queue-then-drop policy and are
// not an error.
func (s *RetrievalService) Reindex(ctx context.Context, docs []domain.Document) error {
	s.setState(domain.StateIndexing)

	if err := s.index.IndexDocuments(ctx, docs); err != nil {
		s.setState(domain.StateError)
		return fmt.Errorf("reindex: %w", err)
	}

	s.setState(domain.StateIndexed)
	return nil
}

// IndexStatus returns the current index snapshot.
func (s *RetrievalService) IndexStatus() domain.IndexStatus {
	return s.index.Status()
}

// FindRelevantContext returns documents relevant to the given meeting
// context, sorted by descending relevance with the documented
// tie-break, capped to the configured maximum. Calling before any index
// build completes yields an empty list, never an error.
func (s *RetrievalService) FindRelevantContext(
	ctx context.Context, query domain.QueryContext, weights domain.RelevanceWeights,
) ([]domain.ContextMatch, error) {
	logger.Section("Context Retrieval")
	logger.Debug("Query: title=%q, attendees=%d, topics=%d", query.Title, len(query.Attendees), len(query.Topics))

	status := s.index.Status()
	if !status.IsIndexed {
		logger.Debug("Index not built yet, returning no matches")
		return []domain.ContextMatch{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := s.resolveWeights(weights)

	terms := queryTerms(query)
	candidates := s.index.Search(terms)
	logger.Debug("Candidate set: %d documents for %d terms", len(candidates), len(terms))

	pool := make([]domain.Document, 0, len(candidates))
	for id := range candidates {
		if doc, ok := s.index.Get(id); ok {
			pool = append(pool, doc)
		}
	}

	// When term search finds little, sweep the whole collection for
	// attendee-name matches so relevant notes are not missed purely
	// due to tokenization gaps.
	if len(pool) < s.minCandidates && len(query.Attendees) > 0 {
		added := 0
		for _, doc := range s.index.All() {
			if _, already := candidates[doc.ID]; already {
				continue
			}
			if attendeeAppears(doc, domain.SampleContent(doc.Content), query.Attendees) {
				pool = append(pool, doc)
				added++
			}
		}
		logger.Debug("Attendee fallback added %d documents", added)
	}

	matches := make([]domain.ContextMatch, 0, len(pool))
	for _, doc := range pool {
		_, inCandidates := candidates[doc.ID]
		score, matchedFields := s.scorer.score(doc, query, w, inCandidates)
		if score < s.minScore {
			continue
		}
		matches = append(matches, domain.ContextMatch{
			Document:       doc,
			RelevanceScore: score,
			MatchedFields:  matchedFields,
		})
	}

	sortMatches(matches)
	if len(matches) > s.maxResults {
		matches = matches[:s.maxResults]
	}

	excerptTerms := snippetTerms(query)
	for i := range matches {
		matches[i].Snippets = extractSnippets(matches[i].Document, excerptTerms)
	}

	logger.Info("Retrieval complete: %d matches", len(matches))
	return matches, nil
}

// resolveWeights picks the effective weight set: caller-supplied,
// stored, or default. Invalid weights are replaced with defaults and
// the substitution is reported through the notification channel.
func (s *RetrievalService) resolveWeights(weights domain.RelevanceWeights) domain.RelevanceWeights {
	if weights.IsZero() {
		if s.weightsStore != nil {
			stored, err := s.weightsStore.Load()
			if err == nil {
				weights = stored
			} else if !errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Loading stored weights failed: %v", err)
			}
		}
		if weights.IsZero() {
			return domain.DefaultWeights()
		}
	}

	sanitized, substituted := weights.Sanitize()
	if substituted {
		logger.Warn("Invalid relevance weights, using defaults")
		// Out-of-band notice: no stage transition, message only.
		s.notifyListeners(domain.IndexProgress{
			Message: "invalid relevance weights replaced with defaults",
		})
	}
	return sanitized
}

// sortMatches orders by descending score; ties rank the more recently
// modified document first, then ascending document ID for determinism.
func sortMatches(matches []domain.ContextMatch) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].RelevanceScore != matches[j].RelevanceScore {
			return matches[i].RelevanceScore > matches[j].RelevanceScore
		}
		if !matches[i].Document.LastModified.Equal(matches[j].Document.LastModified) {
			return matches[i].Document.LastModified.After(matches[j].Document.LastModified)
		}
		return matches[i].Document.ID < matches[j].Document.ID
	})
}

// queryTerms builds the index search terms from title and topics.
func queryTerms(query domain.QueryContext) []string {
	terms := make([]string, 0, 1+len(query.Topics))
	if query.Title != "" {
		terms = append(terms, query.Title)
	}
	terms = append(terms, query.Topics...)
	return terms
}

// snippetTerms collects the individual words of the title and topics
// plus normalized attendee names, for locating excerpt windows.
func snippetTerms(query domain.QueryContext) []string {
	terms := textmatch.Tokenize(query.Title)
	for _, topic := range query.Topics {
		terms = append(terms, textmatch.Tokenize(topic)...)
	}
	return append(terms, attendeeTerms(query.Attendees)...)
}

// attendeeTerms normalizes attendee entries for snippet lookup.
func attendeeTerms(attendees []string) []string {
	terms := make([]string, 0, len(attendees))
	for _, a := range attendees {
		if name := NormalizeAttendee(a); name != "" {
			terms = append(terms, name)
		}
	}
	return terms
}

func (s *RetrievalService) setState(state domain.ServiceState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *RetrievalService) notifyListeners(p domain.IndexProgress) {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(p)
	}
}
