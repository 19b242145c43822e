package services

import (
	"math"
	"strings"
	"time"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
	"github.com/JacobKramerDK/noteprep/internal/textmatch"
)

// matchedFieldThreshold is the minimum sub-score for a signal to be
// reported in ContextMatch.MatchedFields.
const matchedFieldThreshold = 0.05

// recencyHalfLife is the document age at which the recency bonus has
// decayed to 0.5. The decay is exponential, monotonic and bounded to
// [0,1].
const recencyHalfLife = 30 * 24 * time.Hour

// Matched field names reported on ContextMatch.
const (
	matchTitle     = "title"
	matchContent   = "content"
	matchTags      = "tags"
	matchAttendees = "attendees"
)

// scorer computes relevance scores for one query context. The clock is
// injectable for deterministic tests.
type scorer struct {
	now func() time.Time
}

// score combines the per-field sub-scores into one bounded relevance
// score plus the names of the signals that contributed.
func (sc scorer) score(
	doc domain.Document,
	query domain.QueryContext,
	weights domain.RelevanceWeights,
	inCandidateSet bool,
) (float64, []string) {
	sample := domain.SampleContent(doc.Content)
	topics := strings.Join(query.Topics, " ")

	titleSim := textmatch.Jaccard(doc.Title, query.Title)
	contentSim := textmatch.Jaccard(sample, strings.TrimSpace(query.Title+" "+topics))
	tagOverlap := tagOverlap(doc.Tags, topics)

	attendeeMatch := 0.0
	if attendeeAppears(doc, sample, query.Attendees) {
		attendeeMatch = 1.0
	}

	searchBonus := 0.0
	if inCandidateSet {
		searchBonus = 1.0
	}

	score := weights.Title*titleSim +
		weights.Content*contentSim +
		weights.Tags*tagOverlap +
		weights.Attendees*attendeeMatch +
		weights.Recency*recencyBonus(sc.now(), doc.LastModified) +
		weights.SearchBonus*searchBonus

	score = clamp01(score)

	var matched []string
	if titleSim > matchedFieldThreshold {
		matched = append(matched, matchTitle)
	}
	if contentSim > matchedFieldThreshold {
		matched = append(matched, matchContent)
	}
	if tagOverlap > matchedFieldThreshold {
		matched = append(matched, matchTags)
	}
	if attendeeMatch > matchedFieldThreshold {
		matched = append(matched, matchAttendees)
	}

	return score, matched
}

// tagOverlap is the share of the document's tags that appear among the
// query topic tokens. A document without tags scores 0.
func tagOverlap(tags []string, topics string) float64 {
	if len(tags) == 0 {
		return 0
	}
	topicTokens := textmatch.TokenSet(topics)
	if len(topicTokens) == 0 {
		return 0
	}
	hits := 0
	for _, tag := range tags {
		if _, ok := topicTokens[strings.ToLower(tag)]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(tags))
}

// attendeeAppears reports whether any attendee name occurs in the
// document's content sample or frontmatter values. Matching is
// case-insensitive and tolerant of "First Last <email>" calendar forms.
func attendeeAppears(doc domain.Document, sample string, attendees []string) bool {
	if len(attendees) == 0 {
		return false
	}

	haystack := strings.ToLower(sample)
	var front strings.Builder
	for key, value := range doc.Frontmatter {
		front.WriteString(strings.ToLower(key))
		front.WriteByte(' ')
		front.WriteString(strings.ToLower(value))
		front.WriteByte(' ')
	}
	frontmatter := front.String()

	for _, attendee := range attendees {
		name := NormalizeAttendee(attendee)
		if name == "" {
			continue
		}
		if strings.Contains(haystack, name) || strings.Contains(frontmatter, name) {
			return true
		}
	}
	return false
}

// NormalizeAttendee extracts a lowercased display name from a calendar
// attendee entry. "Sarah Chen <sarah@example.com>" becomes "sarah chen";
// a bare address falls back to the address itself.
func NormalizeAttendee(attendee string) string {
	name := attendee
	if i := strings.Index(name, "<"); i >= 0 {
		bracketed := name[i:]
		name = strings.TrimSpace(name[:i])
		if name == "" {
			// Bare "<addr@example.com>" form.
			name = strings.Trim(bracketed, "<> ")
		}
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// recencyBonus decays exponentially with document age: 1.0 for a
// document modified now, 0.5 at one half-life, approaching 0 for very
// old documents. Future timestamps clamp to 1.0.
func recencyBonus(now, lastModified time.Time) float64 {
	age := now.Sub(lastModified)
	if age <= 0 {
		return 1.0
	}
	halfLives := float64(age) / float64(recencyHalfLife)
	return clamp01(math.Exp2(-halfLives))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
