package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTokenize_Basic tests lowercasing and whitespace splitting
func TestTokenize_Basic(t *testing.T) {
	tokens := Tokenize("  Quarterly  Planning\tMeeting\n")
	assert.Equal(t, []string{"quarterly", "planning", "meeting"}, tokens)
}

// TestTokenize_Empty tests empty and whitespace-only input
func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t\n  "))
}

// TestTokenize_KeepsDuplicates tests that duplicates survive tokenization
func TestTokenize_KeepsDuplicates(t *testing.T) {
	tokens := Tokenize("go go go")
	assert.Len(t, tokens, 3)
}

// TestTokenSet_Dedupes tests that the set form removes duplicates
func TestTokenSet_Dedupes(t *testing.T) {
	set := TokenSet("Roadmap roadmap ROADMAP review")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "roadmap")
	assert.Contains(t, set, "review")
}

// TestJaccard_Identical tests that identical non-empty strings score 1.0
func TestJaccard_Identical(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard("planning sync", "planning sync"))
	assert.Equal(t, 1.0, Jaccard("Planning", "planning"))
}

// TestJaccard_Disjoint tests that disjoint token sets score 0.0
func TestJaccard_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard("alpha beta", "gamma delta"))
}

// TestJaccard_Partial tests a known partial overlap
func TestJaccard_Partial(t *testing.T) {
	// {q4, planning, meeting} vs {planning, sync}: 1 shared, 4 total.
	assert.InDelta(t, 0.25, Jaccard("Q4 Planning Meeting", "Planning Sync"), 1e-9)
}

// TestJaccard_BothEmpty tests the documented empty-vs-empty constant
func TestJaccard_BothEmpty(t *testing.T) {
	assert.Equal(t, EmptyJaccard, Jaccard("", ""))
	assert.Equal(t, EmptyJaccard, Jaccard("   ", "\t"))
}

// TestJaccard_OneEmpty tests that a single empty side scores 0.0
func TestJaccard_OneEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard("", "planning"))
	assert.Equal(t, 0.0, Jaccard("planning", ""))
}

// TestJaccard_Bounded tests that results stay within [0,1]
func TestJaccard_Bounded(t *testing.T) {
	cases := [][2]string{
		{"a b c d e", "c d e f g"},
		{"one", "one two three four"},
		{"x", "x"},
	}
	for _, c := range cases {
		score := Jaccard(c[0], c[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
