package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_HasTag(t *testing.T) {
	doc := Document{Tags: []string{"meeting", "project/alpha"}}

	assert.True(t, doc.HasTag("meeting"))
	assert.True(t, doc.HasTag("project/alpha"))
	assert.False(t, doc.HasTag("missing"))
	assert.False(t, Document{}.HasTag("meeting"))
}

func TestQueryContext_IsEmpty(t *testing.T) {
	assert.True(t, QueryContext{}.IsEmpty())
	assert.False(t, QueryContext{Title: "Standup"}.IsEmpty())
	assert.False(t, QueryContext{Attendees: []string{"Sarah Chen"}}.IsEmpty())
	assert.False(t, QueryContext{Topics: []string{"roadmap"}}.IsEmpty())
}

func TestIndexStage_IsValid(t *testing.T) {
	for _, stage := range []IndexStage{StageScanning, StageParsing, StageComplete, StageError} {
		assert.True(t, stage.IsValid(), string(stage))
	}
	assert.False(t, IndexStage("unknown").IsValid())
	assert.False(t, IndexStage("").IsValid())
}
