package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

func TestServer_handleFindContext(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked matches", func(t *testing.T) {
		mockContext := &mockContextService{
			matches: []domain.ContextMatch{
				{
					Document: domain.Document{
						ID:    "meetings/q4-planning.md",
						Title: "Q4 Planning Meeting",
						Path:  "/vault/meetings/q4-planning.md",
					},
					RelevanceScore: 0.42,
					MatchedFields:  []string{"title", "attendees"},
					Snippets:       []string{"Sarah Chen discussed roadmap"},
				},
			},
		}

		ports := &Ports{Context: mockContext}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := FindContextInput{
			Title:     "Planning Sync",
			Attendees: []string{"Sarah Chen"},
		}
		_, output, err := server.handleFindContext(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Matches, 1)
		assert.Equal(t, "meetings/q4-planning.md", output.Matches[0].DocumentID)
		assert.Equal(t, "Q4 Planning Meeting", output.Matches[0].Title)
		assert.Equal(t, 0.42, output.Matches[0].Score)
		assert.Contains(t, output.Matches[0].MatchedFields, "attendees")
		assert.NotEmpty(t, output.Matches[0].Snippets)
	})

	t.Run("empty match list is not an error", func(t *testing.T) {
		ports := &Ports{Context: &mockContextService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleFindContext(ctx, nil, FindContextInput{Title: "anything"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Matches)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		ports := &Ports{Context: &mockContextService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleFindContext(ctx, nil, FindContextInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("propagates service failure", func(t *testing.T) {
		ports := &Ports{Context: &mockContextService{err: errors.New("retrieval failed")}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleFindContext(ctx, nil, FindContextInput{Title: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "retrieval failed")
	})
}

func TestServer_handleIndexStatus(t *testing.T) {
	mockContext := &mockContextService{
		status: domain.IndexStatus{IsIndexed: true, DocumentCount: 12, FailedCount: 1},
		state:  domain.StateIndexed,
	}

	server, err := NewServer(&Ports{Context: mockContext})
	require.NoError(t, err)

	_, output, err := server.handleIndexStatus(context.Background(), nil, IndexStatusInput{})
	require.NoError(t, err)
	assert.True(t, output.IsIndexed)
	assert.Equal(t, 12, output.DocumentCount)
	assert.Equal(t, 1, output.FailedCount)
	assert.Equal(t, "indexed", output.State)
}

func TestNewServer_RequiresContextService(t *testing.T) {
	_, err := NewServer(&Ports{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingContextService)
}
