package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/JacobKramerDK/noteprep/internal/adapters/driven/config/file"
	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

type mockContextService struct {
	lastQuery   domain.QueryContext
	lastWeights domain.RelevanceWeights
	reindexed   [][]domain.Document
}

func (m *mockContextService) FindRelevantContext(_ context.Context, query domain.QueryContext, weights domain.RelevanceWeights) ([]domain.ContextMatch, error) {
	m.lastQuery = query
	m.lastWeights = weights
	return []domain.ContextMatch{
		{
			Document:       domain.Document{ID: "notes/q4-planning.md", Title: "Q4 Planning", Path: "/vault/notes/q4-planning.md"},
			RelevanceScore: 0.82,
			MatchedFields:  []string{"title", "attendees"},
			Snippets:       []string{"Discussed the Q4 roadmap with Sarah."},
		},
		{
			Document:       domain.Document{ID: "notes/retro.md", Title: "Sprint Retro", Path: "/vault/notes/retro.md"},
			RelevanceScore: 0.41,
			MatchedFields:  []string{"content"},
		},
	}, nil
}

func (m *mockContextService) Reindex(_ context.Context, docs []domain.Document) error {
	m.reindexed = append(m.reindexed, docs)
	return nil
}

func (m *mockContextService) IndexStatus() domain.IndexStatus {
	return domain.IndexStatus{IsIndexed: true, DocumentCount: 3, FailedCount: 1}
}

func (m *mockContextService) State() domain.ServiceState {
	return domain.StateIndexed
}

type mockContextServiceError struct {
	mockContextService
}

func (m *mockContextServiceError) FindRelevantContext(context.Context, domain.QueryContext, domain.RelevanceWeights) ([]domain.ContextMatch, error) {
	return nil, errors.New("retrieval failed")
}

type mockContextServiceEmpty struct {
	mockContextService
}

func (m *mockContextServiceEmpty) FindRelevantContext(context.Context, domain.QueryContext, domain.RelevanceWeights) ([]domain.ContextMatch, error) {
	return nil, nil
}

func (m *mockContextServiceEmpty) IndexStatus() domain.IndexStatus {
	return domain.IndexStatus{}
}

// setupTestServices swaps the package-level wiring for mocks so
// commands run without touching the filesystem.
func setupTestServices() func() {
	oldService := contextService
	contextService = &mockContextService{}
	return func() {
		contextService = oldService
	}
}

// setupTestStore points the settings store at a throwaway directory.
func setupTestStore(t *testing.T) func() {
	t.Helper()
	oldStore := settingsStore
	store, err := file.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	settingsStore = store
	return func() {
		settingsStore = oldStore
	}
}
