package mcp

import (
	"context"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

// mockContextService is a mock implementation of driving.ContextService.
type mockContextService struct {
	matches []domain.ContextMatch
	status  domain.IndexStatus
	state   domain.ServiceState
	err     error
}

func (m *mockContextService) FindRelevantContext(
	_ context.Context,
	_ domain.QueryContext,
	_ domain.RelevanceWeights,
) ([]domain.ContextMatch, error) {
	return m.matches, m.err
}

func (m *mockContextService) Reindex(_ context.Context, _ []domain.Document) error {
	return m.err
}

func (m *mockContextService) IndexStatus() domain.IndexStatus {
	return m.status
}

func (m *mockContextService) State() domain.ServiceState {
	return m.state
}
