package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

// FindContextInput is the input schema for the find_relevant_context tool.
type FindContextInput struct {
	Title     string   `json:"title" jsonschema:"the meeting title"`
	Attendees []string `json:"attendees,omitempty" jsonschema:"attendee names, plain or 'First Last <email>' form"`
	Topics    []string `json:"topics,omitempty" jsonschema:"meeting topics or agenda keywords"`
}

// FindContextOutput is the output schema for the find_relevant_context tool.
type FindContextOutput struct {
	Matches []ContextMatchOutput `json:"matches"`
	Count   int                  `json:"count"`
}

// ContextMatchOutput represents a single ranked match.
type ContextMatchOutput struct {
	DocumentID    string   `json:"document_id"`
	Title         string   `json:"title"`
	Path          string   `json:"path"`
	Score         float64  `json:"score"`
	MatchedFields []string `json:"matched_fields,omitempty"`
	Snippets      []string `json:"snippets,omitempty"`
}

// IndexStatusInput is the (empty) input schema for the index_status tool.
type IndexStatusInput struct{}

// IndexStatusOutput is the output schema for the index_status tool.
type IndexStatusOutput struct {
	IsIndexed     bool   `json:"is_indexed"`
	DocumentCount int    `json:"document_count"`
	FailedCount   int    `json:"failed_count"`
	State         string `json:"state"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_relevant_context",
		Description: "Find notes relevant to an upcoming meeting, ranked by relevance",
	}, s.handleFindContext)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "index_status",
		Description: "Report how many notes are currently indexed",
	}, s.handleIndexStatus)
}

// handleFindContext handles the find_relevant_context tool invocation.
func (s *Server) handleFindContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindContextInput,
) (*mcp.CallToolResult, FindContextOutput, error) {
	query := domain.QueryContext{
		Title:     input.Title,
		Attendees: input.Attendees,
		Topics:    input.Topics,
	}
	if query.IsEmpty() {
		return nil, FindContextOutput{}, fmt.Errorf("%w: a title, attendee or topic is required", domain.ErrInvalidInput)
	}

	matches, err := s.ports.Context.FindRelevantContext(ctx, query, domain.RelevanceWeights{})
	if err != nil {
		return nil, FindContextOutput{}, err
	}

	output := FindContextOutput{
		Matches: make([]ContextMatchOutput, len(matches)),
		Count:   len(matches),
	}

	for i := range matches {
		output.Matches[i] = ContextMatchOutput{
			DocumentID:    matches[i].Document.ID,
			Title:         matches[i].Document.Title,
			Path:          matches[i].Document.Path,
			Score:         matches[i].RelevanceScore,
			MatchedFields: matches[i].MatchedFields,
			Snippets:      matches[i].Snippets,
		}
	}

	return nil, output, nil
}

// handleIndexStatus handles the index_status tool invocation.
func (s *Server) handleIndexStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ IndexStatusInput,
) (*mcp.CallToolResult, IndexStatusOutput, error) {
	status := s.ports.Context.IndexStatus()

	return nil, IndexStatusOutput{
		IsIndexed:     status.IsIndexed,
		DocumentCount: status.DocumentCount,
		FailedCount:   status.FailedCount,
		State:         s.ports.Context.State().String(),
	}, nil
}
