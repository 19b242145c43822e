package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

var (
	findAttendees []string
	findTopics    []string
	findJSON      bool
	findIndex     bool
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	scoreStyle   = lipgloss.NewStyle().Faint(true)
	snippetStyle = lipgloss.NewStyle().PaddingLeft(6)
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var findCmd = &cobra.Command{
	Use:   "find [meeting title]",
	Short: "Find notes relevant to a meeting",
	Long: `Ranks indexed notes against a meeting described by its title,
attendees and topics, and prints the best matches with snippets.

Examples:
  noteprep --vault ~/notes find "Planning Sync" --attendee "Sarah Chen" --topic roadmap
  noteprep --vault ~/notes find "1:1 Bob" --attendee "Bob Lee <bob@example.com>" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringArrayVarP(&findAttendees, "attendee", "a", nil, "attendee name (repeatable)")
	findCmd.Flags().StringArrayVarP(&findTopics, "topic", "t", nil, "meeting topic (repeatable)")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "output matches as JSON")
	findCmd.Flags().BoolVar(&findIndex, "index", true, "scan the vault before searching")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	if contextService == nil {
		return errors.New("context service not configured")
	}

	// The in-memory index lives only as long as the process, so a
	// standalone find scans the vault first unless told not to.
	if findIndex {
		vault, err := requireVault()
		if err != nil {
			return err
		}
		if err := reindexFromVault(cmd.Context(), vault); err != nil {
			return fmt.Errorf("index vault: %w", err)
		}
	}

	query := domain.QueryContext{
		Title:     args[0],
		Attendees: findAttendees,
		Topics:    findTopics,
	}

	matches, err := contextService.FindRelevantContext(cmd.Context(), query, domain.RelevanceWeights{})
	if err != nil {
		return fmt.Errorf("find context: %w", err)
	}

	if findJSON {
		return outputFindJSON(cmd, matches)
	}
	return outputFindStyled(cmd, matches)
}

func outputFindJSON(cmd *cobra.Command, matches []domain.ContextMatch) error {
	type jsonMatch struct {
		DocumentID    string   `json:"document_id"`
		Title         string   `json:"title"`
		Path          string   `json:"path"`
		Score         float64  `json:"score"`
		MatchedFields []string `json:"matched_fields,omitempty"`
		Snippets      []string `json:"snippets,omitempty"`
	}

	out := make([]jsonMatch, len(matches))
	for i := range matches {
		out[i] = jsonMatch{
			DocumentID:    matches[i].Document.ID,
			Title:         matches[i].Document.Title,
			Path:          matches[i].Document.Path,
			Score:         matches[i].RelevanceScore,
			MatchedFields: matches[i].MatchedFields,
			Snippets:      matches[i].Snippets,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal matches: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFindStyled(cmd *cobra.Command, matches []domain.ContextMatch) error {
	if len(matches) == 0 {
		cmd.Println("No relevant notes found.")
		return nil
	}

	cmd.Println("Relevant notes:")
	cmd.Println()
	for i := range matches {
		title := matches[i].Document.Title
		if title == "" {
			title = matches[i].Document.ID
		}

		cmd.Printf("  [%d] %s %s\n", i+1,
			titleStyle.Render(title),
			scoreStyle.Render(fmt.Sprintf("(%.2f)", matches[i].RelevanceScore)))

		if len(matches[i].MatchedFields) > 0 {
			cmd.Printf("      %s\n", fieldStyle.Render("matched: "+strings.Join(matches[i].MatchedFields, ", ")))
		}
		for _, snippet := range matches[i].Snippets {
			cmd.Println(snippetStyle.Render(snippet))
		}
		cmd.Println()
	}
	return nil
}
