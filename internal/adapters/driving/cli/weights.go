package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
)

var (
	weightTitle       float64
	weightContent     float64
	weightTags        float64
	weightAttendees   float64
	weightSearchBonus float64
	weightRecency     float64
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show or save relevance weights",
	Long: `Without flags, prints the effective relevance weights. With any
weight flag set, validates the full set and saves it to the config file.
Out-of-range values are rejected; retrieval falls back to the defaults
when the stored set is invalid.`,
	RunE: runWeights,
}

func init() {
	defaults := domain.DefaultWeights()
	weightsCmd.Flags().Float64Var(&weightTitle, "title", defaults.Title, "title similarity weight")
	weightsCmd.Flags().Float64Var(&weightContent, "content", defaults.Content, "content similarity weight")
	weightsCmd.Flags().Float64Var(&weightTags, "tags", defaults.Tags, "tag overlap weight")
	weightsCmd.Flags().Float64Var(&weightAttendees, "attendees", defaults.Attendees, "attendee match weight")
	weightsCmd.Flags().Float64Var(&weightSearchBonus, "search-bonus", defaults.SearchBonus, "candidate set bonus weight")
	weightsCmd.Flags().Float64Var(&weightRecency, "recency", defaults.Recency, "recency bonus weight")
	rootCmd.AddCommand(weightsCmd)
}

func runWeights(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") &&
		!cmd.Flags().Changed("tags") && !cmd.Flags().Changed("attendees") &&
		!cmd.Flags().Changed("search-bonus") && !cmd.Flags().Changed("recency") {
		printWeights(cmd, effectiveWeights())
		return nil
	}

	weights := domain.RelevanceWeights{
		Title:       weightTitle,
		Content:     weightContent,
		Tags:        weightTags,
		Attendees:   weightAttendees,
		SearchBonus: weightSearchBonus,
		Recency:     weightRecency,
	}
	if !weights.IsValid() {
		return fmt.Errorf("%w: every weight must be within [0,1]", domain.ErrInvalidWeights)
	}

	if settingsStore == nil {
		return errors.New("settings store not configured")
	}
	if err := settingsStore.Save(weights); err != nil {
		return fmt.Errorf("save weights: %w", err)
	}
	cmd.Printf("Saved weights to %s\n", settingsStore.Path())
	return nil
}

// effectiveWeights mirrors what retrieval will use: stored weights when
// present and valid, defaults otherwise.
func effectiveWeights() domain.RelevanceWeights {
	if settingsStore != nil {
		if stored, err := settingsStore.Load(); err == nil {
			if sanitized, substituted := stored.Sanitize(); !substituted {
				return sanitized
			}
		}
	}
	return domain.DefaultWeights()
}

func printWeights(cmd *cobra.Command, w domain.RelevanceWeights) {
	cmd.Printf("title:        %.2f\n", w.Title)
	cmd.Printf("content:      %.2f\n", w.Content)
	cmd.Printf("tags:         %.2f\n", w.Tags)
	cmd.Printf("attendees:    %.2f\n", w.Attendees)
	cmd.Printf("search-bonus: %.2f\n", w.SearchBonus)
	cmd.Printf("recency:      %.2f\n", w.Recency)
}
