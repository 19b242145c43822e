package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if contextService == nil {
			return errors.New("context service not configured")
		}
		status := contextService.IndexStatus()
		if !status.IsIndexed {
			cmd.Println("Not indexed yet. Run 'noteprep index' first.")
			return nil
		}
		cmd.Printf("State:     %s\n", contextService.State())
		cmd.Printf("Documents: %d\n", status.DocumentCount)
		cmd.Printf("Failed:    %d\n", status.FailedCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
