package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JacobKramerDK/noteprep/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. The vault
is scanned once at startup so the find_relevant_context tool has an
index to query.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  noteprep --vault ~/notes mcp serve

  # HTTP mode
  noteprep --vault ~/notes mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	if vault, vaultErr := requireVault(); vaultErr == nil {
		if err := reindexFromVault(cmd.Context(), vault); err != nil {
			return fmt.Errorf("index vault: %w", err)
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{Context: contextService})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
