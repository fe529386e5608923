package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quill-labs/aide-cli/internal/adapters/driving/mcp"
)

var mcpPort int

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for Claude Desktop)
  aide serve-mcp

  # HTTP mode (for MCP Inspector, remote access)
  aide serve-mcp --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "aide": {
        "command": "/path/to/aide",
        "args": ["serve-mcp"]
      }
    }
  }`,
	RunE: runServeMCP,
}

func init() {
	serveMCPCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveMCPCmd)
}

func runServeMCP(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Retrieval: retrievalService,
		Assistant: assistantService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
