package main

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/bryan-cox/clockfill/internal/catalog"
	"github.com/bryan-cox/clockfill/internal/clockify"
	clockfillmcp "github.com/bryan-cox/clockfill/internal/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as MCP server (stdio transport).",
	Long: `Run clockfill as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "clockfill": {
        "command": "clockfill",
        "args": ["serve"]
      }
    }
  }

Available tools: list_projects, plan_schedule, search_projects`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		deps, err := serveDeps()
		if err != nil {
			return err
		}
		server := clockfillmcp.NewServer(version, deps)
		return server.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

// serveDeps builds the tool dependencies. Project search is only offered
// when an API key is configured.
func serveDeps() (clockfillmcp.Deps, error) {
	cat, err := catalog.Load(projectsPath)
	if err != nil {
		return clockfillmcp.Deps{}, err
	}
	formatter, err := newFormatter()
	if err != nil {
		return clockfillmcp.Deps{}, err
	}
	deps := clockfillmcp.Deps{Catalog: cat, Formatter: formatter}
	if err := cfg.RequireSearch(); err != nil {
		slog.Warn("search_projects disabled", "error", err)
	} else {
		deps.Searcher = clockify.NewClient(cfg.ClockifyBaseURL, cfg.ClockifyAPIKey, newHTTPClient())
	}
	return deps, nil
}
