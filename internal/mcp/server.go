// Package mcp exposes schedule planning and project search as Model Context
// Protocol tools.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bryan-cox/clockfill/internal/catalog"
	"github.com/bryan-cox/clockfill/internal/clockify"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

// ProjectSearcher finds projects by name across workspaces.
type ProjectSearcher interface {
	SearchProjects(ctx context.Context, term string, pageSize int) ([]clockify.WorkspaceMatches, error)
}

// Deps holds what the tools read from. Searcher may be nil when the service
// credentials are not configured; search_projects then reports an error.
type Deps struct {
	Catalog   *catalog.Catalog
	Formatter timefmt.Formatter
	Searcher  ProjectSearcher
}

// NewServer creates an MCP server with all clockfill tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "clockfill",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// localAnnotations marks tools that only read local files.
func localAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// remoteAnnotations marks read-only tools that call the time-tracking service.
func remoteAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:  true,
		OpenWorldHint: boolPtr(true),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List the projects in the local catalog with their 1-based numbers, and the ids treated as leave.",
		Annotations: localAnnotations(),
	}, handleListProjects(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "plan_schedule",
		Description: "Show the time entries a fill would create for a project and day range of one month in the current year. Nothing is submitted.",
		Annotations: localAnnotations(),
	}, handlePlanSchedule(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_projects",
		Description: "Search project names across every workspace of the time-tracking account (case-insensitive substring match).",
		Annotations: remoteAnnotations(),
	}, handleSearchProjects(deps))
}
