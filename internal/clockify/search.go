package clockify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryan-cox/clockfill/internal/model"
)

// WorkspaceMatches is the search result for one workspace.
type WorkspaceMatches struct {
	Workspace model.Workspace
	Scanned   int
	Matches   []model.ProjectEntry
	// Err is set when the workspace's projects could not be fully listed.
	// Matches then only cover the pages fetched before the failure.
	Err error
}

// SearchProjects lists every workspace and keeps the projects whose name
// contains term, ignoring case. A failure listing one workspace's projects
// is recorded on that workspace and the search moves on.
func (c *Client) SearchProjects(ctx context.Context, term string, pageSize int) ([]WorkspaceMatches, error) {
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page size must be between 1 and %d, got %d", model.ErrInput, MaxPageSize, pageSize)
	}
	workspaces, err := c.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	results := make([]WorkspaceMatches, 0, len(workspaces))
	for _, ws := range workspaces {
		projects, err := c.ListProjects(ctx, ws.ID, pageSize)
		results = append(results, WorkspaceMatches{
			Workspace: ws,
			Scanned:   len(projects),
			Matches:   FilterProjects(projects, needle),
			Err:       err,
		})
	}
	return results, nil
}

// FilterProjects returns projects whose name contains term, ignoring case.
func FilterProjects(projects []model.ProjectEntry, term string) []model.ProjectEntry {
	needle := strings.ToLower(term)
	var out []model.ProjectEntry
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}
