package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bryan-cox/clockfill/internal/clockify"
	"github.com/bryan-cox/clockfill/internal/fill"
	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/schedule"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

// ProjectInfo is a catalog project with its selection number.
type ProjectInfo struct {
	Number int    `json:"number" jsonschema:"1-based project number"`
	ID     string `json:"id"     jsonschema:"project id"`
	Name   string `json:"name"   jsonschema:"project name"`
	Leave  bool   `json:"leave"  jsonschema:"whether the project is booked as leave"`
}

// --- list_projects ---

// ListProjectsInput is the input for list_projects (no parameters).
type ListProjectsInput struct{}

// ListProjectsOutput is the output for list_projects.
type ListProjectsOutput struct {
	Projects      []ProjectInfo `json:"projects"       jsonschema:"catalog projects in selection order"`
	LeaveProjects []string      `json:"leave_projects" jsonschema:"project ids booked as leave"`
}

func handleListProjects(deps Deps) mcp.ToolHandlerFor[ListProjectsInput, ListProjectsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
		if deps.Catalog == nil {
			return nil, ListProjectsOutput{}, fmt.Errorf("%w: no project catalog loaded", model.ErrConfig)
		}
		out := ListProjectsOutput{
			Projects:      make([]ProjectInfo, 0, len(deps.Catalog.Projects)),
			LeaveProjects: append([]string{}, deps.Catalog.LeaveProjects...),
		}
		for i, p := range deps.Catalog.Projects {
			out.Projects = append(out.Projects, ProjectInfo{
				Number: i + 1,
				ID:     p.ID,
				Name:   p.Name,
				Leave:  deps.Catalog.IsLeave(p.ID),
			})
		}
		return nil, out, nil
	}
}

// --- plan_schedule ---

// PlanInput is the input for plan_schedule.
type PlanInput struct {
	ProjectID     string `json:"project_id,omitempty"     jsonschema:"project id; takes precedence over project_number"`
	ProjectNumber int    `json:"project_number,omitempty" jsonschema:"1-based catalog project number"`
	Month         int    `json:"month"                    jsonschema:"month 1-12 of the current year"`
	StartDay      int    `json:"start_day"                jsonschema:"first day of the range"`
	EndDay        int    `json:"end_day"                  jsonschema:"last day of the range (inclusive)"`
}

// PlannedInterval is one entry a fill would submit.
type PlannedInterval struct {
	Local string `json:"local" jsonschema:"local wall-clock interval HH:MM-HH:MM"`
	Start string `json:"start" jsonschema:"start timestamp sent to the service"`
	End   string `json:"end"   jsonschema:"end timestamp sent to the service"`
}

// PlannedDay is one calendar day of the plan.
type PlannedDay struct {
	Date      string            `json:"date"                jsonschema:"calendar date YYYY-MM-DD"`
	Weekday   string            `json:"weekday"             jsonschema:"day of the week"`
	Skipped   bool              `json:"skipped"             jsonschema:"weekend day with no entries"`
	Leave     bool              `json:"leave"               jsonschema:"booked as a leave day"`
	Intervals []PlannedInterval `json:"intervals,omitempty" jsonschema:"entries for the day in order"`
}

// PlanOutput is the output for plan_schedule.
type PlanOutput struct {
	Project ProjectInfo  `json:"project" jsonschema:"selected project"`
	Days    []PlannedDay `json:"days"    jsonschema:"one element per day in the range"`
	Entries int          `json:"entries" jsonschema:"total number of entries"`
	Hours   float64      `json:"hours"   jsonschema:"total scheduled hours"`
}

func handlePlanSchedule(deps Deps) mcp.ToolHandlerFor[PlanInput, PlanOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PlanInput) (*mcp.CallToolResult, PlanOutput, error) {
		if deps.Catalog == nil {
			return nil, PlanOutput{}, fmt.Errorf("%w: no project catalog loaded", model.ErrConfig)
		}
		if input.Month < 1 || input.Month > 12 {
			return nil, PlanOutput{}, fmt.Errorf("%w: month must be between 1 and 12, got %d", model.ErrInput, input.Month)
		}
		month := time.Month(input.Month)
		last := timefmt.DaysIn(deps.Formatter.Year, month)
		if input.StartDay < 1 || input.StartDay > last || input.EndDay < input.StartDay || input.EndDay > last {
			return nil, PlanOutput{}, fmt.Errorf("%w: day range %d-%d is not within 1-%d", model.ErrInput, input.StartDay, input.EndDay, last)
		}

		project, err := deps.Catalog.Resolve(input.ProjectID, input.ProjectNumber)
		if err != nil {
			return nil, PlanOutput{}, err
		}

		rc := &fill.RunContext{Catalog: deps.Catalog, Formatter: deps.Formatter}
		days, err := fill.Plan(rc, fill.Request{Project: project, Month: month, StartDay: input.StartDay, EndDay: input.EndDay})
		if err != nil {
			return nil, PlanOutput{}, err
		}

		out := PlanOutput{
			Project: ProjectInfo{ID: project.ID, Name: project.Name, Leave: deps.Catalog.IsLeave(project.ID)},
			Days:    make([]PlannedDay, 0, len(days)),
			Entries: schedule.CountIntervals(days),
			Hours:   schedule.Worked(days).Hours(),
		}
		for i, p := range deps.Catalog.Projects {
			if p.ID == project.ID {
				out.Project.Number = i + 1
				break
			}
		}
		for _, day := range days {
			pd := PlannedDay{
				Date:    day.Date.Format("2006-01-02"),
				Weekday: day.Weekday.String(),
				Skipped: day.Skipped,
				Leave:   day.Leave,
			}
			entries, err := fill.Entries(deps.Formatter, month, day, project.ID, "")
			if err != nil {
				return nil, PlanOutput{}, err
			}
			for j, e := range entries {
				pd.Intervals = append(pd.Intervals, PlannedInterval{
					Local: day.Intervals[j].String(),
					Start: e.Start,
					End:   e.End,
				})
			}
			out.Days = append(out.Days, pd)
		}
		return nil, out, nil
	}
}

// --- search_projects ---

// SearchInput is the input for search_projects.
type SearchInput struct {
	Term     string `json:"term"                jsonschema:"substring to look for in project names"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"projects per page request, 1-100 (default 50)"`
}

// WorkspaceResult lists the matches found in one workspace.
type WorkspaceResult struct {
	WorkspaceID   string               `json:"workspace_id"    jsonschema:"workspace id"`
	WorkspaceName string               `json:"workspace_name"  jsonschema:"workspace name"`
	Scanned       int                  `json:"scanned"         jsonschema:"number of projects examined"`
	Matches       []model.ProjectEntry `json:"matches"         jsonschema:"projects whose name contains the term"`
	Error         string               `json:"error,omitempty" jsonschema:"why the listing stopped early"`
}

// SearchOutput is the output for search_projects.
type SearchOutput struct {
	Term       string            `json:"term"       jsonschema:"normalised search term"`
	Workspaces []WorkspaceResult `json:"workspaces" jsonschema:"one element per workspace"`
}

func handleSearchProjects(deps Deps) mcp.ToolHandlerFor[SearchInput, SearchOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		if deps.Searcher == nil {
			return nil, SearchOutput{}, errors.New("project search is not configured: set CLOCKIFY_API_KEY")
		}
		pageSize := input.PageSize
		if pageSize == 0 {
			pageSize = clockify.DefaultPageSize
		}
		results, err := deps.Searcher.SearchProjects(ctx, input.Term, pageSize)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("searching projects: %w", err)
		}

		out := SearchOutput{
			Term:       normaliseTerm(input.Term),
			Workspaces: make([]WorkspaceResult, 0, len(results)),
		}
		for _, res := range results {
			wr := WorkspaceResult{
				WorkspaceID:   res.Workspace.ID,
				WorkspaceName: res.Workspace.Name,
				Scanned:       res.Scanned,
				Matches:       append([]model.ProjectEntry{}, res.Matches...),
			}
			if res.Err != nil {
				wr.Error = res.Err.Error()
			}
			out.Workspaces = append(out.Workspaces, wr)
		}
		return nil, out, nil
	}
}

func normaliseTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
