package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/clockfill/internal/catalog"
	"github.com/bryan-cox/clockfill/internal/clockify"
	"github.com/bryan-cox/clockfill/internal/fill"
	"github.com/bryan-cox/clockfill/internal/jira"
	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/output"
	"github.com/bryan-cox/clockfill/internal/prompt"
	"github.com/bryan-cox/clockfill/internal/report"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

var (
	// Selection flags, shared by fill and plan.
	projectNumber int
	projectID     string
	monthFlag     int
	startDay      int
	endDay        int

	// Description flags, fill only.
	description string
	issueKey    string
	noJira      bool

	// fillCmd represents the fill command
	fillCmd = &cobra.Command{
		Use:   "fill",
		Short: "Create time entries for a day range (default command).",
		Long: `Creates one time entry per scheduled interval for every weekday in the
selected day range of one month in the current year. Values not given as
flags are prompted for: project number, month, start day, end day and then
the description.`,
		Args: cobra.NoArgs,
		RunE: runFillCommand,
	}
)

func init() {
	addSelectionFlags(fillCmd)
	addDescriptionFlags(fillCmd)
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&projectNumber, "project", 0, "Project number as listed in the catalog (1-based).")
	cmd.Flags().StringVar(&projectID, "project-id", "", "Project ID; takes precedence over --project.")
	cmd.Flags().IntVar(&monthFlag, "month", 0, "Month (1-12).")
	cmd.Flags().IntVar(&startDay, "start-day", 0, "First day of the range.")
	cmd.Flags().IntVar(&endDay, "end-day", 0, "Last day of the range (inclusive).")
}

func addDescriptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&description, "description", "", "Entry description. A bare JIRA key is expanded to '[KEY]: summary'.")
	cmd.Flags().StringVar(&issueKey, "issue", "", "JIRA issue key to use as the description.")
	cmd.Flags().BoolVar(&noJira, "no-jira", false, "Do not contact JIRA; prompt for a free-text description.")
}

// --- Command Execution Logic ---

func runFillCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)
	out := cmd.OutOrStdout()

	cat, err := catalog.Load(projectsPath)
	if err != nil {
		return err
	}
	if err := cfg.RequireClockify(); err != nil {
		return err
	}
	formatter, err := newFormatter()
	if err != nil {
		return err
	}
	httpClient := newHTTPClient()

	if projectID == "" && !cmd.Flags().Changed("project") {
		report.PrintProjects(out, cat.Projects)
	}

	var (
		jiraClient *jira.Client
		issues     []model.Issue
	)
	if !noJira {
		jiraClient, err = newJiraClient(ctx, httpClient)
		switch {
		case err != nil && description == "":
			printer.Warn("JIRA is not configured, enter the description manually (%v)", err)
		case err != nil:
			slog.Debug("JIRA lookups disabled", "error", err)
		case description == "":
			issues = loadIssues(ctx, printer, jiraClient)
		}
	}

	p := prompt.New(cmd.InOrStdin(), out)
	req, err := selectRange(cmd, p, cat, formatter.Year)
	if err != nil {
		return err
	}
	req.Description, err = selectDescription(ctx, p, jiraClient, issues)
	if err != nil {
		return err
	}

	slog.Debug("fill request", "project", req.Project.ID, "month", int(req.Month), "start", req.StartDay, "end", req.EndDay)
	rc := &fill.RunContext{
		Catalog:     cat,
		Formatter:   formatter,
		Submitter:   clockify.NewClient(cfg.ClockifyBaseURL, cfg.ClockifyAPIKey, httpClient),
		WorkspaceID: cfg.ClockifyWorkspaceID,
		Reporter:    report.NewTextReporter(printer),
	}
	sum, err := fill.Run(ctx, rc, req)
	if err != nil {
		return err
	}
	report.PrintSummary(printer, sum)
	return sum.Err()
}

// newJiraClient picks Bearer auth when a personal access token is set and
// Basic auth otherwise.
func newJiraClient(ctx context.Context, httpClient *http.Client) (*jira.Client, error) {
	if err := cfg.RequireJira(); err != nil {
		return nil, err
	}
	if cfg.UsesJiraPAT() {
		return jira.NewTokenClient(ctx, cfg.JiraURL, cfg.JiraPAT, httpClient), nil
	}
	return jira.NewBasicClient(cfg.JiraURL, cfg.JiraUsername, cfg.JiraAPIToken, httpClient), nil
}

// loadIssues fetches and lists the open JIRA issues. A failure is reported
// and yields no issues, so the description is typed in instead.
func loadIssues(ctx context.Context, printer *output.Printer, c *jira.Client) []model.Issue {
	issues, err := c.FetchOpenIssues(ctx, cfg.JiraJQL)
	if err != nil {
		slog.Warn("failed to fetch JIRA issues", "error", err)
		printer.Warn("Error fetching Jira issues: %v", err)
		return nil
	}
	if issueKey == "" {
		report.PrintIssues(printer.Writer(), issues)
	}
	return issues
}

// selectRange resolves the project and day range from flags, prompting for
// whatever is missing in the order project, month, start day, end day.
func selectRange(cmd *cobra.Command, p *prompt.Prompter, cat *catalog.Catalog, year int) (fill.Request, error) {
	var (
		project model.ProjectEntry
		err     error
	)
	if projectID != "" {
		project, err = cat.Resolve(projectID, 0)
	} else {
		var n int
		n, err = intValue(cmd, p, "project", projectNumber, "Enter project number: ", 1, len(cat.Projects))
		if err == nil {
			project, err = cat.Project(n)
		}
	}
	if err != nil {
		return fill.Request{}, err
	}

	m, err := intValue(cmd, p, "month", monthFlag, "Enter the month (1-12): ", 1, 12)
	if err != nil {
		return fill.Request{}, err
	}
	month := time.Month(m)
	last := timefmt.DaysIn(year, month)

	start, err := intValue(cmd, p, "start-day", startDay, "Enter the start day: ", 1, last)
	if err != nil {
		return fill.Request{}, err
	}
	end, err := intValue(cmd, p, "end-day", endDay, "Enter the end day: ", start, last)
	if err != nil {
		return fill.Request{}, err
	}
	return fill.Request{Project: project, Month: month, StartDay: start, EndDay: end}, nil
}

// selectDescription picks the entry description from flags, the fetched
// issues or a free-text answer.
func selectDescription(ctx context.Context, p *prompt.Prompter, c *jira.Client, issues []model.Issue) (string, error) {
	switch {
	case issueKey != "":
		key := jira.ExtractTicketID(issueKey)
		if key == "" {
			return "", fmt.Errorf("%w: %q is not a JIRA issue key", model.ErrInput, issueKey)
		}
		if is, ok := jira.FindIssue(issues, key); ok {
			return is.Label(), nil
		}
		if c == nil {
			return key, nil
		}
		is, err := c.FetchIssue(ctx, key)
		if err != nil {
			return "", fmt.Errorf("fetching JIRA issue %s: %w", key, err)
		}
		return is.Label(), nil
	case description != "":
		return jira.Describe(ctx, c, issues, description), nil
	case len(issues) > 0:
		n, err := p.Int("Select Jira issue for description (enter the number): ", 1, len(issues))
		if err != nil {
			return "", err
		}
		return issues[n-1].Label(), nil
	}
	text, err := p.Line("Enter the description: ")
	if err != nil {
		return "", err
	}
	return jira.Describe(ctx, c, issues, text), nil
}

// intValue returns the value of the named flag when it was given, checking
// its range, or prompts for it.
func intValue(cmd *cobra.Command, p *prompt.Prompter, flag string, flagValue int, label string, lo, hi int) (int, error) {
	if cmd.Flags().Changed(flag) {
		if _, err := prompt.InRange(flagValue, lo, hi); err != nil {
			return 0, fmt.Errorf("invalid --%s: %w", flag, err)
		}
		return flagValue, nil
	}
	return p.Int(label, lo, hi)
}
